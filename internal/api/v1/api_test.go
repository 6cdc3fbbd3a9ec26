package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

// fakeUserStore / fakeOrderStore / fakeReturnStore back the router with in-memory
// state so the HTTP surface can be exercised end to end.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return service.ErrConflict
		}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, service.ErrNotFound
}

func (s *fakeUserStore) List(context.Context, service.UserFilter) ([]model.User, int, error) {
	return nil, 0, nil
}

func (s *fakeUserStore) Update(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return service.ErrNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return service.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*model.Order)}
}

func (s *fakeOrderStore) Create(_ context.Context, o *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *fakeOrderStore) GetByID(_ context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *fakeOrderStore) ListByUser(_ context.Context, userID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListAll(_ context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *fakeOrderStore) Update(_ context.Context, o *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return service.ErrNotFound
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *fakeOrderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
	return nil
}

func (s *fakeOrderStore) AddReview(_ context.Context, orderID string, r model.OrderReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return service.ErrNotFound
	}
	o.Reviews = append(o.Reviews, r)
	return nil
}

type fakeReturnStore struct {
	mu       sync.Mutex
	nextID   int64
	requests []*model.ReturnRequest
}

func (s *fakeReturnStore) Create(_ context.Context, r *model.ReturnRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	cp := *r
	s.requests = append(s.requests, &cp)
	return nil
}

func (s *fakeReturnStore) GetByOrder(_ context.Context, orderID string, status model.ReturnStatus) (*model.ReturnRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.OrderID == orderID && r.Status == status {
			cp := *r
			return &cp, nil
		}
	}
	return nil, service.ErrNotFound
}

func (s *fakeReturnStore) Update(_ context.Context, r *model.ReturnRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.requests {
		if existing.ID == r.ID {
			cp := *r
			s.requests[i] = &cp
			return nil
		}
	}
	return service.ErrNotFound
}

func (s *fakeReturnStore) ListAll(_ context.Context) ([]model.ReturnRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ReturnRequest
	for _, r := range s.requests {
		out = append(out, *r)
	}
	return out, nil
}

type testServer struct {
	router *gin.Engine
	users  *fakeUserStore
	auth   *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUserStore()
	orders := newFakeOrderStore()
	returns := &fakeReturnStore{}

	hasher := &service.BcryptHasher{Cost: bcrypt.MinCost}
	tokens := service.NewTokenService("test-secret", service.NewMemoryRevocationStore())
	authService := service.NewAuthService(users, tokens, hasher, nil, "http://localhost:3000")
	orderService := service.NewOrderService(orders, returns)

	authMW := middleware.NewAuthMiddleware(tokens, users)

	r := gin.New()
	v1 := r.Group("/api/v1")
	RegisterRoutes(v1, Handlers{
		Auth:       NewAuthHandler(authService),
		Users:      NewUserHandler(service.NewUserService(users, hasher, nil)),
		Products:   NewProductHandler(service.NewProductService(stubProducts{}), t.TempDir()),
		Categories: NewCategoryHandler(service.NewCategoryService(stubCategories{})),
		Cart:       NewCartHandler(service.NewCartService(stubCarts{}, stubProducts{})),
		Orders:     NewOrderHandler(orderService),
		Coupons:    NewCouponHandler(service.NewCouponService(stubCoupons{})),
	}, authMW)

	return &testServer{router: r, users: users, auth: authService}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) signIn(t *testing.T, email, password string) string {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/v1/auth/signin", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

// seedUser inserts a user directly, bypassing the signup role restrictions.
func (ts *testServer) seedUser(t *testing.T, email string, role model.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, ts.users.Create(context.Background(), &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       model.StatusActive,
	}))
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "vendor@example.com", model.RoleVendor)
	ts.seedUser(t, "admin@example.com", model.RoleAdmin)

	// Fresh signup succeeds, replaying it conflicts.
	w := ts.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email": "buyer@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email": "buyer@example.com", "password": "password1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Wrong password reads as a 400 validation failure, not 401.
	w = ts.do(t, http.MethodPost, "/api/v1/auth/signin", "", gin.H{
		"email": "buyer@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	buyer := ts.signIn(t, "buyer@example.com", "password1")
	vendor := ts.signIn(t, "vendor@example.com", "password1")
	admin := ts.signIn(t, "admin@example.com", "password1")

	// Customer places an order.
	w = ts.do(t, http.MethodPost, "/api/v1/orders", buyer, gin.H{
		"items": []gin.H{{"product_id": 1, "quantity": 2, "unit_price": 20}},
		"shipping_address": gin.H{
			"street": "1 Main St", "city": "Pune", "postal_code": "411001", "country": "IN",
		},
		"payment_method": "card",
		"total":          40,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Order model.Order `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := created.Data.Order.ID
	require.NotEmpty(t, orderID)
	assert.Equal(t, model.OrderPlaced, created.Data.Order.Status)

	// Vendors may ship, customers may not.
	w = ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/shipped", orderID), buyer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/shipped", orderID), vendor, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Approving a refund with no pending return request is an invalid state.
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/refund/approve", orderID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Owner sees the order; anonymous callers do not.
	w = ts.do(t, http.MethodGet, "/api/v1/orders/"+orderID, buyer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodGet, "/api/v1/orders/"+orderID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFullReturnRefundFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "vendor@example.com", model.RoleVendor)
	ts.seedUser(t, "admin@example.com", model.RoleAdmin)

	w := ts.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email": "buyer@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	buyer := ts.signIn(t, "buyer@example.com", "password1")
	vendor := ts.signIn(t, "vendor@example.com", "password1")
	admin := ts.signIn(t, "admin@example.com", "password1")

	w = ts.do(t, http.MethodPost, "/api/v1/orders", buyer, gin.H{
		"items": []gin.H{{"product_id": 1, "quantity": 1, "unit_price": 25}},
		"shipping_address": gin.H{
			"street": "1 Main St", "city": "Pune", "postal_code": "411001", "country": "IN",
		},
		"payment_method": "upi",
		"total":          25,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			Order model.Order `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := created.Data.Order.ID

	w = ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/shipped", orderID), vendor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/delivered", orderID), vendor, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/return", orderID), buyer, gin.H{
		"reason": "damaged on arrival",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/refund/approve", orderID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var refunded struct {
		Data struct {
			Order model.Order `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refunded))
	assert.Equal(t, model.OrderRefunded, refunded.Data.Order.Status)
	assert.Equal(t, model.RefundApproved, refunded.Data.Order.RefundStatus)
	assert.Equal(t, model.PaymentRefunded, refunded.Data.Order.PaymentStatus)

	// The admin closes the return once the goods are back.
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/return/complete", orderID), buyer, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/return/complete", orderID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var completed struct {
		Data struct {
			ReturnRequest model.ReturnRequest `json:"return_request"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
	assert.Equal(t, model.ReturnCompleted, completed.Data.ReturnRequest.Status)
}

func TestSignOutOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email": "buyer@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	buyer := ts.signIn(t, "buyer@example.com", "password1")

	w = ts.do(t, http.MethodGet, "/api/v1/users/me", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/auth/signout", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token no longer authenticates.
	w = ts.do(t, http.MethodGet, "/api/v1/users/me", buyer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Minimal stubs for the stores the lifecycle tests never touch.

type stubProducts struct{}

func (stubProducts) Create(context.Context, *model.Product) error { return service.ErrInternal }
func (stubProducts) GetByID(context.Context, int64) (*model.Product, error) {
	return nil, service.ErrNotFound
}
func (stubProducts) List(context.Context, service.ProductFilter) ([]model.Product, int, error) {
	return nil, 0, nil
}
func (stubProducts) Update(context.Context, *model.Product) error { return service.ErrNotFound }
func (stubProducts) Delete(context.Context, int64) error          { return service.ErrNotFound }

type stubCategories struct{}

func (stubCategories) Create(context.Context, *model.Category) error { return service.ErrInternal }
func (stubCategories) GetByID(context.Context, int64) (*model.Category, error) {
	return nil, service.ErrNotFound
}
func (stubCategories) List(context.Context) ([]model.Category, error) { return nil, nil }
func (stubCategories) Update(context.Context, *model.Category) error  { return service.ErrNotFound }
func (stubCategories) Delete(context.Context, int64) error            { return service.ErrNotFound }

type stubCarts struct{}

func (stubCarts) Get(_ context.Context, userID int64) (*model.Cart, error) {
	return &model.Cart{UserID: userID}, nil
}
func (stubCarts) Save(context.Context, *model.Cart) error { return nil }

type stubCoupons struct{}

func (stubCoupons) Create(context.Context, *model.Coupon) error { return service.ErrInternal }
func (stubCoupons) GetByID(context.Context, int64) (*model.Coupon, error) {
	return nil, service.ErrNotFound
}
func (stubCoupons) GetByCode(context.Context, string) (*model.Coupon, error) {
	return nil, service.ErrNotFound
}
func (stubCoupons) List(context.Context) ([]model.Coupon, error)             { return nil, nil }
func (stubCoupons) Update(context.Context, *model.Coupon) error              { return service.ErrNotFound }
func (stubCoupons) Delete(context.Context, int64) error                      { return service.ErrNotFound }
func (stubCoupons) RedemptionCount(context.Context, int64, int64) (int, error) { return 0, nil }
func (stubCoupons) Redemptions(context.Context, int64) ([]int64, error)      { return nil, nil }
func (stubCoupons) RecordRedemption(context.Context, int64, int64) error     { return nil }
