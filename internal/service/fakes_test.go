package service

import (
	"context"
	"strings"
	"sync"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// In-memory store fakes backing the service tests.

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*model.User)}
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrConflict
		}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUserStore) List(_ context.Context, f UserFilter) ([]model.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		if len(f.Roles) > 0 {
			match := false
			for _, r := range f.Roles {
				if u.Role == r {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (s *memUserStore) Update(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type memOrderStore struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[string]*model.Order)}
}

func (s *memOrderStore) Create(_ context.Context, o *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *memOrderStore) GetByID(_ context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memOrderStore) ListByUser(_ context.Context, userID int64) ([]model.Order, error) {
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

func (s *memOrderStore) ListAll(_ context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memOrderStore) Update(_ context.Context, o *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return ErrNotFound
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *memOrderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *memOrderStore) AddReview(_ context.Context, orderID string, r model.OrderReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Reviews = append(o.Reviews, r)
	return nil
}

type memReturnStore struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*model.ReturnRequest
}

func newMemReturnStore() *memReturnStore {
	return &memReturnStore{requests: make(map[int64]*model.ReturnRequest)}
}

func (s *memReturnStore) Create(_ context.Context, r *model.ReturnRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	cp := *r
	s.requests[r.ID] = &cp
	return nil
}

func (s *memReturnStore) GetByOrder(_ context.Context, orderID string, status model.ReturnStatus) (*model.ReturnRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.OrderID == orderID && r.Status == status {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memReturnStore) Update(_ context.Context, r *model.ReturnRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	s.requests[r.ID] = &cp
	return nil
}

func (s *memReturnStore) ListAll(_ context.Context) ([]model.ReturnRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ReturnRequest
	for _, r := range s.requests {
		out = append(out, *r)
	}
	return out, nil
}

type memCouponStore struct {
	mu          sync.Mutex
	nextID      int64
	coupons     map[int64]*model.Coupon
	redemptions map[int64][]int64
}

func newMemCouponStore() *memCouponStore {
	return &memCouponStore{
		coupons:     make(map[int64]*model.Coupon),
		redemptions: make(map[int64][]int64),
	}
}

func (s *memCouponStore) Create(_ context.Context, c *model.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.coupons {
		if existing.Code == c.Code {
			return ErrConflict
		}
	}
	s.nextID++
	c.ID = s.nextID
	cp := *c
	s.coupons[c.ID] = &cp
	return nil
}

func (s *memCouponStore) GetByID(_ context.Context, id int64) (*model.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memCouponStore) GetByCode(_ context.Context, code string) (*model.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memCouponStore) List(_ context.Context) ([]model.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Coupon
	for _, c := range s.coupons {
		out = append(out, *c)
	}
	return out, nil
}

func (s *memCouponStore) Update(_ context.Context, c *model.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[c.ID]; !ok {
		return ErrNotFound
	}
	cp := *c
	s.coupons[c.ID] = &cp
	return nil
}

func (s *memCouponStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[id]; !ok {
		return ErrNotFound
	}
	delete(s.coupons, id)
	return nil
}

func (s *memCouponStore) RedemptionCount(_ context.Context, couponID, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, id := range s.redemptions[couponID] {
		if id == userID {
			count++
		}
	}
	return count, nil
}

func (s *memCouponStore) Redemptions(_ context.Context, couponID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.redemptions[couponID]...), nil
}

func (s *memCouponStore) RecordRedemption(_ context.Context, couponID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redemptions[couponID] = append(s.redemptions[couponID], userID)
	return nil
}

type memProductStore struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*model.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: make(map[int64]*model.Product)}
}

func (s *memProductStore) Create(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memProductStore) GetByID(_ context.Context, id int64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memProductStore) List(_ context.Context, f ProductFilter) ([]model.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.products {
		if f.CreatedBy != 0 && p.CreatedBy != f.CreatedBy {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (s *memProductStore) Update(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memProductStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// recordingMailer captures sends for assertions.
type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	bodys []string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	m.bodys = append(m.bodys, body)
	return nil
}

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Compare(hashed, plain string) bool { return hashed == "hashed:"+plain }
