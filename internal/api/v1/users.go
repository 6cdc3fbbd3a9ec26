package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List pages users with optional role/email/name filters and sorting.
func (h *UserHandler) List(c *gin.Context) {
	filter := service.UserFilter{
		Email:  c.Query("email"),
		Name:   c.Query("name"),
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 10),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}
	if roles := c.Query("role"); roles != "" {
		for _, r := range strings.Split(roles, ",") {
			filter.Roles = append(filter.Roles, model.Role(strings.TrimSpace(r)))
		}
	}

	users, total, err := h.users.List(c.Request.Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", gin.H{
		"users": users,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// Get returns a single user. Self or admin.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid user id", gin.H{"details": err.Error()})
		return
	}
	user, err := h.users.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User retrieved successfully", gin.H{"user": user})
}

// Me returns the authenticated user's own record.
func (h *UserHandler) Me(c *gin.Context) {
	respond(c, http.StatusOK, "User retrieved successfully", gin.H{"user": middleware.CurrentUser(c)})
}

type updateUserRequest struct {
	Name      *string         `json:"name"`
	Phone     *string         `json:"phone"`
	Addresses []model.Address `json:"addresses"`
	Password  *string         `json:"password"`
	Role      *model.Role     `json:"role"`
}

// Update edits a profile. Self or admin; role changes are admin only.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid user id", gin.H{"details": err.Error()})
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid update payload", gin.H{"details": err.Error()})
		return
	}
	user, err := h.users.Update(c.Request.Context(), middleware.CurrentUser(c), id, service.UpdateUserInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Addresses: req.Addresses,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User updated successfully", gin.H{"user": user})
}

// ToggleStatus flips a user between active and inactive. Admin only.
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid user id", gin.H{"details": err.Error()})
		return
	}
	user, err := h.users.ToggleStatus(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User status updated", gin.H{"user": user})
}

// Delete removes a user. Admin only.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid user id", gin.H{"details": err.Error()})
		return
	}
	if err := h.users.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}

type addUserRequest struct {
	Name  string     `json:"name"`
	Email string     `json:"email" binding:"required"`
	Role  model.Role `json:"role"`
	Phone string     `json:"phone"`
}

// Add creates a user with a generated password, emailed to them. Admin only.
func (h *UserHandler) Add(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid user payload", gin.H{"details": err.Error()})
		return
	}
	user, err := h.users.AdminAdd(c.Request.Context(), middleware.CurrentUser(c), service.AddUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "User created successfully", gin.H{"user": user})
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
