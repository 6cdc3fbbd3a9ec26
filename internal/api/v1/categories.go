package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// Create adds a category. Admin only.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid category payload", gin.H{"details": err.Error()})
		return
	}
	category, err := h.categories.Create(c.Request.Context(), middleware.CurrentUser(c), req.Name, req.Subcategories)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Category created successfully", gin.H{"category": category})
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Categories retrieved successfully", gin.H{"categories": categories})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid category id", gin.H{"details": err.Error()})
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category retrieved successfully", gin.H{"category": category})
}

// Update renames a category or replaces its subcategories. Admin only.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid category id", gin.H{"details": err.Error()})
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid category payload", gin.H{"details": err.Error()})
		return
	}
	category, err := h.categories.Update(c.Request.Context(), middleware.CurrentUser(c), id, req.Name, req.Subcategories)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category updated successfully", gin.H{"category": category})
}

type subcategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddSubcategory appends one subcategory. Admin only.
func (h *CategoryHandler) AddSubcategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid category id", gin.H{"details": err.Error()})
		return
	}
	var req subcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid subcategory payload", gin.H{"details": err.Error()})
		return
	}
	category, err := h.categories.AddSubcategory(c.Request.Context(), middleware.CurrentUser(c), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Subcategory added successfully", gin.H{"category": category})
}

// RemoveSubcategory deletes one subcategory by name. Admin only.
func (h *CategoryHandler) RemoveSubcategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid category id", gin.H{"details": err.Error()})
		return
	}
	var req subcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid subcategory payload", gin.H{"details": err.Error()})
		return
	}
	category, err := h.categories.RemoveSubcategory(c.Request.Context(), middleware.CurrentUser(c), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Subcategory removed successfully", gin.H{"category": category})
}

// Delete removes a category. Admin only.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid category id", gin.H{"details": err.Error()})
		return
	}
	if err := h.categories.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category deleted successfully", nil)
}
