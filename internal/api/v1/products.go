package v1

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
	"github.com/NandiniVerma123/Ecommerce-BE/pkg/middleware"
)

type ProductHandler struct {
	products  *service.ProductService
	uploadDir string
}

func NewProductHandler(products *service.ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{products: products, uploadDir: uploadDir}
}

type productRequest struct {
	Name        string  `json:"name"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id"`
	Description string  `json:"description"`
	Stock       *int    `json:"stock"`
}

func (r productRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		Description: r.Description,
		Stock:       r.Stock,
	}
}

// Create adds a product. Vendor or admin.
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid product payload", gin.H{"details": err.Error()})
		return
	}
	product, err := h.products.Create(c.Request.Context(), middleware.CurrentUser(c), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Product created successfully", gin.H{"product": product})
}

// List is the public catalog: active products with search and category filters.
func (h *ProductHandler) List(c *gin.Context) {
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)
	products, total, err := h.products.List(c.Request.Context(), service.ProductFilter{
		CategoryID: categoryID,
		Search:     c.Query("search"),
		ActiveOnly: true,
		Page:       intQuery(c, "page", 1),
		Limit:      intQuery(c, "limit", 10),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Products retrieved successfully", gin.H{
		"products": products,
		"total":    total,
	})
}

// ListMine returns the caller's own products. Vendor or admin.
func (h *ProductHandler) ListMine(c *gin.Context) {
	products, total, err := h.products.ListMine(c.Request.Context(), middleware.CurrentUser(c),
		intQuery(c, "page", 1), intQuery(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Products retrieved successfully", gin.H{
		"products": products,
		"total":    total,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid product id", gin.H{"details": err.Error()})
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Product retrieved successfully", gin.H{"product": product})
}

// Update edits a product. Owner or admin.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid product id", gin.H{"details": err.Error()})
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid product payload", gin.H{"details": err.Error()})
		return
	}
	product, err := h.products.Update(c.Request.Context(), middleware.CurrentUser(c), id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Product updated successfully", gin.H{"product": product})
}

// ToggleStatus flips a product's active flag. Owner or admin.
func (h *ProductHandler) ToggleStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid product id", gin.H{"details": err.Error()})
		return
	}
	product, err := h.products.ToggleStatus(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Product status updated", gin.H{"product": product})
}

// Delete removes a product. Owner or admin.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid product id", gin.H{"details": err.Error()})
		return
	}
	if err := h.products.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Product deleted successfully", nil)
}

// ImportExcel bulk-creates products from an uploaded spreadsheet. The "Products"
// sheet is expected to have columns: name, price, category_id, description, stock.
func (h *ProductHandler) ImportExcel(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, "File upload failed", gin.H{"details": err.Error()})
		return
	}
	f, err := file.Open()
	if err != nil {
		respondError(c, fmt.Errorf("%w: open upload: %v", service.ErrInternal, err))
		return
	}
	defer f.Close()

	xlsx, err := excelize.OpenReader(f)
	if err != nil {
		respondValidation(c, "Invalid Excel file", gin.H{"details": err.Error()})
		return
	}
	rows, err := xlsx.GetRows("Products")
	if err != nil {
		respondValidation(c, "Failed to read Products sheet", gin.H{"details": err.Error()})
		return
	}

	var inputs []service.ProductInput
	for i, row := range rows {
		if i == 0 {
			continue // skip header
		}
		if len(row) < 2 {
			continue
		}
		price, _ := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		in := service.ProductInput{Name: strings.TrimSpace(row[0]), Price: price}
		if len(row) > 2 {
			in.CategoryID, _ = strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		}
		if len(row) > 3 {
			in.Description = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			stock, _ := strconv.Atoi(strings.TrimSpace(row[4]))
			in.Stock = &stock
		}
		inputs = append(inputs, in)
	}

	inserted, err := h.products.CreateBatch(c.Request.Context(), middleware.CurrentUser(c), inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Products imported", gin.H{
		"inserted": inserted,
		"skipped":  len(inputs) - inserted,
	})
}

// UploadImage stores a product image on disk and points the product at it.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondValidation(c, "Invalid product id", gin.H{"details": err.Error()})
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		respondValidation(c, "Image upload failed", gin.H{"details": err.Error()})
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dest := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		respondError(c, fmt.Errorf("%w: save upload: %v", service.ErrInternal, err))
		return
	}

	product, err := h.products.Update(c.Request.Context(), middleware.CurrentUser(c), id,
		service.ProductInput{ImageURL: "/uploads/" + name})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Image uploaded successfully", gin.H{"product": product})
}
