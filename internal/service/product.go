package service

import (
	"context"
	"strings"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// ProductStore persists catalog products.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, f ProductFilter) ([]model.Product, int, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
}

// ProductFilter narrows and pages product listings.
type ProductFilter struct {
	CategoryID int64
	CreatedBy  int64
	Search     string
	ActiveOnly bool
	Page       int
	Limit      int
}

// ProductService is catalog CRUD with the owner-or-admin rule on mutation.
type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// ProductInput carries product fields for create and update. Stock is a
// pointer so a partial update can leave it untouched.
type ProductInput struct {
	Name        string
	ImageURL    string
	Price       float64
	CategoryID  int64
	Description string
	Stock       *int
}

// Create adds a product owned by the actor. Vendor or admin.
func (s *ProductService) Create(ctx context.Context, actor *model.User, in ProductInput) (*model.Product, error) {
	if err := Authorize(actor, model.RoleVendor, model.RoleAdmin); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationf("product name is required")
	}
	if in.Price < 0 {
		return nil, validationf("price must not be negative")
	}
	stock := 0
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, validationf("stock must not be negative")
		}
		stock = *in.Stock
	}

	product := &model.Product{
		Name:        name,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Stock:       stock,
		IsActive:    true,
		CreatedBy:   actor.ID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateBatch inserts imported products, skipping rows that fail, and returns how
// many made it in. Used by the Excel import endpoint.
func (s *ProductService) CreateBatch(ctx context.Context, actor *model.User, inputs []ProductInput) (int, error) {
	if err := Authorize(actor, model.RoleVendor, model.RoleAdmin); err != nil {
		return 0, err
	}
	inserted := 0
	for _, in := range inputs {
		if _, err := s.Create(ctx, actor, in); err != nil {
			continue
		}
		inserted++
	}
	return inserted, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]model.Product, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	return s.products.List(ctx, f)
}

// ListMine returns the actor's own products. Vendor or admin.
func (s *ProductService) ListMine(ctx context.Context, actor *model.User, page, limit int) ([]model.Product, int, error) {
	if err := Authorize(actor, model.RoleVendor, model.RoleAdmin); err != nil {
		return nil, 0, err
	}
	return s.List(ctx, ProductFilter{CreatedBy: actor.ID, Page: page, Limit: limit})
}

// Update edits a product. Owner or admin.
func (s *ProductService) Update(ctx context.Context, actor *model.User, id int64, in ProductInput) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwnerOrRole(actor, product.CreatedBy, model.RoleAdmin); err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		product.Name = name
	}
	if in.Price > 0 {
		product.Price = in.Price
	}
	if in.CategoryID != 0 {
		product.CategoryID = in.CategoryID
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}
	if in.Stock != nil && *in.Stock >= 0 {
		product.Stock = *in.Stock
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ToggleStatus flips the active flag. Owner or admin.
func (s *ProductService) ToggleStatus(ctx context.Context, actor *model.User, id int64) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwnerOrRole(actor, product.CreatedBy, model.RoleAdmin); err != nil {
		return nil, err
	}
	product.IsActive = !product.IsActive
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product. Owner or admin.
func (s *ProductService) Delete(ctx context.Context, actor *model.User, id int64) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeOwnerOrRole(actor, product.CreatedBy, model.RoleAdmin); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
