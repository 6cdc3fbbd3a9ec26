package service

import (
	"context"
	"strings"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// CategoryStore persists categories. Create returns ErrConflict for duplicate names.
type CategoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int64) error
}

// CategoryService is admin-only category management.
type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, actor *model.User, name string, subcategories []string) (*model.Category, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("category name is required")
	}
	category := &model.Category{Name: name, Subcategories: subcategories}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, actor *model.User, id int64, name string, subcategories []string) (*model.Category, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		category.Name = name
	}
	if subcategories != nil {
		category.Subcategories = subcategories
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// AddSubcategory appends a subcategory if not already present.
func (s *CategoryService) AddSubcategory(ctx context.Context, actor *model.User, id int64, sub string) (*model.Category, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return nil, validationf("subcategory name is required")
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, existing := range category.Subcategories {
		if strings.EqualFold(existing, sub) {
			return nil, ErrConflict
		}
	}
	category.Subcategories = append(category.Subcategories, sub)
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RemoveSubcategory deletes a subcategory by name.
func (s *CategoryService) RemoveSubcategory(ctx context.Context, actor *model.User, id int64, sub string) (*model.Category, error) {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := category.Subcategories[:0]
	found := false
	for _, existing := range category.Subcategories {
		if strings.EqualFold(existing, sub) {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return nil, ErrNotFound
	}
	category.Subcategories = kept
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor *model.User, id int64) error {
	if err := Authorize(actor, model.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
