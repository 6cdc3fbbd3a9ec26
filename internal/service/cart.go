package service

import (
	"context"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
)

// CartStore persists one cart per user. Get returns an empty cart, never
// ErrNotFound: an absent cart and an empty one are the same thing.
type CartStore interface {
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	Save(ctx context.Context, c *model.Cart) error
}

// CartService mutates the actor's own cart; ownership is implicit in the key.
type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddItem puts a product in the cart, summing quantities for repeats.
func (s *CartService) AddItem(ctx context.Context, actor *model.User, productID int64, quantity int) (*model.Cart, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	cart, err := s.carts.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.CartItem{ProductID: productID, Quantity: quantity})
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a product from the cart.
func (s *CartService) RemoveItem(ctx context.Context, actor *model.User, productID int64) (*model.Cart, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	cart, err := s.carts.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItem sets the quantity of a product already in the cart.
func (s *CartService) UpdateItem(ctx context.Context, actor *model.User, productID int64, quantity int) (*model.Cart, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if quantity < 1 {
		return nil, validationf("quantity must be at least 1")
	}
	cart, err := s.carts.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			if err := s.carts.Save(ctx, cart); err != nil {
				return nil, err
			}
			return cart, nil
		}
	}
	return nil, ErrNotFound
}

// Get returns the actor's cart.
func (s *CartService) Get(ctx context.Context, actor *model.User) (*model.Cart, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	return s.carts.Get(ctx, actor.ID)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, actor *model.User) (*model.Cart, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	cart, err := s.carts.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = nil
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
