package cart

import (
	"context"
	"errors"

	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, userID, productID uint, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID, productID uint) (*Cart, error)
	Clear(ctx context.Context, userID uint) (*Cart, error)
	Pricing() Pricing
}

// ProductReader is the slice of the product repository the cart needs.
type ProductReader interface {
	GetByID(ctx context.Context, id uint) (product.Product, error)
}

type service struct {
	repo     Repository
	products ProductReader
	pricing  Pricing
}

func NewService(repo Repository, products ProductReader, pricing Pricing) Service {
	return &service{repo: repo, products: products, pricing: pricing}
}

func (s *service) Pricing() Pricing {
	return s.pricing
}

func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	c, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		s.pricing.Apply(c)
		return c, nil
	}

	c = &Cart{UserID: userID, Items: []Item{}}
	s.pricing.Apply(c)
	if err := s.repo.Create(ctx, c); err != nil {
		logger.FromCtx(ctx).Error("failed to create cart",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (s *service) loadProduct(ctx context.Context, productID uint) (product.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if errors.Is(err, product.ErrProductNotFound) {
		return p, ErrProductNotFound
	}
	return p, err
}

func (s *service) save(ctx context.Context, c *Cart) (*Cart, error) {
	s.pricing.Apply(c)
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) AddItem(ctx context.Context, userID, productID uint, quantity int) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Stock < quantity {
		log.Info("add to cart rejected: insufficient stock", zap.Int("stock", p.Stock))
		return nil, ErrInsufficientStock
	}

	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := c.indexOf(productID); i >= 0 {
		next := c.Items[i].Quantity + quantity
		if next > p.Stock {
			log.Info("add to cart rejected: line exceeds stock",
				zap.Int("stock", p.Stock),
				zap.Int("line_quantity", next),
			)
			return nil, ErrInsufficientStock
		}
		c.Items[i].Quantity = next
		c.Items[i].Price = p.Price
		c.Items[i].Name = p.Name
		c.Items[i].Image = p.Image
	} else {
		c.Items = append(c.Items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Quantity:  quantity,
			Price:     p.Price,
		})
	}

	c, err = s.save(ctx, c)
	if err != nil {
		return nil, err
	}

	log.Info("item added to cart", zap.String("total", c.TotalAmount.StringFixed(2)))
	return c, nil
}

func (s *service) UpdateItem(ctx context.Context, userID, productID uint, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := c.indexOf(productID)
	if i < 0 {
		return nil, ErrCartItemNotFound
	}

	p, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Stock < quantity {
		return nil, ErrInsufficientStock
	}

	c.Items[i].Quantity = quantity
	return s.save(ctx, c)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uint) (*Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := c.indexOf(productID)
	if i < 0 {
		return nil, ErrCartItemNotFound
	}

	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return s.save(ctx, c)
}

func (s *service) Clear(ctx context.Context, userID uint) (*Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.Items = []Item{}
	return s.save(ctx, c)
}
