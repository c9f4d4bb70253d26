package cart

import (
	"context"
	"database/sql"

	"hardwarehub-be/internal/db"
	"hardwarehub-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// FindByUser returns (nil, nil) when the user has no cart yet.
	FindByUser(ctx context.Context, userID uint) (*Cart, error)
	Create(ctx context.Context, c *Cart) error
	Save(ctx context.Context, c *Cart) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUser(ctx context.Context, userID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "FindByUser"),
		zap.Uint("user_id", userID),
	)

	var c Cart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, subtotal, tax, shipping_cost, total_amount, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.Subtotal, &c.Tax, &c.ShippingCost, &c.TotalAmount, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load cart", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.product_id, p.name, p.image, ci.quantity, ci.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id ASC
	`, c.ID)
	if err != nil {
		log.Error("failed to load cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	c.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Image, &it.Quantity, &it.Price); err != nil {
			log.Error("cart item scan failed", zap.Error(err))
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Create inserts an empty cart. A concurrent insert for the same user is
// folded into the existing row.
func (r *repository) Create(ctx context.Context, c *Cart) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, subtotal, tax, shipping_cost, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
		RETURNING id, updated_at
	`, c.UserID, c.Subtotal, c.Tax, c.ShippingCost, c.TotalAmount).Scan(&c.ID, &c.UpdatedAt)
}

// Save rewrites the cart's lines and totals in one transaction.
func (r *repository) Save(ctx context.Context, c *Cart) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
		zap.Uint("cart_id", c.ID),
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			UPDATE carts
			SET subtotal = $1, tax = $2, shipping_cost = $3, total_amount = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING updated_at
		`, c.Subtotal, c.Tax, c.ShippingCost, c.TotalAmount, c.ID).Scan(&c.UpdatedAt); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
			return err
		}

		for _, it := range c.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO cart_items (cart_id, product_id, quantity, price)
				VALUES ($1, $2, $3, $4)
			`, c.ID, it.ProductID, it.Quantity, it.Price); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save cart", zap.Error(err))
	}
	return err
}
