package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hardwarehub-be/internal/db"
	"hardwarehub-be/internal/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	// Create checks out a cart: stock, order rows, history and the cart reset
	// commit together or not at all.
	Create(ctx context.Context, o *Order, reset CartReset) error
	List(ctx context.Context, f ListFilter) ([]Order, int, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	UpdateStatus(ctx context.Context, id uint, from, to Status, note string) error
	Cancel(ctx context.Context, o *Order, payment PaymentStatus, note string) error
	UpdateTracking(ctx context.Context, id uint, t Tracking) error
	Stats(ctx context.Context, todayStart time.Time) (Stats, error)
	MigrateLegacyStatuses(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Order, reset CartReset) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("user_id", o.UserID),
		zap.String("order_number", o.OrderNumber),
	)
	start := time.Now()

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// 1. Lock the cart. Cart saves update the carts row before touching
		// cart_items, so they wait here until checkout commits.
		if err := lockCart(ctx, tx, reset.CartID, o.Items); err != nil {
			return err
		}

		// 2. Deduct stock, conditional on availability
		for _, item := range o.Items {
			res, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock = stock - $1, updated_at = NOW()
				WHERE id = $2 AND stock >= $1
			`, item.Quantity, item.ProductID)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductName)
			}
		}

		// 3. Insert order
		a := o.ShippingAddress
		err := tx.QueryRowContext(ctx, `
			INSERT INTO orders (
				order_number, user_id, subtotal, tax, shipping_cost, total_amount, status,
				full_name, phone, address_line1, address_line2, city, state, postal_code, country,
				payment_method, payment_status, transaction_id, notes
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
			RETURNING id, created_at, updated_at
		`,
			o.OrderNumber, o.UserID, o.Subtotal, o.Tax, o.ShippingCost, o.TotalAmount, o.Status,
			a.FullName, a.Phone, a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode, a.Country,
			o.Payment.Method, o.Payment.Status, o.Payment.TransactionID, o.Notes,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
				return ErrOrderNumberConflict
			}
			return err
		}

		// 4. Item snapshots
		for i := range o.Items {
			item := &o.Items[i]
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, product_id, product_name, quantity, price, subtotal)
				VALUES ($1,$2,$3,$4,$5,$6)
				RETURNING id
			`, o.ID, item.ProductID, item.ProductName, item.Quantity, item.Price, item.Subtotal).Scan(&item.ID); err != nil {
				return err
			}
		}

		// 5. Initial history
		for i := range o.History {
			h := &o.History[i]
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO order_status_history (order_id, status, note)
				VALUES ($1,$2,$3)
				RETURNING created_at
			`, o.ID, h.Status, h.Note).Scan(&h.CreatedAt); err != nil {
				return err
			}
		}

		// 6. Empty the cart
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, reset.CartID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE carts
			SET subtotal = $1, tax = $2, shipping_cost = $3, total_amount = $4, updated_at = NOW()
			WHERE id = $5
		`, reset.Subtotal, reset.Tax, reset.ShippingCost, reset.TotalAmount, reset.CartID)
		return err
	})
	if err != nil {
		log.Warn("checkout transaction rolled back",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}

	log.Info("checkout committed",
		zap.Uint("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// lockCart takes the cart row lock and checks that the cart still holds
// exactly the lines being ordered.
func lockCart(ctx context.Context, tx *sql.Tx, cartID uint, items []Item) error {
	var id uint
	err := tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCartChanged
	}
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity, price
		FROM cart_items
		WHERE cart_id = $1
	`, cartID)
	if err != nil {
		return err
	}
	defer rows.Close()

	want := make(map[uint]Item, len(items))
	for _, it := range items {
		want[it.ProductID] = it
	}

	seen := 0
	for rows.Next() {
		var (
			productID uint
			quantity  int
			price     decimal.Decimal
		)
		if err := rows.Scan(&productID, &quantity, &price); err != nil {
			return err
		}
		it, ok := want[productID]
		if !ok || it.Quantity != quantity || !it.Price.Equal(price) {
			return ErrCartChanged
		}
		seen++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if seen != len(want) {
		return ErrCartChanged
	}
	return nil
}

const orderColumns = `
	id, order_number, user_id, subtotal, tax, shipping_cost, total_amount, status,
	full_name, phone, address_line1, address_line2, city, state, postal_code, country,
	payment_method, payment_status, transaction_id,
	tracking_carrier, tracking_number, tracking_url, estimated_delivery,
	notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	a := &o.ShippingAddress
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Subtotal, &o.Tax, &o.ShippingCost, &o.TotalAmount, &o.Status,
		&a.FullName, &a.Phone, &a.AddressLine1, &a.AddressLine2, &a.City, &a.State, &a.PostalCode, &a.Country,
		&o.Payment.Method, &o.Payment.Status, &o.Payment.TransactionID,
		&o.Tracking.Carrier, &o.Tracking.TrackingNumber, &o.Tracking.TrackingURL, &o.Tracking.EstimatedDelivery,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Order, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if f.UserID != nil {
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)+1))
		args = append(args, *f.UserID)
	}
	if f.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, f.Status)
	}
	if f.From != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)+1))
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)+1))
		args = append(args, *f.To)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	query := `SELECT ` + orderColumns + ` FROM orders` + whereSQL +
		` ORDER BY created_at DESC, id DESC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	orders := []Order{}
	index := map[uint]int{}
	ids := []int64{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		o.Items = []Item{}
		index[o.ID] = len(orders)
		ids = append(ids, int64(o.ID))
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return orders, total, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT order_id, id, product_id, product_name, quantity, price, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC
	`, pq.Array(ids))
	if err != nil {
		log.Error("items query failed", zap.Error(err))
		return nil, 0, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID uint
		var it Item
		if err := itemRows.Scan(&orderID, &it.ID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return nil, 0, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return orders, total, itemRows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, product_name, quantity, price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	o.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hist, err := r.db.QueryContext(ctx, `
		SELECT status, note, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer hist.Close()

	o.History = []HistoryEntry{}
	for hist.Next() {
		var h HistoryEntry
		if err := hist.Scan(&h.Status, &h.Note, &h.CreatedAt); err != nil {
			return nil, err
		}
		o.History = append(o.History, h)
	}
	return &o, hist.Err()
}

func appendHistory(ctx context.Context, tx *sql.Tx, orderID uint, status Status, note string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, note)
		VALUES ($1, $2, $3)
	`, orderID, status, note)
	return err
}

// UpdateStatus writes the new status only if the stored status is still
// from, and appends the history entry in the same transaction.
func (r *repository) UpdateStatus(ctx context.Context, id uint, from, to Status, note string) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status = $3
		`, to, id, from)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrStatusConflict
		}
		return appendHistory(ctx, tx, id, to, note)
	})
}

func (r *repository) Cancel(ctx context.Context, o *Order, payment PaymentStatus, note string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Cancel"),
		zap.Uint("order_id", o.ID),
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET status = $1, payment_status = $2, updated_at = NOW()
			WHERE id = $3 AND status = $4
		`, StatusCancelled, payment, o.ID, o.Status)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrStatusConflict
		}

		// Products deleted since checkout have nothing to restore.
		for _, item := range o.Items {
			if _, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock = stock + $1, updated_at = NOW()
				WHERE id = $2
			`, item.Quantity, item.ProductID); err != nil {
				return err
			}
		}

		return appendHistory(ctx, tx, o.ID, StatusCancelled, note)
	})
	if err != nil {
		log.Warn("cancel transaction rolled back", zap.Error(err))
	}
	return err
}

func (r *repository) UpdateTracking(ctx context.Context, id uint, t Tracking) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET tracking_carrier = $1, tracking_number = $2, tracking_url = $3,
			estimated_delivery = $4, updated_at = NOW()
		WHERE id = $5
	`, t.Carrier, t.TrackingNumber, t.TrackingURL, t.EstimatedDelivery, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Stats(ctx context.Context, todayStart time.Time) (Stats, error) {
	stats := Stats{ByStatus: map[Status]int{}, Revenue: decimal.Zero}

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		GROUP BY status
	`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var status Status
		var count int
		var sum decimal.Decimal
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return stats, err
		}
		stats.ByStatus[status] = count
		stats.TotalOrders += count
		if status != StatusCancelled {
			stats.Revenue = stats.Revenue.Add(sum)
		}
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE created_at >= $1`, todayStart).
		Scan(&stats.TodayOrders)
	return stats, err
}

func (r *repository) MigrateLegacyStatuses(ctx context.Context) (int64, error) {
	keys := legacyStatusKeys()

	cases := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)*2+1)
	for _, k := range keys {
		cases = append(cases, fmt.Sprintf("WHEN $%d THEN $%d", len(args)+1, len(args)+2))
		args = append(args, k, string(legacyStatuses[k]))
	}
	query := `UPDATE orders SET status = CASE status ` + strings.Join(cases, " ") +
		fmt.Sprintf(` END, updated_at = NOW() WHERE status = ANY($%d)`, len(args)+1)
	args = append(args, pq.Array(keys))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.FromCtx(ctx).Info("legacy order statuses migrated", zap.Int64("rows", n))
	}
	return n, nil
}
