package report

import (
	"context"
	"database/sql"
	"fmt"

	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	SalesBuckets(ctx context.Context, w Window) ([]SalesBucket, error)
	TopProducts(ctx context.Context, w Window, limit int) ([]ProductSales, error)
	TopCustomers(ctx context.Context, w Window, limit int) ([]CustomerSpend, error)
	ServiceBuckets(ctx context.Context, w Window) ([]ServiceBucket, error)
	ServiceStatusCounts(ctx context.Context, w Window) ([]StatusCount, error)
	ServiceTypeCounts(ctx context.Context, w Window) ([]ServiceTypeCount, error)
	LowStockCount(ctx context.Context) (int, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// bucketExpr returns the date_trunc expression for column. g must already be
// validated; it is interpolated into the query.
func bucketExpr(g GroupBy, column string) string {
	if !g.Valid() {
		g = GroupByDay
	}
	return fmt.Sprintf("date_trunc('%s', %s)", g, column)
}

func (r *repository) SalesBuckets(ctx context.Context, w Window) ([]SalesBucket, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SalesBuckets"),
	)

	query := fmt.Sprintf(`
		SELECT %s AS period, COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE status <> $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY period
		ORDER BY period
	`, bucketExpr(w.GroupBy, "created_at"))

	rows, err := r.db.QueryContext(ctx, query, order.StatusCancelled, w.Start, w.End)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	buckets := []SalesBucket{}
	for rows.Next() {
		var b SalesBucket
		if err := rows.Scan(&b.Period, &b.TotalSales, &b.OrderCount); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		b.AverageOrderValue = average(b.TotalSales, b.OrderCount)
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *repository) TopProducts(ctx context.Context, w Window, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.product_id, oi.product_name, SUM(oi.quantity), SUM(oi.subtotal)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status <> $1 AND o.created_at >= $2 AND o.created_at <= $3
		GROUP BY oi.product_id, oi.product_name
		ORDER BY SUM(oi.quantity) DESC, oi.product_id ASC
		LIMIT $4
	`, order.StatusCancelled, w.Start, w.End, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("top products query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []ProductSales{}
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Revenue); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) TopCustomers(ctx context.Context, w Window, limit int) ([]CustomerSpend, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, COUNT(o.id), SUM(o.total_amount)
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.status <> $1 AND o.created_at >= $2 AND o.created_at <= $3
		GROUP BY u.id, u.name, u.email
		ORDER BY SUM(o.total_amount) DESC, u.id ASC
		LIMIT $4
	`, order.StatusCancelled, w.Start, w.End, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("top customers query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	customers := []CustomerSpend{}
	for rows.Next() {
		var c CustomerSpend
		if err := rows.Scan(&c.UserID, &c.Name, &c.Email, &c.OrderCount, &c.TotalSpent); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *repository) ServiceBuckets(ctx context.Context, w Window) ([]ServiceBucket, error) {
	query := fmt.Sprintf(`
		SELECT %s AS period, COUNT(*)
		FROM service_requests
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY period
		ORDER BY period
	`, bucketExpr(w.GroupBy, "created_at"))

	rows, err := r.db.QueryContext(ctx, query, w.Start, w.End)
	if err != nil {
		logger.FromCtx(ctx).Error("service buckets query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	buckets := []ServiceBucket{}
	for rows.Next() {
		var b ServiceBucket
		if err := rows.Scan(&b.Period, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *repository) ServiceStatusCounts(ctx context.Context, w Window) ([]StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM service_requests
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY status
		ORDER BY status
	`, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []StatusCount{}
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *repository) ServiceTypeCounts(ctx context.Context, w Window) ([]ServiceTypeCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT st.id, st.name, COUNT(*)
		FROM service_requests sr
		JOIN service_types st ON st.id = sr.service_type_id
		WHERE sr.created_at >= $1 AND sr.created_at <= $2
		GROUP BY st.id, st.name
		ORDER BY COUNT(*) DESC, st.id ASC
	`, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []ServiceTypeCount{}
	for rows.Next() {
		var c ServiceTypeCount
		if err := rows.Scan(&c.ServiceTypeID, &c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *repository) LowStockCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE stock <= low_stock_alert`).Scan(&n)
	return n, err
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_number, user_id, total_amount, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []RecentOrder{}
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}
