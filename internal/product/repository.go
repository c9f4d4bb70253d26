package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hardwarehub-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Product, int, error)
	GetByID(ctx context.Context, id uint) (Product, error)
	Create(ctx context.Context, in NewProductInput) (Product, error)
	Update(ctx context.Context, id uint, in UpdateProductInput) (Product, error)
	Delete(ctx context.Context, id uint) error
	CategoryCounts(ctx context.Context) (map[Category]int, error)
	Suggestions(ctx context.Context, q string, limit int) ([]string, error)
	LowStock(ctx context.Context) ([]Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, category, stock, image, low_stock_alert, created_at, updated_at`

var sortColumns = map[string]string{
	"price":      "price",
	"name":       "name",
	"stock":      "stock",
	"created_at": "created_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Stock,
		&p.Image,
		&p.LowStockAlert,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]Product, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)
	start := time.Now()

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if q.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, q.Category)
	}
	if q.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+q.Search+"%")
	}
	if q.MinPrice != nil {
		where = append(where, fmt.Sprintf("price >= $%d", len(args)+1))
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, fmt.Sprintf("price <= $%d", len(args)+1))
		args = append(args, *q.MaxPrice)
	}
	if q.InStock != nil {
		if *q.InStock {
			where = append(where, "stock > 0")
		} else {
			where = append(where, "stock = 0")
		}
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- count ----------
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- sort ----------
	field, ok := sortColumns[q.SortBy]
	if !ok {
		field = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(q.SortDir, "asc") {
		dir = "ASC"
	}

	offset := (q.Page - 1) * q.Limit
	query := `SELECT ` + productColumns + ` FROM products` + whereSQL +
		` ORDER BY ` + field + ` ` + dir + `, id ` + dir +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, offset)

	log.Debug("executing query", zap.String("query", query), zap.Int("args_count", len(args)))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]Product, 0, q.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	log.Debug("query finished",
		zap.Int("count", len(products)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return products, total, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, in NewProductInput) (Product, error) {
	lowStock := DefaultLowStockAlert
	if in.LowStockAlert != nil {
		lowStock = *in.LowStockAlert
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, category, stock, image, low_stock_alert)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		in.Name, in.Description, in.Price, in.Category, in.Stock, in.Image, lowStock,
	))
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("name", in.Name),
			zap.Error(err),
		)
		return Product{}, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id uint, in UpdateProductInput) (Product, error) {
	set := []string{}
	args := []any{}

	add := func(column string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, v)
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Price != nil {
		add("price", *in.Price)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.Stock != nil {
		add("stock", *in.Stock)
	}
	if in.Image != nil {
		add("image", *in.Image)
	}
	if in.LowStockAlert != nil {
		add("low_stock_alert", *in.LowStockAlert)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	set = append(set, "updated_at = NOW()")
	query := `UPDATE products SET ` + strings.Join(set, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)+1) + productColumns
	args = append(args, id)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update product",
			zap.Uint("product_id", id),
			zap.Error(err),
		)
	}
	return p, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) CategoryCounts(ctx context.Context) (map[Category]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Category]int)
	for rows.Next() {
		var c Category
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		counts[c] = n
	}
	return counts, rows.Err()
}

func (r *repository) Suggestions(ctx context.Context, q string, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name
		FROM products
		WHERE name ILIKE $1
		ORDER BY (name ILIKE $2) DESC, name ASC
		LIMIT $3
	`, "%"+q+"%", q+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *repository) LowStock(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE stock <= low_stock_alert ORDER BY stock ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
