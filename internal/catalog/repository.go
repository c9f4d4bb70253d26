package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hardwarehub-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, kind Kind, q ListQuery) ([]Entry, int, error)
	GetByID(ctx context.Context, kind Kind, id uint) (*Entry, error)
	Create(ctx context.Context, kind Kind, in CreateInput) (*Entry, error)
	Update(ctx context.Context, kind Kind, id uint, in UpdateInput) (*Entry, error)
	Deactivate(ctx context.Context, kind Kind, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func specFor(kind Kind) (kindSpec, error) {
	spec, ok := kinds[kind]
	if !ok {
		return kindSpec{}, ErrUnknownKind
	}
	return spec, nil
}

func (s kindSpec) columns() string {
	price := "NULL::numeric"
	if s.hasPrice {
		price = "base_price"
	}
	return "id, name, description, " + price + ", is_active, created_at, updated_at"
}

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.BasePrice, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func mapWriteErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return ErrDuplicateName
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func (r *repository) List(ctx context.Context, kind Kind, q ListQuery) ([]Entry, int, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, 0, err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.String("table", spec.table),
	)

	where := []string{}
	args := []any{}

	if !q.IncludeInactive {
		where = append(where, "is_active = TRUE")
	}
	if q.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+q.Search+"%")
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+spec.table+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT ` + spec.columns() + ` FROM ` + spec.table + whereSQL +
		` ORDER BY name ASC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, q.Limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, kind Kind, id uint) (*Entry, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(r.db.QueryRowContext(ctx,
		`SELECT `+spec.columns()+` FROM `+spec.table+` WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Create(ctx context.Context, kind Kind, in CreateInput) (*Entry, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}

	var row *sql.Row
	if spec.hasPrice {
		row = r.db.QueryRowContext(ctx, `
			INSERT INTO `+spec.table+` (name, description, base_price)
			VALUES ($1, $2, $3)
			RETURNING `+spec.columns(), in.Name, in.Description, in.BasePrice)
	} else {
		row = r.db.QueryRowContext(ctx, `
			INSERT INTO `+spec.table+` (name, description)
			VALUES ($1, $2)
			RETURNING `+spec.columns(), in.Name, in.Description)
	}

	e, err := scanEntry(row)
	if err != nil {
		err = mapWriteErr(err)
		if err != ErrDuplicateName {
			logger.FromCtx(ctx).Error("db: failed to insert catalog entry",
				zap.String("table", spec.table),
				zap.String("name", in.Name),
				zap.Error(err),
			)
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, kind Kind, id uint, in UpdateInput) (*Entry, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}

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
	if in.BasePrice != nil && spec.hasPrice {
		add("base_price", *in.BasePrice)
	}
	if in.IsActive != nil {
		add("is_active", *in.IsActive)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, kind, id)
	}

	set = append(set, "updated_at = NOW()")
	query := `UPDATE ` + spec.table + ` SET ` + strings.Join(set, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)+1) + spec.columns()
	args = append(args, id)

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return &e, nil
}

func (r *repository) Deactivate(ctx context.Context, kind Kind, id uint) error {
	spec, err := specFor(kind)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE `+spec.table+` SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
