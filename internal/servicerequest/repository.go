package servicerequest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hardwarehub-be/internal/db"
	"hardwarehub-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, sr *ServiceRequest) error
	List(ctx context.Context, f ListFilter) ([]ServiceRequest, int, error)
	GetByID(ctx context.Context, id uint) (*ServiceRequest, error)
	Update(ctx context.Context, id uint, from Status, ch Change) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectRequest = `
	SELECT
		sr.id, sr.user_id, sr.service_type_id, st.name,
		sr.equipment_type_id, COALESCE(et.name, ''),
		sr.description, sr.preferred_date, sr.preferred_time, sr.contact_number, sr.address,
		sr.status, sr.technician, sr.scheduled_date, sr.created_at, sr.updated_at
	FROM service_requests sr
	JOIN service_types st ON st.id = sr.service_type_id
	LEFT JOIN equipment_types et ON et.id = sr.equipment_type_id`

func scanRequest(row interface{ Scan(...any) error }) (ServiceRequest, error) {
	var sr ServiceRequest
	var equipmentID sql.NullInt64
	err := row.Scan(
		&sr.ID, &sr.UserID, &sr.ServiceTypeID, &sr.ServiceTypeName,
		&equipmentID, &sr.EquipmentTypeName,
		&sr.Description, &sr.PreferredDate, &sr.PreferredTime, &sr.ContactNumber, &sr.Address,
		&sr.Status, &sr.Technician, &sr.ScheduledDate, &sr.CreatedAt, &sr.UpdatedAt,
	)
	if equipmentID.Valid {
		id := uint(equipmentID.Int64)
		sr.EquipmentTypeID = &id
	}
	return sr, err
}

func appendHistory(ctx context.Context, tx *sql.Tx, requestID uint, status Status, note string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO service_request_history (request_id, status, note)
		VALUES ($1, $2, $3)
	`, requestID, status, note)
	return err
}

func (r *repository) Create(ctx context.Context, sr *ServiceRequest) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("user_id", sr.UserID),
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO service_requests (
				user_id, service_type_id, equipment_type_id, description,
				preferred_date, preferred_time, contact_number, address, status
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id, created_at, updated_at
		`,
			sr.UserID, sr.ServiceTypeID, sr.EquipmentTypeID, sr.Description,
			sr.PreferredDate, sr.PreferredTime, sr.ContactNumber, sr.Address, sr.Status,
		).Scan(&sr.ID, &sr.CreatedAt, &sr.UpdatedAt)
		if err != nil {
			return err
		}

		for _, h := range sr.History {
			if err := appendHistory(ctx, tx, sr.ID, h.Status, h.Note); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create service request", zap.Error(err))
	}
	return err
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]ServiceRequest, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where := []string{}
	args := []any{}

	if f.UserID != nil {
		where = append(where, fmt.Sprintf("sr.user_id = $%d", len(args)+1))
		args = append(args, *f.UserID)
	}
	if f.Status != "" {
		where = append(where, fmt.Sprintf("sr.status = $%d", len(args)+1))
		args = append(args, f.Status)
	}
	if f.ServiceTypeID != nil {
		where = append(where, fmt.Sprintf("sr.service_type_id = $%d", len(args)+1))
		args = append(args, *f.ServiceTypeID)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_requests sr`+whereSQL, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := selectRequest + whereSQL +
		` ORDER BY sr.created_at DESC, sr.id DESC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	requests := []ServiceRequest{}
	for rows.Next() {
		sr, err := scanRequest(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		requests = append(requests, sr)
	}
	return requests, total, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*ServiceRequest, error) {
	sr, err := scanRequest(r.db.QueryRowContext(ctx, selectRequest+` WHERE sr.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, note, created_at
		FROM service_request_history
		WHERE request_id = $1
		ORDER BY created_at ASC, id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sr.History = []HistoryEntry{}
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(&h.Status, &h.Note, &h.CreatedAt); err != nil {
			return nil, err
		}
		sr.History = append(sr.History, h)
	}
	return &sr, rows.Err()
}

// Update applies ch only while the stored status is still from.
func (r *repository) Update(ctx context.Context, id uint, from Status, ch Change) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		set := []string{"updated_at = NOW()"}
		args := []any{}
		add := func(column string, v any) {
			set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
			args = append(args, v)
		}

		if ch.WriteStatus {
			add("status", ch.Status)
		}
		if ch.Technician != nil {
			add("technician", *ch.Technician)
		}
		if ch.ScheduledDate != nil {
			add("scheduled_date", *ch.ScheduledDate)
		}

		query := `UPDATE service_requests SET ` + strings.Join(set, ", ") +
			fmt.Sprintf(" WHERE id = $%d AND status = $%d", len(args)+1, len(args)+2)
		args = append(args, id, from)

		res, err := tx.ExecContext(ctx, query, args...)
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

		if ch.WriteStatus {
			return appendHistory(ctx, tx, id, ch.Status, ch.Note)
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_requests WHERE id = $1`, id)
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
