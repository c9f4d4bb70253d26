package catalog

import (
	"context"
	"strings"

	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, kind Kind, q ListQuery) ([]Entry, int, error)
	// Get hides inactive entries unless includeInactive is set.
	Get(ctx context.Context, kind Kind, id uint, includeInactive bool) (*Entry, error)
	Create(ctx context.Context, kind Kind, in CreateInput) (*Entry, error)
	Update(ctx context.Context, kind Kind, id uint, in UpdateInput) (*Entry, error)
	// Delete is a soft delete.
	Delete(ctx context.Context, kind Kind, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, kind Kind, q ListQuery) ([]Entry, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
		zap.String("kind", string(kind)),
	)

	q.Page, q.Limit, _ = utils.Paginate(q.Page, q.Limit)
	q.Search = strings.TrimSpace(q.Search)

	entries, total, err := s.repo.List(ctx, kind, q)
	if err != nil {
		log.Error("failed to list catalog entries", zap.Error(err))
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *service) Get(ctx context.Context, kind Kind, id uint, includeInactive bool) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if !e.IsActive && !includeInactive {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *service) Create(ctx context.Context, kind Kind, in CreateInput) (*Entry, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrInvalidName
	}
	if in.BasePrice != nil {
		if !spec.hasPrice {
			return nil, ErrBasePriceNotValid
		}
		if in.BasePrice.IsNegative() {
			return nil, ErrInvalidBasePrice
		}
	} else if spec.hasPrice {
		zero := decimal.Zero
		in.BasePrice = &zero
	}

	e, err := s.repo.Create(ctx, kind, in)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("catalog entry created",
		zap.String("kind", string(kind)),
		zap.Uint("id", e.ID),
		zap.String("name", e.Name),
	)
	return e, nil
}

func (s *service) Update(ctx context.Context, kind Kind, id uint, in UpdateInput) (*Entry, error) {
	spec, err := specFor(kind)
	if err != nil {
		return nil, err
	}

	if in.Name == nil && in.Description == nil && in.BasePrice == nil && in.IsActive == nil {
		return nil, ErrEmptyUpdate
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		in.Name = &name
	}
	if in.BasePrice != nil {
		if !spec.hasPrice {
			return nil, ErrBasePriceNotValid
		}
		if in.BasePrice.IsNegative() {
			return nil, ErrInvalidBasePrice
		}
	}

	return s.repo.Update(ctx, kind, id, in)
}

func (s *service) Delete(ctx context.Context, kind Kind, id uint) error {
	if err := s.repo.Deactivate(ctx, kind, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("catalog entry deactivated",
		zap.String("kind", string(kind)),
		zap.Uint("id", id),
	)
	return nil
}
