package product

import (
	"context"
	"strings"
	"time"

	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/metrics"
	"hardwarehub-be/internal/utils"

	"go.uber.org/zap"
)

const maxSuggestions = 10

type Service interface {
	List(ctx context.Context, q ListQuery) (*ListResult, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, in NewProductInput) (*Product, error)
	Update(ctx context.Context, id uint, in UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]CategoryCount, error)
	Suggestions(ctx context.Context, q string) ([]string, error)
	LowStock(ctx context.Context) ([]Product, error)

	// InvalidateCache is called by other engines after they move stock.
	InvalidateCache(ctx context.Context)
	CacheStats() metrics.CacheSnapshot
}

type service struct {
	repo  Repository
	cache ListCache
}

func NewService(repo Repository, cache ListCache) Service {
	return &service{repo: repo, cache: cache}
}

func normalizeQuery(q ListQuery) (ListQuery, error) {
	q.Page, q.Limit, _ = utils.Paginate(q.Page, q.Limit)
	q.Search = strings.TrimSpace(q.Search)
	q.SortDir = strings.ToLower(q.SortDir)

	if q.Category != "" && !Category(q.Category).Valid() {
		return q, ErrInvalidCategory
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return q, ErrInvalidPriceRange
	}
	return q, nil
}

func (s *service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)
	start := time.Now()

	q, err := normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	key := q.CacheKey()
	if cached, ok := s.cache.Get(ctx, key); ok {
		log.Debug("product list cache hit", zap.String("key", key))
		return cached, nil
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	result := &ListResult{Items: items, Total: total, Page: q.Page, Limit: q.Limit}
	s.cache.Set(ctx, key, result)

	log.Info("get product list success",
		zap.Int("count", len(items)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func validateNew(in NewProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidName
	}
	if in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if in.Stock < 0 {
		return ErrInvalidStock
	}
	if in.LowStockAlert != nil && *in.LowStockAlert < 0 {
		return ErrInvalidLowStockAlert
	}
	return nil
}

func validateUpdate(in UpdateProductInput) error {
	if in.Empty() {
		return ErrEmptyUpdate
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return ErrInvalidName
	}
	if in.Price != nil && in.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if in.Category != nil && !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if in.Stock != nil && *in.Stock < 0 {
		return ErrInvalidStock
	}
	if in.LowStockAlert != nil && *in.LowStockAlert < 0 {
		return ErrInvalidLowStockAlert
	}
	return nil
}

func (s *service) Create(ctx context.Context, in NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	in.Name = strings.TrimSpace(in.Name)
	if err := validateNew(in); err != nil {
		log.Warn("invalid product input", zap.Error(err))
		return nil, err
	}

	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	log.Info("product created", zap.Uint("product_id", p.ID))
	return &p, nil
}

func (s *service) Update(ctx context.Context, id uint, in UpdateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Uint("product_id", id),
	)

	if err := validateUpdate(in); err != nil {
		log.Warn("invalid product update", zap.Error(err))
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	log.Info("product updated")
	return &p, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	logger.FromCtx(ctx).Info("product deleted", zap.Uint("product_id", id))
	return nil
}

func (s *service) Categories(ctx context.Context) ([]CategoryCount, error) {
	counts, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryCount, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out, nil
}

func (s *service) Suggestions(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}
	return s.repo.Suggestions(ctx, q, maxSuggestions)
}

func (s *service) LowStock(ctx context.Context) ([]Product, error) {
	return s.repo.LowStock(ctx)
}

func (s *service) InvalidateCache(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

func (s *service) CacheStats() metrics.CacheSnapshot {
	return s.cache.Stats()
}
