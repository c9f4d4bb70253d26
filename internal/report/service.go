package report

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/metrics"
	"hardwarehub-be/internal/servicerequest"
	"hardwarehub-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultWindow    = 30 * 24 * time.Hour
	topLimit         = 10
	recentOrderLimit = 5
	trendDateLayout  = "2006-01-02"
)

type Service interface {
	Sales(ctx context.Context, q Query) (*SalesReport, error)
	Services(ctx context.Context, q Query) (*ServiceReport, error)
	Dashboard(ctx context.Context, q Query) (*Dashboard, error)
}

// LegacyMigrator rewrites historical order statuses to the current set. The
// order repository implements it.
type LegacyMigrator interface {
	MigrateLegacyStatuses(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	legacy LegacyMigrator
	now    func() time.Time
}

func NewService(repo Repository, legacy LegacyMigrator) Service {
	return &service{repo: repo, legacy: legacy, now: time.Now}
}

// migrateLegacy runs before order aggregation so old "refunded" rows count as
// cancelled. A failure is logged and the report still runs.
func (s *service) migrateLegacy(ctx context.Context) {
	if s.legacy == nil {
		return
	}
	if _, err := s.legacy.MigrateLegacyStatuses(ctx); err != nil {
		logger.FromCtx(ctx).Warn("legacy status migration failed", zap.Error(err))
	}
}

// resolveWindow defaults to the last 30 days. A date-only end date covers the
// whole day.
func (s *service) resolveWindow(q Query) (Window, error) {
	w := Window{GroupBy: GroupBy(strings.ToLower(strings.TrimSpace(q.GroupBy)))}
	if w.GroupBy == "" {
		w.GroupBy = GroupByDay
	}
	if !w.GroupBy.Valid() {
		return w, ErrInvalidGroupBy
	}

	w.End = s.now()
	if q.EndDate != "" {
		end, dateOnly, err := utils.ParseDate(strings.TrimSpace(q.EndDate))
		if err != nil {
			return w, ErrInvalidEndDate
		}
		if dateOnly {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		w.End = end
	}

	w.Start = w.End.Add(-defaultWindow)
	if q.StartDate != "" {
		start, _, err := utils.ParseDate(strings.TrimSpace(q.StartDate))
		if err != nil {
			return w, ErrInvalidStartDate
		}
		w.Start = start
	}

	if w.Start.After(w.End) {
		return w, ErrInvalidRange
	}
	return w, nil
}

func (s *service) Sales(ctx context.Context, q Query) (*SalesReport, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Sales"),
	)
	timer := metrics.StartTimer()

	w, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}
	s.migrateLegacy(ctx)

	buckets, err := s.repo.SalesBuckets(ctx, w)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.TopProducts(ctx, w, topLimit)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.TopCustomers(ctx, w, topLimit)
	if err != nil {
		return nil, err
	}

	log.Debug("sales report built",
		zap.Int("buckets", len(buckets)),
		zap.Duration("duration", timer.Duration()),
	)
	return &SalesReport{
		Window:       w,
		Buckets:      buckets,
		TopProducts:  products,
		TopCustomers: customers,
		Summary:      summarizeSales(buckets),
	}, nil
}

func (s *service) Services(ctx context.Context, q Query) (*ServiceReport, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Services"),
	)
	timer := metrics.StartTimer()

	w, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}

	buckets, err := s.repo.ServiceBuckets(ctx, w)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.ServiceStatusCounts(ctx, w)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.ServiceTypeCounts(ctx, w)
	if err != nil {
		return nil, err
	}

	log.Debug("service report built",
		zap.Int("buckets", len(buckets)),
		zap.Duration("duration", timer.Duration()),
	)
	return &ServiceReport{
		Window:        w,
		Buckets:       buckets,
		ByStatus:      byStatus,
		ByServiceType: byType,
		Summary:       summarizeServices(byStatus),
	}, nil
}

func (s *service) Dashboard(ctx context.Context, q Query) (*Dashboard, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Dashboard"),
	)
	timer := metrics.StartTimer()

	w, err := s.resolveWindow(q)
	if err != nil {
		return nil, err
	}
	// The trend is always daily.
	w.GroupBy = GroupByDay
	s.migrateLegacy(ctx)

	sales, err := s.repo.SalesBuckets(ctx, w)
	if err != nil {
		return nil, err
	}
	requests, err := s.repo.ServiceBuckets(ctx, w)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.ServiceStatusCounts(ctx, w)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentOrders(ctx, recentOrderLimit)
	if err != nil {
		return nil, err
	}

	log.Debug("dashboard built", zap.Duration("duration", timer.Duration()))
	return &Dashboard{
		Window:        w,
		Sales:         summarizeSales(sales),
		Services:      summarizeServices(byStatus),
		Trend:         mergeTrend(sales, requests),
		LowStockCount: lowStock,
		RecentOrders:  recent,
	}, nil
}

func summarizeSales(buckets []SalesBucket) SalesSummary {
	sum := SalesSummary{TotalSales: decimal.Zero}
	for _, b := range buckets {
		sum.TotalSales = sum.TotalSales.Add(b.TotalSales)
		sum.OrderCount += b.OrderCount
	}
	sum.AverageOrderValue = average(sum.TotalSales, sum.OrderCount)
	return sum
}

func summarizeServices(byStatus []StatusCount) ServiceSummary {
	var sum ServiceSummary
	for _, c := range byStatus {
		sum.Total += c.Count
		if c.Status == string(servicerequest.StatusCompleted) {
			sum.Completed += c.Count
		}
	}
	sum.CompletionRate = completionRate(sum.Completed, sum.Total)
	return sum
}

// completionRate is completed/total as a percentage with two decimals, 0 when
// there is nothing to complete.
func completionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}

// mergeTrend joins daily sales and daily requests on the date.
func mergeTrend(sales []SalesBucket, requests []ServiceBucket) []TrendPoint {
	points := map[string]*TrendPoint{}
	get := func(t time.Time) *TrendPoint {
		key := t.Format(trendDateLayout)
		p, ok := points[key]
		if !ok {
			p = &TrendPoint{Date: key, Sales: decimal.Zero}
			points[key] = p
		}
		return p
	}

	for _, b := range sales {
		p := get(b.Period)
		p.Sales = p.Sales.Add(b.TotalSales)
		p.Orders += b.OrderCount
	}
	for _, b := range requests {
		get(b.Period).ServiceRequests += b.Count
	}

	trend := make([]TrendPoint, 0, len(points))
	for _, p := range points {
		trend = append(trend, *p)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}
