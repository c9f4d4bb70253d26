package order

import (
	"context"
	"time"

	"hardwarehub-be/internal/cart"
	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/notify"
	"hardwarehub-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, userID uint, in CreateOrderInput) (*Order, error)
	List(ctx context.Context, userID uint, isAdmin bool, f ListFilter) (*ListResult, error)
	Get(ctx context.Context, userID uint, isAdmin bool, id uint) (*Order, error)
	UpdateStatus(ctx context.Context, id uint, in UpdateStatusInput) (*Order, error)
	Cancel(ctx context.Context, userID uint, isAdmin bool, id uint, reason string) (*Order, error)
	UpdateTracking(ctx context.Context, id uint, in TrackingInput) (*Order, error)
	Stats(ctx context.Context) (*Stats, error)
}

// CartReader is what checkout needs from the cart engine.
type CartReader interface {
	GetCart(ctx context.Context, userID uint) (*cart.Cart, error)
	Pricing() cart.Pricing
}

// CacheInvalidator is implemented by the product service.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type service struct {
	repo      Repository
	carts     CartReader
	products  CacheInvalidator
	publisher notify.Publisher
	now       func() time.Time
}

func NewService(repo Repository, carts CartReader, products CacheInvalidator, publisher notify.Publisher) Service {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &service{
		repo:      repo,
		carts:     carts,
		products:  products,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID uint, in CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("user_id", userID),
	)

	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if !in.ShippingAddress.Complete() {
		return nil, ErrInvalidShippingAddress
	}

	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		log.Info("checkout rejected: empty cart")
		return nil, ErrEmptyCart
	}

	now := s.now()
	o := &Order{
		OrderNumber:     utils.GenerateOrderNumber(now),
		UserID:          userID,
		Subtotal:        c.Subtotal,
		Tax:             c.Tax,
		ShippingCost:    c.ShippingCost,
		TotalAmount:     c.TotalAmount,
		Status:          StatusPending,
		ShippingAddress: in.ShippingAddress,
		Payment:         Payment{Method: in.PaymentMethod, Status: PaymentPending},
		Notes:           in.Notes,
		History:         []HistoryEntry{{Status: StatusPending, Note: "Order placed"}},
	}
	if in.PaymentMethod != PaymentCOD {
		o.Payment.Status = PaymentCompleted
		o.Payment.TransactionID = "TXN-" + uuid.NewString()
	}
	for _, line := range c.Items {
		o.Items = append(o.Items, Item{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Subtotal:    line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	empty := cart.Cart{}
	s.carts.Pricing().Apply(&empty)
	reset := CartReset{
		CartID:       c.ID,
		Subtotal:     empty.Subtotal,
		Tax:          empty.Tax,
		ShippingCost: empty.ShippingCost,
		TotalAmount:  empty.TotalAmount,
	}

	if err := s.repo.Create(ctx, o, reset); err != nil {
		return nil, err
	}
	s.products.InvalidateCache(ctx)

	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.String("payment_method", string(o.Payment.Method)),
	)
	return o, nil
}

func (s *service) migrateLegacy(ctx context.Context) {
	if _, err := s.repo.MigrateLegacyStatuses(ctx); err != nil {
		logger.FromCtx(ctx).Warn("legacy status migration failed", zap.Error(err))
	}
}

func (s *service) List(ctx context.Context, userID uint, isAdmin bool, f ListFilter) (*ListResult, error) {
	s.migrateLegacy(ctx)

	if !isAdmin {
		f.UserID = &userID
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	f.Page, f.Limit, _ = utils.Paginate(f.Page, f.Limit)

	orders, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: orders, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *service) Get(ctx context.Context, userID uint, isAdmin bool, id uint) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) publish(ctx context.Context, o *Order, status Status) {
	s.publisher.Publish(ctx, notify.Event{
		Type:       notify.OrderStatusChanged,
		ResourceID: o.ID,
		Status:     string(status),
		UserID:     o.UserID,
		OccurredAt: s.now().UTC(),
	})
}

func (s *service) UpdateStatus(ctx context.Context, id uint, in UpdateStatusInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Uint("order_id", id),
		zap.String("to", string(in.Status)),
	)

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := NormalizeStatus(string(o.Status))

	if err := validateStatusTransition(from, in.Status); err != nil {
		log.Info("status change rejected", zap.String("from", string(from)), zap.Error(err))
		return nil, err
	}

	note := in.Note
	if note == "" {
		note = "Status updated to " + string(in.Status)
	}

	if in.Status == StatusCancelled && from != StatusCancelled {
		if err := s.cancel(ctx, o, note); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.UpdateStatus(ctx, id, o.Status, in.Status, note); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, o, in.Status)
	log.Info("order status updated", zap.String("from", string(from)))

	return s.repo.GetByID(ctx, id)
}

// cancel restores stock and refunds captured payments.
func (s *service) cancel(ctx context.Context, o *Order, note string) error {
	payment := o.Payment.Status
	if payment == PaymentCompleted {
		payment = PaymentRefunded
	}
	if err := s.repo.Cancel(ctx, o, payment, note); err != nil {
		return err
	}
	s.products.InvalidateCache(ctx)
	return nil
}

func (s *service) Cancel(ctx context.Context, userID uint, isAdmin bool, id uint, reason string) (*Order, error) {
	o, err := s.Get(ctx, userID, isAdmin, id)
	if err != nil {
		return nil, err
	}
	if NormalizeStatus(string(o.Status)) != StatusPending {
		return nil, ErrInvalidStatusForCancel
	}

	note := "Cancelled by customer"
	if reason != "" {
		note += ": " + reason
	}
	if err := s.cancel(ctx, o, note); err != nil {
		return nil, err
	}

	s.publish(ctx, o, StatusCancelled)
	logger.FromCtx(ctx).Info("order cancelled",
		zap.Uint("order_id", id),
		zap.Uint("user_id", userID),
	)

	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateTracking(ctx context.Context, id uint, in TrackingInput) (*Order, error) {
	t := Tracking{
		Carrier:           in.Carrier,
		TrackingNumber:    in.TrackingNumber,
		TrackingURL:       in.TrackingURL,
		EstimatedDelivery: in.EstimatedDelivery,
	}
	if t.TrackingNumber == "" {
		t.TrackingNumber = utils.GenerateTrackingNumber(s.now())
	}

	if err := s.repo.UpdateTracking(ctx, id, t); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	s.migrateLegacy(ctx)

	stats, err := s.repo.Stats(ctx, utils.StartOfDay(s.now()))
	if err != nil {
		return nil, err
	}
	for _, st := range statuses {
		if _, ok := stats.ByStatus[st]; !ok {
			stats.ByStatus[st] = 0
		}
	}
	return &stats, nil
}
