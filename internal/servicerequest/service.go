package servicerequest

import (
	"context"
	"errors"
	"strings"
	"time"

	"hardwarehub-be/internal/catalog"
	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/notify"
	"hardwarehub-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, userID uint, in CreateInput) (*ServiceRequest, error)
	ListAll(ctx context.Context, f ListFilter) (*ListResult, error)
	ListByUser(ctx context.Context, userID uint, f ListFilter) (*ListResult, error)
	Get(ctx context.Context, userID uint, isAdmin bool, id uint) (*ServiceRequest, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*ServiceRequest, error)
	Cancel(ctx context.Context, userID uint, id uint) (*ServiceRequest, error)
	Delete(ctx context.Context, id uint) error
}

// CatalogReader resolves the referenced service and equipment types.
type CatalogReader interface {
	Get(ctx context.Context, kind catalog.Kind, id uint, includeInactive bool) (*catalog.Entry, error)
}

type service struct {
	repo      Repository
	catalog   CatalogReader
	publisher notify.Publisher
	now       func() time.Time
}

func NewService(repo Repository, catalog CatalogReader, publisher notify.Publisher) Service {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &service{repo: repo, catalog: catalog, publisher: publisher, now: time.Now}
}

func (s *service) requireActive(ctx context.Context, kind catalog.Kind, id uint, unavailable error) error {
	_, err := s.catalog.Get(ctx, kind, id, false)
	if errors.Is(err, catalog.ErrNotFound) {
		return unavailable
	}
	return err
}

func (s *service) Create(ctx context.Context, userID uint, in CreateInput) (*ServiceRequest, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Uint("user_id", userID),
	)

	in.Description = strings.TrimSpace(in.Description)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.Address = strings.TrimSpace(in.Address)
	if in.Description == "" || in.ContactNumber == "" {
		return nil, ErrMissingField
	}

	preferred, _, err := utils.ParseDate(strings.TrimSpace(in.PreferredDate))
	if err != nil {
		return nil, ErrInvalidPreferredDate
	}
	if utils.StartOfDay(preferred).Before(utils.StartOfDay(s.now().In(preferred.Location()))) {
		return nil, ErrPreferredDateInPast
	}

	if err := s.requireActive(ctx, catalog.KindServiceType, in.ServiceTypeID, ErrServiceTypeUnavailable); err != nil {
		return nil, err
	}
	if in.EquipmentTypeID != nil {
		if err := s.requireActive(ctx, catalog.KindEquipmentType, *in.EquipmentTypeID, ErrEquipmentTypeUnavailable); err != nil {
			return nil, err
		}
	}

	sr := &ServiceRequest{
		UserID:          userID,
		ServiceTypeID:   in.ServiceTypeID,
		EquipmentTypeID: in.EquipmentTypeID,
		Description:     in.Description,
		PreferredDate:   preferred,
		PreferredTime:   strings.TrimSpace(in.PreferredTime),
		ContactNumber:   in.ContactNumber,
		Address:         in.Address,
		Status:          StatusPending,
		History:         []HistoryEntry{{Status: StatusPending, Note: "Request submitted"}},
	}

	if err := s.repo.Create(ctx, sr); err != nil {
		return nil, err
	}

	log.Info("service request created", zap.Uint("request_id", sr.ID))
	return sr, nil
}

func (s *service) list(ctx context.Context, f ListFilter) (*ListResult, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	f.Page, f.Limit, _ = utils.Paginate(f.Page, f.Limit)

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *service) ListAll(ctx context.Context, f ListFilter) (*ListResult, error) {
	return s.list(ctx, f)
}

func (s *service) ListByUser(ctx context.Context, userID uint, f ListFilter) (*ListResult, error) {
	f.UserID = &userID
	return s.list(ctx, f)
}

func (s *service) Get(ctx context.Context, userID uint, isAdmin bool, id uint) (*ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && sr.UserID != userID {
		return nil, ErrForbidden
	}
	return sr, nil
}

func (s *service) publish(ctx context.Context, sr *ServiceRequest, status Status) {
	s.publisher.Publish(ctx, notify.Event{
		Type:       notify.ServiceRequestStatusChanged,
		ResourceID: sr.ID,
		Status:     string(status),
		UserID:     sr.UserID,
		OccurredAt: s.now().UTC(),
	})
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (*ServiceRequest, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Uint("request_id", id),
	)

	if in.Status == nil && in.Technician == nil && in.ScheduledDate == nil {
		return nil, ErrEmptyUpdate
	}

	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ch := Change{
		Technician:    in.Technician,
		ScheduledDate: in.ScheduledDate,
		Note:          in.Note,
	}

	switch {
	case in.Status != nil:
		if err := validateStatusTransition(sr.Status, *in.Status); err != nil {
			log.Info("status change rejected",
				zap.String("from", string(sr.Status)),
				zap.String("to", string(*in.Status)),
			)
			return nil, err
		}
		ch.WriteStatus = true
		ch.Status = *in.Status
	case in.Technician != nil && strings.TrimSpace(*in.Technician) != "" && sr.Status == StatusPending:
		ch.WriteStatus = true
		ch.Status = StatusAssigned
	}

	if ch.WriteStatus && ch.Note == "" {
		ch.Note = "Status updated to " + string(ch.Status)
		if ch.Status == StatusAssigned && in.Technician != nil {
			ch.Note = "Assigned to " + *in.Technician
		}
	}

	if err := s.repo.Update(ctx, id, sr.Status, ch); err != nil {
		return nil, err
	}

	if ch.WriteStatus {
		s.publish(ctx, sr, ch.Status)
		log.Info("service request status updated",
			zap.String("from", string(sr.Status)),
			zap.String("to", string(ch.Status)),
		)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) Cancel(ctx context.Context, userID uint, id uint) (*ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sr.UserID != userID {
		return nil, ErrForbidden
	}
	if !sr.Status.Cancellable() {
		return nil, ErrInvalidStatusForCancel
	}

	ch := Change{WriteStatus: true, Status: StatusCancelled, Note: "Cancelled by customer"}
	if err := s.repo.Update(ctx, id, sr.Status, ch); err != nil {
		return nil, err
	}

	s.publish(ctx, sr, StatusCancelled)
	logger.FromCtx(ctx).Info("service request cancelled",
		zap.Uint("request_id", id),
		zap.Uint("user_id", userID),
	)
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("service request deleted", zap.Uint("request_id", id))
	return nil
}
