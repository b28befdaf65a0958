package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/lifecycle"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"gorm.io/gorm"
)

const defaultEstimateValidity = 7 * 24 * time.Hour

type EstimateServicer interface {
	Create(ctx context.Context, actor model.Actor, in CreateEstimateInput) (*model.BillingEstimate, error)
	Get(ctx context.Context, id uint64) (*model.BillingEstimate, error)
	List(ctx context.Context, filter EstimateFilter, page Page) ([]model.BillingEstimate, int64, error)
	ListForClient(ctx context.Context, actor model.Actor, status model.EstimateStatus, page Page) ([]model.BillingEstimate, int64, error)
	Respond(ctx context.Context, actor model.Actor, in RespondEstimateInput) (*model.BillingEstimate, error)
	ExpireDue(ctx context.Context, now time.Time, limit int) (int, error)
}

type CreateEstimateInput struct {
	ServiceRequestID uint64
	EstimatedPrice   float64
	Description      string
	Breakdown        model.JSON
	// При ValidUntil == nil срок по умолчанию 7 дней.
	ValidUntil *time.Time
}

type EstimateFilter struct {
	Status           model.EstimateStatus
	ServiceRequestID uint64
}

type RespondEstimateInput struct {
	EstimateID uint64
	Accept     bool
	Response   string
}

type EstimateService struct {
	db       *gorm.DB
	notifier notify.Notifier
	now      func() time.Time
}

var _ EstimateServicer = (*EstimateService)(nil)

func NewEstimateService(db *gorm.DB, notifier notify.Notifier) *EstimateService {
	return &EstimateService{db: db, notifier: notifierOrNop(notifier), now: func() time.Time { return time.Now().UTC() }}
}

// Create выставляет смету на заявку в awaiting_estimate и переводит заявку в awaiting_assignation.
func (s *EstimateService) Create(ctx context.Context, actor model.Actor, in CreateEstimateInput) (*model.BillingEstimate, error) {
	if !actor.Is(model.RoleAdmin) {
		return nil, errs.ErrForbidden
	}
	now := s.now()
	if in.ServiceRequestID == 0 {
		return nil, fmt.Errorf("%w: service_request_id is required", errs.ErrValidation)
	}
	if in.EstimatedPrice <= 0 {
		return nil, fmt.Errorf("%w: estimated_price must be positive", errs.ErrValidation)
	}
	validUntil := now.Add(defaultEstimateValidity)
	if in.ValidUntil != nil {
		if !in.ValidUntil.After(now) {
			return nil, fmt.Errorf("%w: valid_until must be in the future", errs.ErrValidation)
		}
		validUntil = in.ValidUntil.UTC()
	}

	est := &model.BillingEstimate{
		ServiceRequestID: in.ServiceRequestID,
		AdminID:          actor.UserID,
		EstimatedPrice:   in.EstimatedPrice,
		Description:      strings.TrimSpace(in.Description),
		Breakdown:        in.Breakdown,
		ValidUntil:       validUntil,
		Status:           model.EstimateStatusPending,
	}
	var sr *model.ServiceRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sr, err = lockRequest(tx, in.ServiceRequestID)
		if err != nil {
			return err
		}
		to, err := lifecycle.Next(sr.Status, lifecycle.ActionEstimate, actor.Role)
		if err != nil {
			return transitionError(err, fmt.Errorf("%w: estimates can only be issued for requests awaiting an estimate", errs.ErrInvalidStatus))
		}
		var pending int64
		if err := tx.Model(&model.BillingEstimate{}).
			Where("service_request_id = ? AND status = ?", sr.ID, model.EstimateStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return fmt.Errorf("%w: request already has a pending estimate", errs.ErrInvalidStatus)
		}
		if err := tx.Create(est).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: request already has a pending estimate", errs.ErrInvalidStatus)
			}
			return err
		}
		return moveStatus(tx, sr, to, &actor, fmt.Sprintf("estimate #%d issued", est.ID), nil)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(notify.Notification{
		Event:            "billing_estimate.created",
		ServiceRequestID: sr.ID,
		Recipients:       []uint64{sr.ClientID},
		Title:            "New estimate available",
		Body:             fmt.Sprintf("An estimate of %.2f is waiting for your answer", est.EstimatedPrice),
		Payload:          estimatePayload(est),
	})
	return est, nil
}

func (s *EstimateService) Get(ctx context.Context, id uint64) (*model.BillingEstimate, error) {
	var e model.BillingEstimate
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEstimateNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *EstimateService) List(ctx context.Context, filter EstimateFilter, page Page) ([]model.BillingEstimate, int64, error) {
	tx := s.db.WithContext(ctx).Model(&model.BillingEstimate{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.ServiceRequestID != 0 {
		tx = tx.Where("service_request_id = ?", filter.ServiceRequestID)
	}
	return listEstimates(tx, page)
}

func (s *EstimateService) ListForClient(ctx context.Context, actor model.Actor, status model.EstimateStatus, page Page) ([]model.BillingEstimate, int64, error) {
	if !actor.Is(model.RoleClient) {
		return nil, 0, errs.ErrForbidden
	}
	tx := s.db.WithContext(ctx).Model(&model.BillingEstimate{}).
		Where("service_request_id IN (SELECT id FROM service_requests WHERE client_id = ?)", actor.UserID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	return listEstimates(tx, page)
}

func listEstimates(tx *gorm.DB, page Page) ([]model.BillingEstimate, int64, error) {
	page = page.Normalize()
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []model.BillingEstimate
	if err := tx.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Respond: ответ клиента на pending-смету. Смета покидает pending ровно один раз.
func (s *EstimateService) Respond(ctx context.Context, actor model.Actor, in RespondEstimateInput) (*model.BillingEstimate, error) {
	if !actor.Is(model.RoleClient) {
		return nil, errs.ErrForbidden
	}
	var (
		est  *model.BillingEstimate
		sr   *model.ServiceRequest
		from model.RequestStatus
	)
	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		// порядок блокировок: смета, затем заявка (как в ExpireDue)
		est, err = lockEstimate(tx, in.EstimateID)
		if err != nil {
			return err
		}
		sr, err = lockRequest(tx, est.ServiceRequestID)
		if err != nil {
			return err
		}
		if sr.ClientID != actor.UserID {
			return errs.ErrForbidden
		}
		if est.Status != model.EstimateStatusPending {
			return errs.ErrEstimateNotPending
		}
		if !now.Before(est.ValidUntil) {
			return errs.ErrEstimateExpired
		}
		next := model.EstimateStatusRejected
		if in.Accept {
			next = model.EstimateStatusAccepted
		}
		res := tx.Model(&model.BillingEstimate{}).
			Where("id = ? AND status = ?", est.ID, model.EstimateStatusPending).
			Updates(map[string]interface{}{
				"status":          next,
				"client_response": strings.TrimSpace(in.Response),
				"responded_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrEstimateNotPending
		}
		est.Status = next
		est.ClientResponse = strings.TrimSpace(in.Response)
		est.RespondedAt = &now

		from = sr.Status
		if next == model.EstimateStatusRejected {
			return s.revertRequest(tx, sr, &actor, fmt.Sprintf("estimate #%d rejected", est.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	event := "billing_estimate.rejected"
	if in.Accept {
		event = "billing_estimate.accepted"
	}
	payload := estimatePayload(est)
	payload["request_status"] = string(sr.Status)
	payload["previous_request_status"] = string(from)
	s.notifier.Notify(notify.Notification{
		Event:            event,
		ServiceRequestID: sr.ID,
		Payload:          payload,
	})
	return est, nil
}

// revertRequest возвращает заявку в awaiting_estimate, если она ещё ждёт исполнителя.
func (s *EstimateService) revertRequest(tx *gorm.DB, sr *model.ServiceRequest, actor *model.Actor, note string) error {
	if sr.Status != model.RequestStatusAwaitingAssignation || sr.AssignedArtisanID != nil {
		return nil
	}
	return moveStatus(tx, sr, model.RequestStatusAwaitingEstimate, actor, note, nil)
}

// ExpireDue переводит просроченные pending-сметы в expired (не более limit за вызов).
// Каждая смета обрабатывается в своей транзакции; ошибки по отдельным сметам не прерывают проход.
func (s *EstimateService) ExpireDue(ctx context.Context, now time.Time, limit int) (int, error) {
	if limit <= 0 {
		limit = maxLimit
	}
	var ids []uint64
	if err := s.db.WithContext(ctx).Model(&model.BillingEstimate{}).
		Where("status = ? AND valid_until <= ?", model.EstimateStatusPending, now).
		Order("valid_until ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("select due estimates: %w", err)
	}

	expired := 0
	var failures []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		ok, err := s.expireOne(ctx, id, now)
		if err != nil {
			slog.Error("estimate expiry failed", "estimate_id", id, "err", err)
			failures = append(failures, fmt.Errorf("estimate %d: %w", id, err))
			continue
		}
		if ok {
			expired++
		}
	}
	return expired, errors.Join(failures...)
}

func (s *EstimateService) expireOne(ctx context.Context, id uint64, now time.Time) (bool, error) {
	var (
		est  *model.BillingEstimate
		sr   *model.ServiceRequest
		from model.RequestStatus
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		est, err = lockEstimate(tx, id)
		if err != nil {
			return err
		}
		// клиент мог ответить между выборкой и блокировкой
		if est.Status != model.EstimateStatusPending || est.ValidUntil.After(now) {
			est = nil
			return nil
		}
		if err := tx.Model(&model.BillingEstimate{}).Where("id = ?", est.ID).
			Update("status", model.EstimateStatusExpired).Error; err != nil {
			return err
		}
		est.Status = model.EstimateStatusExpired
		sr, err = lockRequest(tx, est.ServiceRequestID)
		if err != nil {
			return err
		}
		from = sr.Status
		return s.revertRequest(tx, sr, nil, fmt.Sprintf("estimate #%d expired", est.ID))
	})
	if err != nil || est == nil {
		return false, err
	}
	payload := estimatePayload(est)
	payload["request_status"] = string(sr.Status)
	payload["previous_request_status"] = string(from)
	s.notifier.Notify(notify.Notification{
		Event:            "billing_estimate.expired",
		ServiceRequestID: sr.ID,
		Recipients:       []uint64{sr.ClientID},
		Title:            "Estimate expired",
		Body:             fmt.Sprintf("The estimate for request #%d has expired", sr.ID),
		Payload:          payload,
	})
	return true, nil
}

func estimatePayload(e *model.BillingEstimate) map[string]interface{} {
	return map[string]interface{}{
		"estimate_id":     e.ID,
		"estimate_status": string(e.Status),
		"estimated_price": e.EstimatedPrice,
		"valid_until":     e.ValidUntil.Format(time.RFC3339),
	}
}
