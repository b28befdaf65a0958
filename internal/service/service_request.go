package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/lifecycle"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -destination=../handler/mocks/service_mocks.go -package=mocks github.com/psds-microservice/marketplace-service/internal/service DeviceServicer,DisputeServicer,EstimateServicer,MessageServicer,PaymentServicer,ServiceRequestServicer

// ServiceRequestServicer: операции над заявками (для хендлеров и моков).
type ServiceRequestServicer interface {
	Create(ctx context.Context, actor model.Actor, in CreateServiceRequestInput) (*model.ServiceRequest, error)
	Get(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error)
	List(ctx context.Context, actor model.Actor, filter ServiceRequestFilter, page Page) ([]model.ServiceRequest, int64, error)
	ListAvailable(ctx context.Context, actor model.Actor, page Page) ([]model.ServiceRequest, int64, error)
	History(ctx context.Context, actor model.Actor, id uint64) ([]model.StatusHistory, error)
	Accept(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error)
	Refuse(ctx context.Context, actor model.Actor, id uint64, reason string) error
	Start(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error)
	Validate(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error)
	Dispute(ctx context.Context, actor model.Actor, id uint64, reason string) (*model.ServiceRequest, error)
	Confirm(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error)
}

type CreateServiceRequestInput struct {
	ServiceType string
	Description string
	Location    string
}

type ServiceRequestFilter struct {
	Status      model.RequestStatus
	ServiceType string
	ClientID    uint64
	ArtisanID   uint64
}

type ServiceRequestService struct {
	db       *gorm.DB
	notifier notify.Notifier
}

var _ ServiceRequestServicer = (*ServiceRequestService)(nil)

func NewServiceRequestService(db *gorm.DB, notifier notify.Notifier) *ServiceRequestService {
	return &ServiceRequestService{db: db, notifier: notifierOrNop(notifier)}
}

func (s *ServiceRequestService) Create(ctx context.Context, actor model.Actor, in CreateServiceRequestInput) (*model.ServiceRequest, error) {
	if !actor.Is(model.RoleClient) {
		return nil, errs.ErrForbidden
	}
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.Location = strings.TrimSpace(in.Location)
	if in.ServiceType == "" || in.Location == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: service_type, description and location are required", errs.ErrValidation)
	}
	sr := &model.ServiceRequest{
		ClientID:    actor.UserID,
		Status:      model.RequestStatusAwaitingEstimate,
		ServiceType: in.ServiceType,
		Description: in.Description,
		Location:    in.Location,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sr).Error; err != nil {
			return err
		}
		return appendHistory(tx, sr.ID, sr.Status, &actor, "created")
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(notify.Notification{
		Event:            "service_request.created",
		ServiceRequestID: sr.ID,
		Payload: map[string]interface{}{
			"client_id":    sr.ClientID,
			"service_type": sr.ServiceType,
			"status":       string(sr.Status),
		},
	})
	return sr, nil
}

func (s *ServiceRequestService) Get(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error) {
	sr, err := getRequest(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, sr) {
		return nil, errs.ErrForbidden
	}
	return sr, nil
}

// List возвращает заявки в зоне видимости роли: админ все, исполнитель назначенные ему, клиент свои.
func (s *ServiceRequestService) List(ctx context.Context, actor model.Actor, filter ServiceRequestFilter, page Page) ([]model.ServiceRequest, int64, error) {
	page = page.Normalize()
	tx := s.db.WithContext(ctx).Model(&model.ServiceRequest{})
	switch actor.Role {
	case model.RoleAdmin:
		if filter.ClientID != 0 {
			tx = tx.Where("client_id = ?", filter.ClientID)
		}
		if filter.ArtisanID != 0 {
			tx = tx.Where("assigned_artisan_id = ?", filter.ArtisanID)
		}
	case model.RoleProfessional:
		tx = tx.Where("assigned_artisan_id = ?", actor.UserID)
	case model.RoleClient:
		tx = tx.Where("client_id = ?", actor.UserID)
	default:
		return nil, 0, errs.ErrForbidden
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.ServiceType != "" {
		tx = tx.Where("service_type = ?", filter.ServiceType)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []model.ServiceRequest
	if err := tx.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAvailable: свободные заявки с принятой сметой, от которых исполнитель не отказывался.
func (s *ServiceRequestService) ListAvailable(ctx context.Context, actor model.Actor, page Page) ([]model.ServiceRequest, int64, error) {
	if !actor.Is(model.RoleProfessional) {
		return nil, 0, errs.ErrForbidden
	}
	page = page.Normalize()
	tx := s.db.WithContext(ctx).Model(&model.ServiceRequest{}).
		Where("status = ? AND assigned_artisan_id IS NULL", model.RequestStatusAwaitingAssignation).
		Where("EXISTS (SELECT 1 FROM billing_estimates be WHERE be.service_request_id = service_requests.id AND be.status = ?)", model.EstimateStatusAccepted).
		Where("NOT EXISTS (SELECT 1 FROM service_request_refusals r WHERE r.service_request_id = service_requests.id AND r.artisan_id = ?)", actor.UserID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []model.ServiceRequest
	if err := tx.Order("created_at ASC").Limit(page.Limit).Offset(page.Offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ServiceRequestService) History(ctx context.Context, actor model.Actor, id uint64) ([]model.StatusHistory, error) {
	db := s.db.WithContext(ctx)
	sr, err := getRequest(db, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, sr) {
		return nil, errs.ErrForbidden
	}
	var rows []model.StatusHistory
	if err := db.Where("service_request_id = ?", id).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Accept назначает исполнителя на свободную заявку. Любое несоответствие даёт ErrRequestUnavailable.
func (s *ServiceRequestService) Accept(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error) {
	if !actor.Is(model.RoleProfessional) {
		return nil, errs.ErrForbidden
	}
	sr, err := s.assign(ctx, actor, id, lifecycle.ActionAccept, errs.ErrRequestUnavailable, "accepted by artisan")
	if errors.Is(err, errs.ErrServiceRequestNotFound) {
		return nil, errs.ErrRequestUnavailable
	}
	return sr, err
}

// Start: явный старт миссии исполнителем, та же логика назначения с другой ошибкой статуса.
func (s *ServiceRequestService) Start(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error) {
	if !actor.Is(model.RoleProfessional) {
		return nil, errs.ErrForbidden
	}
	return s.assign(ctx, actor, id, lifecycle.ActionStart, errs.ErrCannotStart, "mission started")
}

func (s *ServiceRequestService) assign(ctx context.Context, actor model.Actor, id uint64, action lifecycle.Action, wrongState error, note string) (*model.ServiceRequest, error) {
	var (
		sr   *model.ServiceRequest
		from model.RequestStatus
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sr, err = lockRequest(tx, id)
		if err != nil {
			return err
		}
		from = sr.Status
		to, err := lifecycle.Next(sr.Status, action, actor.Role)
		if err != nil {
			return transitionError(err, wrongState)
		}
		if sr.AssignedArtisanID != nil {
			return wrongState
		}
		if err := requireAcceptedEstimate(tx, sr.ID); err != nil {
			return err
		}
		res := tx.Model(&model.ServiceRequest{}).
			Where("id = ? AND status = ? AND assigned_artisan_id IS NULL", sr.ID, model.RequestStatusAwaitingAssignation).
			Updates(map[string]interface{}{"status": to, "assigned_artisan_id": actor.UserID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return wrongState
		}
		if err := appendHistory(tx, sr.ID, to, &actor, note); err != nil {
			return err
		}
		artisanID := actor.UserID
		sr.Status = to
		sr.AssignedArtisanID = &artisanID
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(statusNotification(sr, from, []uint64{sr.ClientID}, "An artisan took your request"))
	return sr, nil
}

func requireAcceptedEstimate(tx *gorm.DB, requestID uint64) error {
	var n int64
	if err := tx.Model(&model.BillingEstimate{}).
		Where("service_request_id = ? AND status = ?", requestID, model.EstimateStatusAccepted).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrEstimateNotAccepted
	}
	return nil
}

func (s *ServiceRequestService) Refuse(ctx context.Context, actor model.Actor, id uint64, reason string) error {
	if !actor.Is(model.RoleProfessional) {
		return errs.ErrForbidden
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sr, err := lockRequest(tx, id)
		if err != nil {
			return err
		}
		if sr.Status != model.RequestStatusAwaitingAssignation || sr.AssignedArtisanID != nil {
			return fmt.Errorf("%w: cannot refuse a request in status %s", errs.ErrInvalidStatus, sr.Status)
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.ServiceRequestRefusal{
			ServiceRequestID: sr.ID,
			ArtisanID:        actor.UserID,
			Reason:           strings.TrimSpace(reason),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrAlreadyRefused
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.Notify(notify.Notification{
		Event:            "service_request.refused",
		ServiceRequestID: id,
		Payload:          map[string]interface{}{"artisan_id": actor.UserID},
	})
	return nil
}

// Validate: клиент подтверждает выполнение работ.
func (s *ServiceRequestService) Validate(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error) {
	return s.transition(ctx, actor, id, lifecycle.ActionValidate, "", "Your mission was validated by the client")
}

// Confirm: исполнитель подтверждает завершение после валидации клиентом.
func (s *ServiceRequestService) Confirm(ctx context.Context, actor model.Actor, id uint64) (*model.ServiceRequest, error) {
	return s.transition(ctx, actor, id, lifecycle.ActionConfirm, "", "Your request is resolved")
}

// Dispute открывает спор от имени клиента или назначенного исполнителя.
func (s *ServiceRequestService) Dispute(ctx context.Context, actor model.Actor, id uint64, reason string) (*model.ServiceRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", errs.ErrValidation)
	}
	return s.transition(ctx, actor, id, lifecycle.ActionDispute, reason, "A dispute was opened on your request")
}

func (s *ServiceRequestService) transition(ctx context.Context, actor model.Actor, id uint64, action lifecycle.Action, reason, title string) (*model.ServiceRequest, error) {
	var (
		sr   *model.ServiceRequest
		from model.RequestStatus
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sr, err = lockRequest(tx, id)
		if err != nil {
			return err
		}
		if !isParticipant(actor, sr) {
			return errs.ErrForbidden
		}
		from = sr.Status
		to, err := lifecycle.Next(sr.Status, action, actor.Role)
		if err != nil {
			return transitionError(err, fmt.Errorf("%w: cannot %s a request in status %s", errs.ErrInvalidStatus, action, sr.Status))
		}
		note := string(action)
		if reason != "" {
			note = reason
		}
		if err := moveStatus(tx, sr, to, &actor, note, nil); err != nil {
			return err
		}
		if action == lifecycle.ActionDispute {
			return tx.Create(&model.Dispute{
				ServiceRequestID: sr.ID,
				OpenedBy:         actor.UserID,
				OpenedByRole:     actor.Role.String(),
				Reason:           reason,
				Status:           model.DisputeStatusOpen,
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(statusNotification(sr, from, participants(sr, actor.UserID), title))
	return sr, nil
}

// isParticipant: клиент-владелец или назначенный исполнитель.
func isParticipant(actor model.Actor, sr *model.ServiceRequest) bool {
	switch actor.Role {
	case model.RoleClient:
		return sr.ClientID == actor.UserID
	case model.RoleProfessional:
		return isAssigned(actor, sr)
	case model.RoleAdmin:
		return false
	}
	return false
}
