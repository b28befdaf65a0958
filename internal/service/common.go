package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/lifecycle"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Page: параметры пагинации.
type Page struct {
	Limit  int
	Offset int
}

// Normalize подставляет лимит по умолчанию и ограничивает максимум.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type nopNotifier struct{}

func (nopNotifier) Notify(notify.Notification) {}

func notifierOrNop(n notify.Notifier) notify.Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func lockRequest(tx *gorm.DB, id uint64) (*model.ServiceRequest, error) {
	var sr model.ServiceRequest
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrServiceRequestNotFound
		}
		return nil, err
	}
	return &sr, nil
}

func lockEstimate(tx *gorm.DB, id uint64) (*model.BillingEstimate, error) {
	var e model.BillingEstimate
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEstimateNotFound
		}
		return nil, err
	}
	return &e, nil
}

func getRequest(db *gorm.DB, id uint64) (*model.ServiceRequest, error) {
	var sr model.ServiceRequest
	if err := db.First(&sr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrServiceRequestNotFound
		}
		return nil, err
	}
	return &sr, nil
}

// appendHistory добавляет строку в журнал статусов. При actor == nil действие системное.
func appendHistory(tx *gorm.DB, requestID uint64, status model.RequestStatus, actor *model.Actor, note string) error {
	h := model.StatusHistory{
		ServiceRequestID: requestID,
		Status:           status,
		Note:             note,
		ActorRole:        "system",
	}
	if actor != nil {
		id := actor.UserID
		h.ActorID = &id
		h.ActorRole = actor.Role.String()
	}
	if err := tx.Create(&h).Error; err != nil {
		return fmt.Errorf("append status history: %w", err)
	}
	return nil
}

// moveStatus пишет новый статус (и доп. колонки) и строку истории в рамках tx.
// Запись должна быть заблокирована вызывающим.
func moveStatus(tx *gorm.DB, sr *model.ServiceRequest, to model.RequestStatus, actor *model.Actor, note string, extra map[string]interface{}) error {
	if !lifecycle.CanTransition(sr.Status, to) {
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidStatus, sr.Status, to)
	}
	if err := checkAssignment(sr, to); err != nil {
		return err
	}
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	for k, v := range extra {
		updates[k] = v
	}
	if err := tx.Model(&model.ServiceRequest{}).Where("id = ?", sr.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update service request status: %w", err)
	}
	if err := appendHistory(tx, sr.ID, to, actor, note); err != nil {
		return err
	}
	sr.Status = to
	sr.UpdatedAt = updates["updated_at"].(time.Time)
	return nil
}

// checkAssignment: исполнитель назначен ровно в тех статусах, где он обязателен.
// То же ограничение держит CHECK chk_service_requests_artisan.
func checkAssignment(sr *model.ServiceRequest, to model.RequestStatus) error {
	assigned := sr.AssignedArtisanID != nil
	switch need := lifecycle.RequiresArtisan(to); {
	case need && !assigned:
		return fmt.Errorf("%w: %s requires an assigned artisan", errs.ErrInvalidStatus, to)
	case !need && assigned:
		return fmt.Errorf("%w: %s must not have an assigned artisan", errs.ErrInvalidStatus, to)
	}
	return nil
}

// transitionError переводит ошибки lifecycle в ошибки домена. wrongState: ошибка для неверного статуса.
func transitionError(err, wrongState error) error {
	switch {
	case errors.Is(err, lifecycle.ErrNotAllowed):
		return fmt.Errorf("%w: %v", errs.ErrForbidden, err)
	case errors.Is(err, lifecycle.ErrWrongState):
		return wrongState
	}
	return err
}

// canView: кто видит заявку: админ, владелец, назначенный исполнитель.
func canView(actor model.Actor, sr *model.ServiceRequest) bool {
	switch actor.Role {
	case model.RoleAdmin:
		return true
	case model.RoleProfessional:
		return isAssigned(actor, sr)
	case model.RoleClient:
		return sr.ClientID == actor.UserID
	}
	return false
}

func isAssigned(actor model.Actor, sr *model.ServiceRequest) bool {
	return sr.AssignedArtisanID != nil && *sr.AssignedArtisanID == actor.UserID
}

// participants: получатели уведомлений по заявке, кроме исключённого пользователя.
func participants(sr *model.ServiceRequest, except uint64) []uint64 {
	var out []uint64
	if sr.ClientID != except {
		out = append(out, sr.ClientID)
	}
	if sr.AssignedArtisanID != nil && *sr.AssignedArtisanID != except {
		out = append(out, *sr.AssignedArtisanID)
	}
	return out
}

func statusNotification(sr *model.ServiceRequest, from model.RequestStatus, recipients []uint64, title string) notify.Notification {
	payload := map[string]interface{}{
		"status":          string(sr.Status),
		"previous_status": string(from),
		"client_id":       sr.ClientID,
	}
	if sr.AssignedArtisanID != nil {
		payload["artisan_id"] = *sr.AssignedArtisanID
	}
	return notify.Notification{
		Event:            "service_request.status_changed",
		ServiceRequestID: sr.ID,
		Recipients:       recipients,
		Title:            title,
		Body:             fmt.Sprintf("Request #%d is now %s", sr.ID, sr.Status),
		Payload:          payload,
	}
}
