package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/lifecycle"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"gorm.io/gorm"
)

type DisputeServicer interface {
	List(ctx context.Context, status model.DisputeStatus, page Page) ([]model.Dispute, int64, error)
	Resolve(ctx context.Context, actor model.Actor, serviceRequestID uint64, resolution string) (*model.ServiceRequest, error)
}

type DisputeService struct {
	db       *gorm.DB
	notifier notify.Notifier
}

var _ DisputeServicer = (*DisputeService)(nil)

func NewDisputeService(db *gorm.DB, notifier notify.Notifier) *DisputeService {
	return &DisputeService{db: db, notifier: notifierOrNop(notifier)}
}

func (s *DisputeService) List(ctx context.Context, status model.DisputeStatus, page Page) ([]model.Dispute, int64, error) {
	page = page.Normalize()
	tx := s.db.WithContext(ctx).Model(&model.Dispute{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []model.Dispute
	if err := tx.Preload("ServiceRequest").Order("created_at DESC").Limit(page.Limit).Offset(page.Offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Resolve закрывает спор по заявке. Уведомление отправляется после коммита и не влияет на результат.
func (s *DisputeService) Resolve(ctx context.Context, actor model.Actor, serviceRequestID uint64, resolution string) (*model.ServiceRequest, error) {
	if !actor.Is(model.RoleAdmin) {
		return nil, errs.ErrForbidden
	}
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return nil, fmt.Errorf("%w: resolution is required", errs.ErrValidation)
	}
	var (
		sr   *model.ServiceRequest
		from model.RequestStatus
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		sr, err = lockRequest(tx, serviceRequestID)
		if err != nil {
			return err
		}
		from = sr.Status
		to, err := lifecycle.Next(sr.Status, lifecycle.ActionResolve, actor.Role)
		if err != nil {
			return transitionError(err, errs.ErrNotDisputed)
		}
		if err := moveStatus(tx, sr, to, &actor, "dispute resolved: "+resolution, nil); err != nil {
			return err
		}
		now := time.Now().UTC()
		return tx.Model(&model.Dispute{}).
			Where("service_request_id = ? AND status = ?", sr.ID, model.DisputeStatusOpen).
			Updates(map[string]interface{}{
				"status":      model.DisputeStatusResolved,
				"resolution":  resolution,
				"resolved_by": actor.UserID,
				"resolved_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	n := statusNotification(sr, from, participants(sr, actor.UserID), "Your dispute has been resolved")
	n.Event = "dispute.resolved"
	n.Payload["resolution"] = resolution
	s.notifier.Notify(n)
	return sr, nil
}
