package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"github.com/psds-microservice/marketplace-service/internal/payment"
	"gorm.io/gorm"
)

type PaymentServicer interface {
	ConfirmDownPayment(ctx context.Context, actor model.Actor, serviceRequestID uint64, providerPaymentID string) (*model.Payment, error)
}

type PaymentService struct {
	db       *gorm.DB
	gateway  payment.Gateway
	notifier notify.Notifier
}

var _ PaymentServicer = (*PaymentService)(nil)

func NewPaymentService(db *gorm.DB, gateway payment.Gateway, notifier notify.Notifier) *PaymentService {
	return &PaymentService{db: db, gateway: gateway, notifier: notifierOrNop(notifier)}
}

// ConfirmDownPayment сверяет платёж с провайдером и отмечает аванс по заявке.
func (s *PaymentService) ConfirmDownPayment(ctx context.Context, actor model.Actor, serviceRequestID uint64, providerPaymentID string) (*model.Payment, error) {
	if !actor.Is(model.RoleClient) {
		return nil, errs.ErrForbidden
	}
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if providerPaymentID == "" {
		return nil, fmt.Errorf("%w: provider_payment_id is required", errs.ErrValidation)
	}
	db := s.db.WithContext(ctx)

	// предварительная проверка, чтобы не ходить к провайдеру впустую
	sr, err := getRequest(db, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if sr.ClientID != actor.UserID {
		return nil, errs.ErrForbidden
	}
	if sr.DownPaymentPaid {
		return nil, errs.ErrDownPaymentPaid
	}

	status, err := s.gateway.Lookup(ctx, providerPaymentID)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidPaymentID) {
			return nil, fmt.Errorf("%w: %v", errs.ErrValidation, err)
		}
		return nil, fmt.Errorf("payment lookup: %w", err)
	}
	if !status.Approved() {
		return nil, fmt.Errorf("%w: provider status %q", errs.ErrPaymentNotApproved, status.Status)
	}
	if status.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", errs.ErrValidation)
	}

	var p *model.Payment
	err = db.Transaction(func(tx *gorm.DB) error {
		sr, err = lockRequest(tx, serviceRequestID)
		if err != nil {
			return err
		}
		if sr.DownPaymentPaid {
			return errs.ErrDownPaymentPaid
		}
		var est model.BillingEstimate
		if err := tx.Where("service_request_id = ? AND status = ?", sr.ID, model.EstimateStatusAccepted).
			Order("id DESC").First(&est).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrEstimateNotAccepted
			}
			return err
		}
		if err := checkDownPaymentAmount(status.Amount, est.EstimatedPrice); err != nil {
			return err
		}
		p = &model.Payment{
			ServiceRequestID:  sr.ID,
			EstimateID:        est.ID,
			ClientID:          actor.UserID,
			Kind:              model.PaymentKindDownPayment,
			ProviderPaymentID: status.ProviderPaymentID,
			ProviderStatus:    status.Status,
			Amount:            status.Amount,
		}
		if err := tx.Create(p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.ErrPaymentAlreadyLinked
			}
			return err
		}
		if err := tx.Model(&model.ServiceRequest{}).Where("id = ?", sr.ID).
			Update("down_payment_paid", true).Error; err != nil {
			return err
		}
		sr.DownPaymentPaid = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(notify.Notification{
		Event:            "payment.down_payment_confirmed",
		ServiceRequestID: sr.ID,
		Recipients:       participants(sr, actor.UserID),
		Payload: map[string]interface{}{
			"payment_id":          p.ID,
			"provider_payment_id": p.ProviderPaymentID,
			"amount":              p.Amount,
		},
	})
	return p, nil
}

// checkDownPaymentAmount: аванс положительный и не превышает цену принятой сметы.
func checkDownPaymentAmount(amount, estimatedPrice float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", errs.ErrValidation)
	}
	if amount > estimatedPrice {
		return fmt.Errorf("%w: payment amount %.2f exceeds estimated price %.2f", errs.ErrValidation, amount, estimatedPrice)
	}
	return nil
}
