package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrNotConfigured      = errors.New("mercado pago gateway not configured")
	ErrInvalidPaymentID   = errors.New("invalid provider payment id")
)

const StatusApproved = "approved"

// Status: состояние платежа у провайдера.
type Status struct {
	ProviderPaymentID string
	Status            string
	Amount            float64
}

func (s Status) Approved() bool { return s.Status == StatusApproved }

// Gateway проверяет платёж у провайдера.
type Gateway interface {
	Lookup(ctx context.Context, providerPaymentID string) (Status, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

type MercadoPagoGateway struct {
	client   paymentGetter
	mockMode bool
}

var _ Gateway = (*MercadoPagoGateway)(nil)

// NewMercadoPagoGateway создаёт шлюз. В mock-режиме любой платёж считается одобренным.
func NewMercadoPagoGateway(accessToken string, mock bool) (*MercadoPagoGateway, error) {
	if mock {
		slog.Info("payment: gateway mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	slog.Info("payment: mercado pago client initialized")
	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

func (g *MercadoPagoGateway) Lookup(ctx context.Context, providerPaymentID string) (Status, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	id, err := strconv.Atoi(providerPaymentID)
	if err != nil || id <= 0 {
		return Status{}, ErrInvalidPaymentID
	}
	if g != nil && g.mockMode {
		return Status{ProviderPaymentID: providerPaymentID, Status: StatusApproved}, nil
	}
	if g == nil || g.client == nil {
		return Status{}, ErrNotConfigured
	}
	resp, err := g.client.Get(ctx, id)
	if err != nil {
		return Status{}, fmt.Errorf("mercadopago get payment %d: %w", id, err)
	}
	slog.Info("payment: lookup", "provider_payment_id", resp.ID, "status", resp.Status)
	return Status{
		ProviderPaymentID: strconv.Itoa(resp.ID),
		Status:            resp.Status,
		Amount:            resp.TransactionAmount,
	}, nil
}
