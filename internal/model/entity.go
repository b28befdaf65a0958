package model

import (
	"time"
)

// RequestStatus: статус заявки на услугу.
type RequestStatus string

const (
	RequestStatusAwaitingEstimate    RequestStatus = "awaiting_estimate"
	RequestStatusAwaitingAssignation RequestStatus = "awaiting_assignation"
	RequestStatusInProgress          RequestStatus = "in_progress"
	RequestStatusClientValidated     RequestStatus = "client_validated"
	RequestStatusDisputedByClient    RequestStatus = "disputed_by_client"
	RequestStatusDisputedByArtisan   RequestStatus = "disputed_by_artisan"
	RequestStatusDisputedByBoth      RequestStatus = "disputed_by_both"
	RequestStatusResolved            RequestStatus = "resolved"
)

// RequestStatuses lists every request status in lifecycle order.
var RequestStatuses = []RequestStatus{
	RequestStatusAwaitingEstimate,
	RequestStatusAwaitingAssignation,
	RequestStatusInProgress,
	RequestStatusClientValidated,
	RequestStatusDisputedByClient,
	RequestStatusDisputedByArtisan,
	RequestStatusDisputedByBoth,
	RequestStatusResolved,
}

func (s RequestStatus) Valid() bool {
	for _, v := range RequestStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Disputed: один из трёх вариантов спора.
func (s RequestStatus) Disputed() bool {
	switch s {
	case RequestStatusDisputedByClient, RequestStatusDisputedByArtisan, RequestStatusDisputedByBoth:
		return true
	}
	return false
}

type EstimateStatus string

const (
	EstimateStatusPending  EstimateStatus = "pending"
	EstimateStatusAccepted EstimateStatus = "accepted"
	EstimateStatusRejected EstimateStatus = "rejected"
	EstimateStatusExpired  EstimateStatus = "expired"
)

func (s EstimateStatus) Valid() bool {
	switch s {
	case EstimateStatusPending, EstimateStatusAccepted, EstimateStatusRejected, EstimateStatusExpired:
		return true
	}
	return false
}

type DisputeStatus string

const (
	DisputeStatusOpen     DisputeStatus = "open"
	DisputeStatusResolved DisputeStatus = "resolved"
)

type ServiceRequest struct {
	ID                uint64        `gorm:"primaryKey" json:"id"`
	ClientID          uint64        `gorm:"index;not null" json:"client_id"`
	AssignedArtisanID *uint64       `gorm:"index" json:"assigned_artisan_id"`
	Status            RequestStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	ServiceType       string        `gorm:"type:varchar(128);index;not null" json:"service_type"`
	Description       string        `gorm:"type:text" json:"description"`
	Location          string        `gorm:"type:varchar(255)" json:"location"`
	DownPaymentPaid   bool          `gorm:"not null;default:false" json:"down_payment_paid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BillingEstimate struct {
	ID               uint64         `gorm:"primaryKey" json:"id"`
	ServiceRequestID uint64         `gorm:"index;not null" json:"service_request_id"`
	AdminID          uint64         `gorm:"not null" json:"admin_id"`
	EstimatedPrice   float64        `gorm:"type:numeric(12,2);not null" json:"estimated_price"`
	Description      string         `gorm:"type:text" json:"description"`
	Breakdown        JSON           `gorm:"type:jsonb" json:"breakdown,omitempty"`
	ValidUntil       time.Time      `gorm:"index;not null" json:"valid_until"`
	Status           EstimateStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	ClientResponse   string         `gorm:"type:text" json:"client_response,omitempty"`
	RespondedAt      *time.Time     `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusHistory: запись журнала статусов. Только вставка.
type StatusHistory struct {
	ID               uint64        `gorm:"primaryKey" json:"id"`
	ServiceRequestID uint64        `gorm:"index;not null" json:"service_request_id"`
	Status           RequestStatus `gorm:"type:varchar(32);not null" json:"status"`
	ActorID          *uint64       `json:"actor_id,omitempty"`
	ActorRole        string        `gorm:"type:varchar(16)" json:"actor_role,omitempty"`
	Note             string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

func (StatusHistory) TableName() string { return "status_history" }

type Dispute struct {
	ID               uint64        `gorm:"primaryKey" json:"id"`
	ServiceRequestID uint64        `gorm:"index;not null" json:"service_request_id"`
	OpenedBy         uint64        `gorm:"not null" json:"opened_by"`
	OpenedByRole     string        `gorm:"type:varchar(16);not null" json:"opened_by_role"`
	Reason           string        `gorm:"type:text" json:"reason"`
	Status           DisputeStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	Resolution       string        `gorm:"type:text" json:"resolution,omitempty"`
	ResolvedBy       *uint64       `json:"resolved_by,omitempty"`
	ResolvedAt       *time.Time    `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ServiceRequest *ServiceRequest `gorm:"foreignKey:ServiceRequestID" json:"service_request,omitempty"`
}

// ServiceRequestRefusal: отказ исполнителя от заявки.
type ServiceRequestRefusal struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	ServiceRequestID uint64    `gorm:"uniqueIndex:ux_refusal_request_artisan;not null" json:"service_request_id"`
	ArtisanID        uint64    `gorm:"uniqueIndex:ux_refusal_request_artisan;not null" json:"artisan_id"`
	Reason           string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Payment struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	ServiceRequestID  uint64    `gorm:"index;not null" json:"service_request_id"`
	EstimateID        uint64    `gorm:"not null" json:"estimate_id"`
	ClientID          uint64    `gorm:"not null" json:"client_id"`
	Kind              string    `gorm:"type:varchar(32);not null" json:"kind"`
	ProviderPaymentID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"provider_payment_id"`
	ProviderStatus    string    `gorm:"type:varchar(32);not null" json:"provider_status"`
	Amount            float64   `gorm:"type:numeric(12,2)" json:"amount"`
	CreatedAt         time.Time `json:"created_at"`
}

const PaymentKindDownPayment = "down_payment"

type Message struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	ServiceRequestID uint64    `gorm:"index;not null" json:"service_request_id"`
	SenderID         uint64    `gorm:"not null" json:"sender_id"`
	SenderRole       string    `gorm:"type:varchar(16);not null" json:"sender_role"`
	ClientMessageID  string    `gorm:"type:varchar(64);uniqueIndex" json:"client_message_id"`
	Body             string    `gorm:"type:text;not null" json:"body"`
	CreatedAt        time.Time `json:"created_at"`
}

// DeviceToken: FCM-токен устройства пользователя.
type DeviceToken struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"token"`
	Platform  string    `gorm:"type:varchar(16)" json:"platform,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
