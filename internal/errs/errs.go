package errs

import "errors"

var (
	ErrServiceRequestNotFound = errors.New("service request not found")
	ErrEstimateNotFound       = errors.New("billing estimate not found")

	// ErrRequestUnavailable: заявка не найдена или уже назначена другому исполнителю.
	ErrRequestUnavailable = errors.New("service request not found or already assigned")

	ErrInvalidStatus        = errors.New("invalid status for this action")
	ErrCannotStart          = errors.New("service request cannot be started in its current state")
	ErrNotDisputed          = errors.New("service request is not disputed")
	ErrEstimateNotPending   = errors.New("billing estimate is no longer pending")
	ErrEstimateNotAccepted  = errors.New("service request has no accepted billing estimate")
	ErrEstimateExpired      = errors.New("billing estimate has expired")
	ErrAlreadyRefused       = errors.New("service request already refused")
	ErrDownPaymentPaid      = errors.New("down payment already paid")
	ErrPaymentNotApproved   = errors.New("payment is not approved")
	ErrPaymentAlreadyLinked = errors.New("payment already registered")

	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)
