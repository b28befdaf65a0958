package lifecycle

import (
	"fmt"

	"github.com/psds-microservice/marketplace-service/internal/model"
)

// Action: действие над заявкой, вызывающее смену статуса.
type Action string

const (
	ActionEstimate      Action = "estimate"       // админ выставил смету
	ActionEstimateLapse Action = "estimate_lapse" // смета отклонена или истекла
	ActionAccept        Action = "accept"
	ActionStart         Action = "start"
	ActionValidate      Action = "validate"
	ActionDispute       Action = "dispute"
	ActionConfirm       Action = "confirm"
	ActionResolve       Action = "resolve"
)

var transitions = map[model.RequestStatus]map[model.RequestStatus]struct{}{
	model.RequestStatusAwaitingEstimate: {
		model.RequestStatusAwaitingAssignation: {},
	},
	model.RequestStatusAwaitingAssignation: {
		model.RequestStatusInProgress:       {},
		model.RequestStatusAwaitingEstimate: {},
	},
	model.RequestStatusInProgress: {
		model.RequestStatusClientValidated:   {},
		model.RequestStatusDisputedByClient:  {},
		model.RequestStatusDisputedByArtisan: {},
	},
	model.RequestStatusClientValidated: {
		model.RequestStatusResolved:          {},
		model.RequestStatusDisputedByArtisan: {},
	},
	model.RequestStatusDisputedByClient: {
		model.RequestStatusDisputedByBoth: {},
		model.RequestStatusResolved:       {},
	},
	model.RequestStatusDisputedByArtisan: {
		model.RequestStatusDisputedByBoth: {},
		model.RequestStatusResolved:       {},
	},
	model.RequestStatusDisputedByBoth: {
		model.RequestStatusResolved: {},
	},
	model.RequestStatusResolved: {},
}

// CanTransition reports whether the table allows from -> to. Same-status moves are not transitions.
func CanTransition(from, to model.RequestStatus) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// RequiresArtisan: статусы, в которых у заявки обязан быть назначенный исполнитель.
func RequiresArtisan(s model.RequestStatus) bool {
	switch s {
	case model.RequestStatusAwaitingEstimate, model.RequestStatusAwaitingAssignation:
		return false
	case model.RequestStatusInProgress,
		model.RequestStatusClientValidated,
		model.RequestStatusDisputedByClient,
		model.RequestStatusDisputedByArtisan,
		model.RequestStatusDisputedByBoth,
		model.RequestStatusResolved:
		return true
	}
	return false
}

// Next computes the target status of action performed by role on a request in status from.
// It returns an error wrapping ErrNotAllowed when the role may not perform the action,
// or ErrWrongState when the current status does not satisfy the precondition.
func Next(from model.RequestStatus, action Action, role model.Role) (model.RequestStatus, error) {
	if !allowedRole(action, role) {
		return "", fmt.Errorf("%w: %s cannot %s", ErrNotAllowed, role, action)
	}
	to, ok := target(from, action, role)
	if !ok || !CanTransition(from, to) {
		return "", fmt.Errorf("%w: %s from %s", ErrWrongState, action, from)
	}
	return to, nil
}

func target(from model.RequestStatus, action Action, role model.Role) (model.RequestStatus, bool) {
	switch action {
	case ActionEstimate:
		return model.RequestStatusAwaitingAssignation, true
	case ActionEstimateLapse:
		return model.RequestStatusAwaitingEstimate, true
	case ActionAccept, ActionStart:
		return model.RequestStatusInProgress, true
	case ActionValidate:
		return model.RequestStatusClientValidated, true
	case ActionConfirm:
		return model.RequestStatusResolved, true
	case ActionResolve:
		if !from.Disputed() {
			return "", false
		}
		return model.RequestStatusResolved, true
	case ActionDispute:
		return disputeTarget(from, role)
	}
	return "", false
}

func disputeTarget(from model.RequestStatus, role model.Role) (model.RequestStatus, bool) {
	switch role {
	case model.RoleClient:
		switch from {
		case model.RequestStatusInProgress:
			return model.RequestStatusDisputedByClient, true
		case model.RequestStatusDisputedByArtisan:
			return model.RequestStatusDisputedByBoth, true
		}
	case model.RoleProfessional:
		switch from {
		case model.RequestStatusInProgress, model.RequestStatusClientValidated:
			return model.RequestStatusDisputedByArtisan, true
		case model.RequestStatusDisputedByClient:
			return model.RequestStatusDisputedByBoth, true
		}
	case model.RoleAdmin:
	}
	return "", false
}

func allowedRole(action Action, role model.Role) bool {
	switch role {
	case model.RoleAdmin:
		switch action {
		case ActionEstimate, ActionEstimateLapse, ActionResolve:
			return true
		}
	case model.RoleProfessional:
		switch action {
		case ActionAccept, ActionStart, ActionDispute, ActionConfirm:
			return true
		}
	case model.RoleClient:
		switch action {
		case ActionEstimateLapse, ActionValidate, ActionDispute:
			return true
		}
	}
	return false
}
