package service

import (
	"errors"
	"testing"

	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/lifecycle"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		in, want Page
	}{
		{Page{}, Page{Limit: 20}},
		{Page{Limit: 500, Offset: 10}, Page{Limit: 100, Offset: 10}},
		{Page{Limit: 5, Offset: -3}, Page{Limit: 5}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Normalize())
	}
}

func TestCheckAssignment(t *testing.T) {
	artisan := uint64(7)
	tests := []struct {
		name     string
		assigned *uint64
		to       model.RequestStatus
		wantErr  bool
	}{
		{"in progress with artisan", &artisan, model.RequestStatusInProgress, false},
		{"validated without artisan", nil, model.RequestStatusClientValidated, true},
		{"back to awaiting estimate with artisan", &artisan, model.RequestStatusAwaitingEstimate, true},
		{"awaiting assignation without artisan", nil, model.RequestStatusAwaitingAssignation, false},
		{"resolved with artisan", &artisan, model.RequestStatusResolved, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkAssignment(&model.ServiceRequest{AssignedArtisanID: tt.assigned}, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrInvalidStatus)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanView(t *testing.T) {
	artisan := uint64(7)
	sr := &model.ServiceRequest{ClientID: 3, AssignedArtisanID: &artisan}

	assert.True(t, canView(model.Actor{UserID: 1, Role: model.RoleAdmin}, sr))
	assert.True(t, canView(model.Actor{UserID: 3, Role: model.RoleClient}, sr))
	assert.True(t, canView(model.Actor{UserID: 7, Role: model.RoleProfessional}, sr))
	assert.False(t, canView(model.Actor{UserID: 8, Role: model.RoleProfessional}, sr))
	assert.False(t, canView(model.Actor{UserID: 7, Role: model.RoleClient}, sr))
	assert.False(t, canView(model.Actor{UserID: 3}, sr))
}

func TestParticipants(t *testing.T) {
	artisan := uint64(7)
	sr := &model.ServiceRequest{ClientID: 3, AssignedArtisanID: &artisan}
	assert.Equal(t, []uint64{7}, participants(sr, 3))
	assert.Equal(t, []uint64{3}, participants(sr, 7))
	assert.Equal(t, []uint64{3, 7}, participants(sr, 1))
	assert.Equal(t, []uint64{3}, participants(&model.ServiceRequest{ClientID: 3}, 0))
}

func TestTransitionError(t *testing.T) {
	wrong := errors.New("wrong state")
	assert.ErrorIs(t, transitionError(lifecycle.ErrNotAllowed, wrong), errs.ErrForbidden)
	assert.Equal(t, wrong, transitionError(lifecycle.ErrWrongState, wrong))
	other := errors.New("db down")
	assert.Equal(t, other, transitionError(other, wrong))
}
