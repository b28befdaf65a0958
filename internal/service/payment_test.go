package service

import (
	"testing"

	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/stretchr/testify/assert"
)

func TestCheckDownPaymentAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		price   float64
		wantErr bool
	}{
		{"part of the price", 50, 120, false},
		{"full price", 120, 120, false},
		{"zero", 0, 120, true},
		{"negative", -10, 120, true},
		{"above the price", 121, 120, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDownPaymentAmount(tt.amount, tt.price)
			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
