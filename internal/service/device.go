package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceServicer interface {
	Register(ctx context.Context, actor model.Actor, token, platform string) error
}

// DeviceService хранит FCM-токены; также служит источником токенов для notify.Dispatcher.
type DeviceService struct {
	db *gorm.DB
}

var (
	_ DeviceServicer     = (*DeviceService)(nil)
	_ notify.TokenSource = (*DeviceService)(nil)
)

func NewDeviceService(db *gorm.DB) *DeviceService {
	return &DeviceService{db: db}
}

// Register привязывает токен к пользователю. Токен, ранее принадлежавший другому пользователю, переходит к текущему.
func (s *DeviceService) Register(ctx context.Context, actor model.Actor, token, platform string) error {
	token = strings.TrimSpace(token)
	if token == "" || len(token) > 512 {
		return fmt.Errorf("%w: token is required (max 512 chars)", errs.ErrValidation)
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	switch platform {
	case "", "android", "ios", "web":
	default:
		return fmt.Errorf("%w: platform must be android, ios or web", errs.ErrValidation)
	}
	dt := model.DeviceToken{UserID: actor.UserID, Token: token, Platform: platform}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"user_id":    actor.UserID,
			"platform":   platform,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&dt).Error
}

func (s *DeviceService) TokensFor(ctx context.Context, userIDs []uint64) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var tokens []string
	err := s.db.WithContext(ctx).Model(&model.DeviceToken{}).
		Where("user_id IN ?", userIDs).
		Pluck("token", &tokens).Error
	return tokens, err
}
