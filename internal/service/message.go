package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/psds-microservice/marketplace-service/internal/errs"
	"github.com/psds-microservice/marketplace-service/internal/model"
	"github.com/psds-microservice/marketplace-service/internal/notify"
	"gorm.io/gorm"
)

const maxMessageLen = 4000

type MessageServicer interface {
	Send(ctx context.Context, actor model.Actor, serviceRequestID uint64, body, clientMessageID string) (*model.Message, error)
	List(ctx context.Context, actor model.Actor, serviceRequestID, afterID uint64, limit int) ([]model.Message, error)
}

type MessageService struct {
	db       *gorm.DB
	notifier notify.Notifier
}

var _ MessageServicer = (*MessageService)(nil)

func NewMessageService(db *gorm.DB, notifier notify.Notifier) *MessageService {
	return &MessageService{db: db, notifier: notifierOrNop(notifier)}
}

// canMessage: переписка доступна владельцу, назначенному исполнителю и админам.
func canMessage(actor model.Actor, sr *model.ServiceRequest) bool {
	return canView(actor, sr)
}

// Send сохраняет сообщение. Повтор с тем же client_message_id в той же заявке возвращает уже сохранённое;
// client_message_id, использованный в другой заявке, отклоняется.
func (s *MessageService) Send(ctx context.Context, actor model.Actor, serviceRequestID uint64, body, clientMessageID string) (*model.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", errs.ErrValidation)
	}
	if utf8.RuneCountInString(body) > maxMessageLen {
		return nil, fmt.Errorf("%w: body exceeds %d characters", errs.ErrValidation, maxMessageLen)
	}
	clientMessageID = strings.TrimSpace(clientMessageID)
	if clientMessageID == "" {
		clientMessageID = uuid.NewString()
	} else if _, err := uuid.Parse(clientMessageID); err != nil {
		return nil, fmt.Errorf("%w: client_message_id must be a UUID", errs.ErrValidation)
	}

	db := s.db.WithContext(ctx)
	sr, err := getRequest(db, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if !canMessage(actor, sr) {
		return nil, errs.ErrForbidden
	}

	msg := &model.Message{
		ServiceRequestID: sr.ID,
		SenderID:         actor.UserID,
		SenderRole:       actor.Role.String(),
		ClientMessageID:  clientMessageID,
		Body:             body,
	}
	if err := db.Create(msg).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		var existing model.Message
		if err := db.Where("client_message_id = ? AND sender_id = ? AND service_request_id = ?", clientMessageID, actor.UserID, sr.ID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: client_message_id already used", errs.ErrValidation)
			}
			return nil, err
		}
		return &existing, nil
	}
	s.notifier.Notify(notify.Notification{
		Event:            "message.created",
		ServiceRequestID: sr.ID,
		Recipients:       participants(sr, actor.UserID),
		Title:            fmt.Sprintf("New message on request #%d", sr.ID),
		Body:             preview(body),
		Payload: map[string]interface{}{
			"message_id": msg.ID,
			"sender_id":  msg.SenderID,
			"body":       msg.Body,
		},
	})
	return msg, nil
}

func (s *MessageService) List(ctx context.Context, actor model.Actor, serviceRequestID, afterID uint64, limit int) ([]model.Message, error) {
	db := s.db.WithContext(ctx)
	sr, err := getRequest(db, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if !canMessage(actor, sr) {
		return nil, errs.ErrForbidden
	}
	page := Page{Limit: limit}.Normalize()
	tx := db.Where("service_request_id = ?", sr.ID)
	if afterID > 0 {
		tx = tx.Where("id > ?", afterID)
	}
	var items []model.Message
	if err := tx.Order("id ASC").Limit(page.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func preview(body string) string {
	const n = 80
	if utf8.RuneCountInString(body) <= n {
		return body
	}
	r := []rune(body)
	return string(r[:n]) + "..."
}
