package usecase

import (
	"context"
	"errors"
	"log"

	"jobboard/internal/domain/notification"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

// Delivery is one recipient's notification: the ledger record plus the live
// event that mirrors it.
type Delivery struct {
	Recipient uuid.UUID
	Room      string
	Event     string
	Message   string
	Payload   notification.Payload
	Data      any
}

type NotificationUsecase interface {
	Create(ctx context.Context, recipient uuid.UUID, payload notification.Payload, message string) (notification.Notification, error)
	Deliver(ctx context.Context, d Delivery) error
	List(ctx context.Context, recipient uuid.UUID) ([]notification.Notification, error)
	UnreadCount(ctx context.Context, recipient uuid.UUID) (int, error)
	MarkRead(ctx context.Context, recipient, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipient uuid.UUID) (int, error)
}

type Notifications struct {
	repo        repository.NotificationRepository
	broadcaster Broadcaster
	logger      *log.Logger
}

func NewNotificationUsecase(repo repository.NotificationRepository, broadcaster Broadcaster, logger *log.Logger) *Notifications {
	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Notifications{repo: repo, broadcaster: broadcaster, logger: logger}
}

func (u *Notifications) Create(ctx context.Context, recipient uuid.UUID, payload notification.Payload, message string) (notification.Notification, error) {
	if recipient == uuid.Nil || payload == nil {
		return notification.Notification{}, ErrInvalidInput
	}
	n, err := u.repo.Create(ctx, notification.Notification{
		UserID:  recipient,
		Type:    payload.Type(),
		Message: message,
		Payload: payload,
	})
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

// Deliver writes the ledger record and only then emits the live event. When the
// write fails nothing is emitted and the error is returned.
func (u *Notifications) Deliver(ctx context.Context, d Delivery) error {
	if _, err := u.Create(ctx, d.Recipient, d.Payload, d.Message); err != nil {
		u.logger.Printf("Notification create failed | user_id=%s type=%s err=%v", d.Recipient, typeOf(d.Payload), err)
		return err
	}
	if d.Event != "" && d.Room != "" {
		u.broadcaster.EmitToRoom(d.Room, d.Event, d.Data)
	}
	return nil
}

func (u *Notifications) List(ctx context.Context, recipient uuid.UUID) ([]notification.Notification, error) {
	items, err := u.repo.ListByUser(ctx, recipient)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Notifications) UnreadCount(ctx context.Context, recipient uuid.UUID) (int, error) {
	n, err := u.repo.CountUnread(ctx, recipient)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

// MarkRead only touches a notification owned by recipient. Another user's id
// reports not found.
func (u *Notifications) MarkRead(ctx context.Context, recipient, id uuid.UUID) error {
	if err := u.repo.MarkRead(ctx, recipient, id); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Notifications) MarkAllRead(ctx context.Context, recipient uuid.UUID) (int, error) {
	n, err := u.repo.MarkAllRead(ctx, recipient)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func typeOf(p notification.Payload) notification.Type {
	if p == nil {
		return ""
	}
	return p.Type()
}
