package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/mail"
	"inkpress/internal/model"
	"inkpress/internal/queue"
)

// UserProvider fetches the profiles the handler needs for message text and
// email addresses. Abstracts the repository so workers don't depend on the
// DB layer directly.
type UserProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// NotificationStore persists notification rows.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
}

// Handler turns notification events into inbox rows and emails.
type Handler struct {
	users  UserProvider
	store  NotificationStore
	mailer mail.Sender // can be nil if email not wired
}

func NewHandler(users UserProvider, store NotificationStore, mailer mail.Sender) *Handler {
	return &Handler{
		users:  users,
		store:  store,
		mailer: mailer,
	}
}

// HandleEvent persists one notification. Self-notifications are dropped here
// as a second line of defense; publishers already skip them. The email is
// best-effort: its failure never fails the event.
func (h *Handler) HandleEvent(ctx context.Context, event queue.NotificationEvent) error {
	startTime := time.Now()

	if event.ActorID == event.RecipientID {
		log.Printf("[Worker] Skipping self-notification: type=%s actor=%s", event.Type, event.ActorID)
		return nil
	}

	actor, err := h.users.GetByID(ctx, event.ActorID)
	if err != nil {
		return fmt.Errorf("get actor: %w", err)
	}

	message, ok := messageFor(event, actor.DisplayName)
	if !ok {
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	notification := &model.Notification{
		UserID:    event.RecipientID,
		ActorID:   event.ActorID,
		Type:      event.Type,
		PostID:    event.PostID,
		CommentID: event.CommentID,
		Message:   message,
	}
	if err := h.store.Create(ctx, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	h.sendEmail(ctx, event, message)

	log.Printf("[Worker] HandleEvent OK: type=%s recipient=%s duration=%v",
		event.Type, event.RecipientID, time.Since(startTime))
	return nil
}

// messageFor builds the inbox line for an event.
func messageFor(event queue.NotificationEvent, actorName string) (string, bool) {
	switch event.Type {
	case model.NotificationTypeComment:
		return fmt.Sprintf("%s commented on your post %q", actorName, event.PostTitle), true
	case model.NotificationTypeReply:
		return fmt.Sprintf("%s replied to your comment on %q", actorName, event.PostTitle), true
	case model.NotificationTypeClap:
		return fmt.Sprintf("%s clapped for your post %q", actorName, event.PostTitle), true
	case model.NotificationTypeFollow:
		return fmt.Sprintf("%s started following you", actorName), true
	default:
		return "", false
	}
}

// sendEmail delivers the notification by mail. Every failure is logged and
// swallowed.
func (h *Handler) sendEmail(ctx context.Context, event queue.NotificationEvent, message string) {
	if h.mailer == nil {
		return
	}

	recipient, err := h.users.GetByID(ctx, event.RecipientID)
	if err != nil {
		log.Printf("[Worker] Email skipped, recipient lookup failed: user=%s err=%v", event.RecipientID, err)
		return
	}

	subject := "New activity on Inkpress"
	if err := h.mailer.Send(ctx, recipient.Email, subject, message); err != nil {
		log.Printf("[Worker] Email send failed: to=%s err=%v", recipient.Email, err)
	}
}
