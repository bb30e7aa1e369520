package worker_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/model"
	"inkpress/internal/queue"
	"inkpress/internal/worker"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type mockUserProvider struct {
	users map[uuid.UUID]*model.User
}

func newMockUserProvider() *mockUserProvider {
	return &mockUserProvider{users: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserProvider) add(user *model.User) {
	m.users[user.ID] = user
}

func (m *mockUserProvider) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

type mockNotificationStore struct {
	createFn func(ctx context.Context, n *model.Notification) error

	created []*model.Notification
}

func (m *mockNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	m.created = append(m.created, n)
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return nil
}

type mockMailer struct {
	sendFn func(ctx context.Context, toEmail, subject, body string) error

	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *mockMailer) Send(ctx context.Context, toEmail, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: toEmail, Subject: subject, Body: body})
	if m.sendFn != nil {
		return m.sendFn(ctx, toEmail, subject, body)
	}
	return nil
}

// =============================================================================
// Tests
// =============================================================================

func TestHandleEvent_CommentNotification(t *testing.T) {
	actor := &model.User{ID: uuid.New(), DisplayName: "Ada Lovelace"}
	recipient := &model.User{ID: uuid.New(), DisplayName: "Grace Hopper", Email: "grace@example.com"}

	users := newMockUserProvider()
	users.add(actor)
	users.add(recipient)

	store := &mockNotificationStore{}
	mailer := &mockMailer{}
	h := worker.NewHandler(users, store, mailer)

	postID := uuid.New()
	event := queue.NewCommentEvent(actor.ID, recipient.ID, postID, uuid.New(), "Engines of Logic")

	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(store.created))
	}
	n := store.created[0]
	if n.UserID != recipient.ID {
		t.Errorf("notification user = %s, want recipient %s", n.UserID, recipient.ID)
	}
	if n.ActorID != actor.ID {
		t.Errorf("notification actor = %s, want %s", n.ActorID, actor.ID)
	}
	if n.Type != model.NotificationTypeComment {
		t.Errorf("type = %q, want %q", n.Type, model.NotificationTypeComment)
	}
	if n.PostID == nil || *n.PostID != postID {
		t.Errorf("post_id = %v, want %s", n.PostID, postID)
	}
	if !strings.Contains(n.Message, "Ada Lovelace") || !strings.Contains(n.Message, "Engines of Logic") {
		t.Errorf("message = %q, want actor name and post title", n.Message)
	}

	// The email goes to the recipient's address with the same message.
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	if mailer.sent[0].To != "grace@example.com" {
		t.Errorf("email to = %q, want %q", mailer.sent[0].To, "grace@example.com")
	}
	if mailer.sent[0].Body != n.Message {
		t.Errorf("email body = %q, want %q", mailer.sent[0].Body, n.Message)
	}
}

func TestHandleEvent_MessagePerType(t *testing.T) {
	actor := &model.User{ID: uuid.New(), DisplayName: "Ada"}
	recipient := &model.User{ID: uuid.New(), DisplayName: "Grace", Email: "grace@example.com"}

	postID := uuid.New()
	commentID := uuid.New()

	tests := []struct {
		name  string
		event queue.NotificationEvent
		want  string
	}{
		{
			name:  "comment",
			event: queue.NewCommentEvent(actor.ID, recipient.ID, postID, commentID, "My Post"),
			want:  `Ada commented on your post "My Post"`,
		},
		{
			name:  "reply",
			event: queue.NewReplyEvent(actor.ID, recipient.ID, postID, commentID, "My Post"),
			want:  `Ada replied to your comment on "My Post"`,
		},
		{
			name:  "clap",
			event: queue.NewClapEvent(actor.ID, recipient.ID, postID, "My Post"),
			want:  `Ada clapped for your post "My Post"`,
		},
		{
			name:  "follow",
			event: queue.NewFollowEvent(actor.ID, recipient.ID),
			want:  "Ada started following you",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newMockUserProvider()
			users.add(actor)
			users.add(recipient)
			store := &mockNotificationStore{}
			h := worker.NewHandler(users, store, nil)

			if err := h.HandleEvent(context.Background(), tt.event); err != nil {
				t.Fatalf("HandleEvent failed: %v", err)
			}
			if len(store.created) != 1 {
				t.Fatalf("created %d notifications, want 1", len(store.created))
			}
			if store.created[0].Message != tt.want {
				t.Errorf("message = %q, want %q", store.created[0].Message, tt.want)
			}
		})
	}
}

func TestHandleEvent_SkipsSelfNotification(t *testing.T) {
	userID := uuid.New()
	store := &mockNotificationStore{}
	h := worker.NewHandler(newMockUserProvider(), store, nil)

	event := queue.NewClapEvent(userID, userID, uuid.New(), "Own post")

	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("self-notification should be dropped without error, got: %v", err)
	}
	if len(store.created) != 0 {
		t.Errorf("created %d notifications, want 0", len(store.created))
	}
}

func TestHandleEvent_UnknownType(t *testing.T) {
	actor := &model.User{ID: uuid.New(), DisplayName: "Ada"}
	users := newMockUserProvider()
	users.add(actor)
	h := worker.NewHandler(users, &mockNotificationStore{}, nil)

	event := queue.NotificationEvent{
		Type:        "mystery",
		ActorID:     actor.ID,
		RecipientID: uuid.New(),
	}

	if err := h.HandleEvent(context.Background(), event); err == nil {
		t.Error("expected an error for an unknown event type")
	}
}

func TestHandleEvent_StoreErrorPropagates(t *testing.T) {
	actor := &model.User{ID: uuid.New(), DisplayName: "Ada"}
	recipient := &model.User{ID: uuid.New(), Email: "grace@example.com"}
	users := newMockUserProvider()
	users.add(actor)
	users.add(recipient)

	dbError := errors.New("insert failed")
	store := &mockNotificationStore{
		createFn: func(ctx context.Context, n *model.Notification) error {
			return dbError
		},
	}
	mailer := &mockMailer{}
	h := worker.NewHandler(users, store, mailer)

	event := queue.NewFollowEvent(actor.ID, recipient.ID)

	if err := h.HandleEvent(context.Background(), event); !errors.Is(err, dbError) {
		t.Errorf("error = %v, want wrapped %v", err, dbError)
	}
	// No email when the row was never written.
	if len(mailer.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(mailer.sent))
	}
}

func TestHandleEvent_EmailFailureIsSwallowed(t *testing.T) {
	actor := &model.User{ID: uuid.New(), DisplayName: "Ada"}
	recipient := &model.User{ID: uuid.New(), Email: "grace@example.com"}
	users := newMockUserProvider()
	users.add(actor)
	users.add(recipient)

	mailer := &mockMailer{
		sendFn: func(ctx context.Context, toEmail, subject, body string) error {
			return errors.New("sendgrid 500")
		},
	}
	store := &mockNotificationStore{}
	h := worker.NewHandler(users, store, mailer)

	event := queue.NewFollowEvent(actor.ID, recipient.ID)

	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Errorf("email failure should not fail the event, got: %v", err)
	}
	if len(store.created) != 1 {
		t.Errorf("created %d notifications, want 1", len(store.created))
	}
}

func TestHandleEvent_NilMailerSkipsEmail(t *testing.T) {
	actor := &model.User{ID: uuid.New(), DisplayName: "Ada"}
	recipient := &model.User{ID: uuid.New()}
	users := newMockUserProvider()
	users.add(actor)
	users.add(recipient)

	store := &mockNotificationStore{}
	h := worker.NewHandler(users, store, nil)

	event := queue.NewFollowEvent(actor.ID, recipient.ID)

	if err := h.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}
	if len(store.created) != 1 {
		t.Errorf("created %d notifications, want 1", len(store.created))
	}
}
