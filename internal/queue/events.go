package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/model"
)

// Stream and consumer group names
const (
	StreamNotifications = "stream:notifications"

	ConsumerGroupNotifications = "notification_workers"
)

// NotificationEvent is published to the notification stream whenever an
// interaction should notify somebody. The recipient is resolved by the
// publishing service, which already holds the target row; the worker only
// persists and delivers.
type NotificationEvent struct {
	Type      string `json:"type"` // model.NotificationType*
	Timestamp int64  `json:"timestamp"`

	ActorID     uuid.UUID `json:"actor_id"`
	RecipientID uuid.UUID `json:"recipient_id"`

	// Interaction references. PostTitle rides along so the worker can build
	// message text without re-fetching the post.
	PostID    *uuid.UUID `json:"post_id,omitempty"`
	CommentID *uuid.UUID `json:"comment_id,omitempty"`
	PostTitle string     `json:"post_title,omitempty"`
}

// NewCommentEvent notifies a post's author about a new top-level comment.
func NewCommentEvent(actorID, recipientID uuid.UUID, postID, commentID uuid.UUID, postTitle string) NotificationEvent {
	return NotificationEvent{
		Type:        model.NotificationTypeComment,
		Timestamp:   time.Now().Unix(),
		ActorID:     actorID,
		RecipientID: recipientID,
		PostID:      &postID,
		CommentID:   &commentID,
		PostTitle:   postTitle,
	}
}

// NewReplyEvent notifies a comment's author about a reply.
func NewReplyEvent(actorID, recipientID uuid.UUID, postID, commentID uuid.UUID, postTitle string) NotificationEvent {
	return NotificationEvent{
		Type:        model.NotificationTypeReply,
		Timestamp:   time.Now().Unix(),
		ActorID:     actorID,
		RecipientID: recipientID,
		PostID:      &postID,
		CommentID:   &commentID,
		PostTitle:   postTitle,
	}
}

// NewClapEvent notifies a post's author about a clap.
func NewClapEvent(actorID, recipientID uuid.UUID, postID uuid.UUID, postTitle string) NotificationEvent {
	return NotificationEvent{
		Type:        model.NotificationTypeClap,
		Timestamp:   time.Now().Unix(),
		ActorID:     actorID,
		RecipientID: recipientID,
		PostID:      &postID,
		PostTitle:   postTitle,
	}
}

// NewFollowEvent notifies a user about a new follower.
func NewFollowEvent(actorID, recipientID uuid.UUID) NotificationEvent {
	return NotificationEvent{
		Type:        model.NotificationTypeFollow,
		Timestamp:   time.Now().Unix(),
		ActorID:     actorID,
		RecipientID: recipientID,
	}
}

// ToMap converts the event to a map for Redis XADD. Streams store field-value
// pairs, so the event is serialized as JSON in a "data" field.
func (e NotificationEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseNotificationEvent parses an event from Redis stream message values.
func ParseNotificationEvent(values map[string]interface{}) (NotificationEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return NotificationEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event NotificationEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return NotificationEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
