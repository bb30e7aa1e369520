package handler

import (
	"log"
	"net/http"

	"inkpress/internal/httputil"
	"inkpress/internal/service"
	"inkpress/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	limit, offset := pagination(r)
	resp, err := h.notificationService.List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] List notifications handler: user=%s err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// MarkAllRead handles PUT /notifications/read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), userID); err != nil {
		log.Printf("[ERROR] Mark notifications read handler: user=%s err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to mark notifications read")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notifications marked read"})
}
