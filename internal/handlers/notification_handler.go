package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/notify"
)

// NotificationHandler exposes the toasts raised by recent mutations,
// newest first.
type NotificationHandler struct {
	ring *notify.Ring
}

func NewNotificationHandler(ring *notify.Ring) *NotificationHandler {
	return &NotificationHandler{ring: ring}
}

func (h *NotificationHandler) List(c *gin.Context) {
	httpresp.List(c, h.ring.Recent())
}
