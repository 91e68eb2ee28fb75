package handler

import (
	"net/http"

	"hosteldesk/backend/internal/config"
	"hosteldesk/backend/internal/feed"
	"hosteldesk/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeFeed upgrades an admin's connection to WebSocket and registers it
// with the feed hub. Requires a live session whose user carries the admin
// role.
func (h *Handler) ServeFeed(c *gin.Context) {
	token, _ := c.Cookie(config.SessionCookieName)
	sess, err := h.Sessions.Get(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please log in first"})
		return
	}

	user, err := h.Storage.GetUserByID(sess.UserID)
	if err != nil || !user.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upgrade connection"})
		return
	}

	client := &feed.WebSocketClient{
		UserID: sess.UserID,
		Conn:   conn,
		Hub:    h.Hub,
		Send:   make(chan models.Complaint, 16),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
