package handler

import (
	"context"
	"log"
	"net/http"

	"hosteldesk/backend/internal/complaint"
	"hosteldesk/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// SubmitComplaint is the submission endpoint. The pipeline owns every gate
// and produces the full outcome; this handler only shapes the transport:
// form decoding, the uniform JSON body, and post-acceptance fan-out.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	token, _ := c.Cookie(config.SessionCookieName)

	sub := complaint.Submission{
		Name:      c.PostForm("name"),
		RollNo:    c.PostForm("rollNo"),
		RoomNo:    c.PostForm("roomNo"),
		Body:      c.PostForm("complaintBody"),
		Timestamp: c.PostForm("timestamp"), // advisory, never persisted
	}

	// A client disconnect must not abort the pipeline mid-stage: the
	// classifier call runs to completion or its own timeout, and the result
	// is simply discarded if the response cannot be delivered.
	result := h.Pipeline.Process(context.WithoutCancel(c.Request.Context()), token, sub)

	if result.Success {
		// The record is durable at this point; feed and Telegram delivery
		// are best-effort and never change the outcome.
		if h.Hub != nil && result.Record != nil {
			if err := h.Storage.PublishAcceptedComplaint(result.Record); err != nil {
				log.Printf("ERROR: Failed to publish complaint %d to feed: %v", result.ComplaintID, err)
			}
		}
		if h.Notifier != nil && result.Record != nil {
			go h.Notifier.ComplaintAccepted(result.Record)
		}

		c.JSON(result.Status, gin.H{
			"success":      true,
			"message":      result.Message,
			"complaint_id": result.ComplaintID,
		})
		return
	}

	c.JSON(result.Status, gin.H{"success": false, "message": result.Message})
}

// MethodNotAllowed answers requests that reach the submission path with the
// wrong verb.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Invalid request method"})
}
