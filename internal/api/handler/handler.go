package handler

import (
	"context"

	"hosteldesk/backend/internal/complaint"
	"hosteldesk/backend/internal/config"
	"hosteldesk/backend/internal/feed"
	"hosteldesk/backend/internal/models"
	"hosteldesk/backend/internal/notify"
	"hosteldesk/backend/internal/storage"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// SessionStore is the session collaborator the handlers need: create on
// login, resolve on every gated request, destroy on logout.
type SessionStore interface {
	Create(ctx context.Context, user *models.User) (string, error)
	Get(ctx context.Context, token string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
}

// Handler wires the HTTP surface to the pipeline and its collaborators.
type Handler struct {
	Sessions SessionStore
	Pipeline *complaint.Pipeline
	Storage  storage.Storage
	Hub      *feed.Hub
	Notifier notify.Notifier // nil when not configured

	OAuth             *oauth2.Config
	UserInfoURL       string
	AllowedMailDomain string
}

func NewHandler(cfg *config.Config, sessions SessionStore, pipeline *complaint.Pipeline, s storage.Storage, hub *feed.Hub, notifier notify.Notifier) *Handler {
	return &Handler{
		Sessions: sessions,
		Pipeline: pipeline,
		Storage:  s,
		Hub:      hub,
		Notifier: notifier,
		OAuth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		UserInfoURL:       "https://www.googleapis.com/oauth2/v2/userinfo",
		AllowedMailDomain: cfg.AllowedMailDomain,
	}
}
