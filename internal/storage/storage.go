package storage

import (
	"context"
	"encoding/json"

	"hosteldesk/backend/internal/config"
	"hosteldesk/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Storage interface {
	CreateOrGetUser(email, name string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)

	SaveComplaint(complaint *models.Complaint) error
	GetComplaintByID(id uint) (*models.Complaint, error)
	ListComplaints(status string) ([]models.Complaint, error)
	UpdateComplaintStatus(id uint, status string) error

	PublishAcceptedComplaint(complaint *models.Complaint) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// PublishAcceptedComplaint announces a newly accepted complaint on Redis
// Pub/Sub so every running instance can push it to its connected feed clients.
func (s *Service) PublishAcceptedComplaint(complaint *models.Complaint) error {
	payload, err := json.Marshal(complaint)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, config.AcceptedComplaintsChannel, string(payload)).Err()
}

// SubscribeAcceptedComplaints subscribes to the accepted-complaints channel.
// The caller owns the returned PubSub and must Close it.
func (s *Service) SubscribeAcceptedComplaints() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, config.AcceptedComplaintsChannel)
}
