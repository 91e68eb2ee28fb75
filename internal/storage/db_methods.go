package storage

import (
	"errors"
	"log"

	"hosteldesk/backend/internal/models"

	"gorm.io/gorm"
)

// CreateOrGetUser looks a user up by email, creating the record on first
// login. If the display name coming from the identity provider changed, the
// stored name is updated to match.
func (s *Service) CreateOrGetUser(email, name string) (*models.User, error) {
	var user models.User

	err := s.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Name != name {
			if err := s.DB.Model(&user).Update("name", name).Error; err != nil {
				return nil, err
			}
			user.Name = name
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ERROR: Failed to look up user %s: %v", email, err)
		return nil, err
	}

	user = models.User{Email: email, Name: name}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", email, err)
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveComplaint inserts one accepted complaint. CreatedAt is assigned by the
// database layer at insert time; duplicate content is inserted as a new row.
func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	if complaint.Status == "" {
		complaint.Status = models.ComplaintStatusOpen
	}

	if err := s.DB.Create(complaint).Error; err != nil {
		log.Printf("ERROR: Failed to save complaint for user %s: %v", complaint.UserID, err)
		return err
	}
	return nil
}

func (s *Service) GetComplaintByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// ListComplaints returns complaints newest first, optionally filtered by status.
func (s *Service) ListComplaints(status string) ([]models.Complaint, error) {
	var complaints []models.Complaint

	q := s.DB.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

func (s *Service) UpdateComplaintStatus(id uint, status string) error {
	result := s.DB.Model(&models.Complaint{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
