package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"alfredoptarigan/resume-portal/internal/models"
)

type ProfileRepository interface {
	FindByUserID(userID uint) (*models.Profile, error)
	UpdateByUserID(userID uint, req *models.ProfileRequest) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUserID implements ProfileRepository.
func (r *profileRepository) FindByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return &profile, nil
}

// UpdateByUserID implements ProfileRepository. All five profile fields are
// overwritten, matching the PUT semantics of the endpoint: an empty value
// clears the field.
func (r *profileRepository) UpdateByUserID(userID uint, req *models.ProfileRequest) error {
	result := r.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"phone":      req.Phone,
			"headline":   req.Headline,
			"summary":    req.Summary,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}
