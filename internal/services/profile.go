package services

import (
	"math"

	"alfredoptarigan/resume-portal/internal/models"
	"alfredoptarigan/resume-portal/internal/repositories"
)

// profileFieldCount is the fixed number of fields completeness is measured
// against: first name, last name, phone, headline, summary.
const profileFieldCount = 5

type ProfileService interface {
	Get(userID uint) (*models.Profile, int, error)
	Update(userID uint, req *models.ProfileRequest) (*models.Profile, int, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// Get implements ProfileService. Returns the profile together with its
// completeness percentage.
func (s *profileService) Get(userID uint) (*models.Profile, int, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, 0, err
	}

	return profile, Completeness(profile), nil
}

// Update implements ProfileService.
func (s *profileService) Update(userID uint, req *models.ProfileRequest) (*models.Profile, int, error) {
	if err := s.profileRepo.UpdateByUserID(userID, req); err != nil {
		return nil, 0, err
	}

	return s.Get(userID)
}

// Completeness computes round(100 * filled / total) over the five profile
// fields. A field counts as filled when it is a non-empty string. An absent
// profile is 0% complete.
func Completeness(profile *models.Profile) int {
	if profile == nil {
		return 0
	}

	filled := 0
	for _, value := range []string{
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		profile.Headline,
		profile.Summary,
	} {
		if value != "" {
			filled++
		}
	}

	return int(math.Round(float64(filled) / profileFieldCount * 100))
}
