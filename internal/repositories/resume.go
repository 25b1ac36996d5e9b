package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-portal/internal/models"
)

type ResumeRepository interface {
	// Upsert inserts or replaces the user's resume row in a single
	// conditional write. It returns the previously stored file path, if
	// any, so the caller can hand it to a cleanup routine.
	Upsert(resume *models.Resume) (string, error)
	FindByUserID(userID uint) (*models.Resume, error)
	ListAll() ([]models.AdminResumeRow, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Upsert implements ResumeRepository. The write itself is an atomic
// ON CONFLICT upsert against the user_id unique index, so concurrent
// uploads by the same user cannot produce two rows. The previous-path
// lookup is advisory only; it feeds the old-file hook, nothing else.
func (r *resumeRepository) Upsert(resume *models.Resume) (string, error) {
	var previousPath string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Resume
		err := tx.Select("file_path").Where("user_id = ?", resume.UserID).First(&existing).Error
		if err == nil {
			previousPath = existing.FilePath
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"file_name",
				"original_name",
				"file_path",
				"file_size",
				"mime_type",
				"upload_date",
				"score",
				"feedback",
			}),
		}).Create(resume).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to upsert resume: %w", err)
	}

	return previousPath, nil
}

// FindByUserID implements ResumeRepository.
func (r *resumeRepository) FindByUserID(userID uint) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("user_id = ?", userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}

// ListAll implements ResumeRepository. Every resume on the portal, joined
// with the uploader's account and profile, newest first.
func (r *resumeRepository) ListAll() ([]models.AdminResumeRow, error) {
	var rows []models.AdminResumeRow
	err := r.db.Table("resumes").
		Select(`resumes.id AS resume_id, resumes.file_name, resumes.original_name,
			resumes.upload_date, resumes.score, resumes.feedback,
			users.username, users.email, profiles.first_name, profiles.last_name`).
		Joins("JOIN users ON users.id = resumes.user_id").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Order("resumes.upload_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	return rows, nil
}
