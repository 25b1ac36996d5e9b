package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"alfredoptarigan/resume-portal/internal/models"
	"alfredoptarigan/resume-portal/internal/repositories"
)

var (
	ErrInvalidFileType = errors.New("invalid file type. Only PDF and Word documents are allowed")
	ErrFileTooLarge    = errors.New("file too large")
)

// allowedMimeTypes is the intake whitelist. Legacy .doc passes intake but
// is rejected by the extractor.
var allowedMimeTypes = map[string]bool{
	MimePDF:  true,
	MimeDOC:  true,
	MimeDOCX: true,
}

// OldFileHook receives the storage path of the file a new upload replaced.
// The portal itself never deletes replaced files; an external cleanup
// routine is expected to consume this.
type OldFileHook func(path string)

type ResumeService interface {
	ProcessUpload(ctx context.Context, userID uint, file *multipart.FileHeader) (*models.UploadResult, error)
	GetByUser(userID uint) (*models.Resume, error)
}

type resumeService struct {
	resumeRepo  repositories.ResumeRepository
	storage     StorageService
	extractor   ExtractorService
	scorer      ScorerService
	maxFileSize int64
	oldFileHook OldFileHook
}

func NewResumeService(
	resumeRepo repositories.ResumeRepository,
	storage StorageService,
	extractor ExtractorService,
	scorer ScorerService,
	maxFileSize int64,
	oldFileHook OldFileHook,
) ResumeService {
	if oldFileHook == nil {
		oldFileHook = func(path string) {
			log.Printf("🗑️  Replaced resume file left on disk: %s\n", path)
		}
	}

	return &resumeService{
		resumeRepo:  resumeRepo,
		storage:     storage,
		extractor:   extractor,
		scorer:      scorer,
		maxFileSize: maxFileSize,
		oldFileHook: oldFileHook,
	}
}

// ProcessUpload implements ResumeService. One sequential pipeline:
// validate → store file → extract → score → upsert. An extraction failure
// aborts the whole request and leaves any previous resume row untouched;
// a scoring failure does not: the zero-score fallback is persisted.
func (s *resumeService) ProcessUpload(ctx context.Context, userID uint, file *multipart.FileHeader) (*models.UploadResult, error) {
	mimeType := file.Header.Get("Content-Type")
	if !allowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, mimeType)
	}
	if file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	filename, filePath, err := s.storage.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume file: %w", err)
	}

	extractedText, err := s.extractor.ExtractText(filePath, mimeType)
	if err != nil {
		// Abort before any state change; the just-saved file has no row
		// pointing at it, so remove it.
		if delErr := s.storage.DeleteFile(filename); delErr != nil {
			log.Printf("⚠️  Failed to remove file after extraction error: %v\n", delErr)
		}
		return nil, fmt.Errorf("failed to extract resume text: %w", err)
	}

	// Scoring runs detached from the request context: a client disconnect
	// mid-pipeline must not turn a reachable predictor's score into the
	// persisted fallback. The scorer's own client timeout bounds the call.
	score, feedback := s.scorer.Score(context.WithoutCancel(ctx), extractedText)

	resume := &models.Resume{
		UserID:       userID,
		FileName:     filename,
		OriginalName: file.Filename,
		FilePath:     filePath,
		FileSize:     file.Size,
		MimeType:     mimeType,
		UploadDate:   time.Now(),
		Score:        &score,
		Feedback:     feedback,
	}

	previousPath, err := s.resumeRepo.Upsert(resume)
	if err != nil {
		return nil, fmt.Errorf("failed to persist resume: %w", err)
	}

	if previousPath != "" && previousPath != filePath {
		s.oldFileHook(previousPath)
	}

	return &models.UploadResult{
		Score:    score,
		Feedback: feedback,
		File: models.UploadedFile{
			Filename:     filename,
			OriginalName: file.Filename,
			Size:         file.Size,
		},
	}, nil
}

// GetByUser implements ResumeService.
func (s *resumeService) GetByUser(userID uint) (*models.Resume, error) {
	return s.resumeRepo.FindByUserID(userID)
}
