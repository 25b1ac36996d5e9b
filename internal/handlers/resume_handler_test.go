package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"alfredoptarigan/resume-portal/internal/middlewares"
	"alfredoptarigan/resume-portal/internal/models"
)

type stubResumeService struct {
	resume *models.Resume
	err    error
}

func (s *stubResumeService) ProcessUpload(ctx context.Context, userID uint, file *multipart.FileHeader) (*models.UploadResult, error) {
	return nil, s.err
}

func (s *stubResumeService) GetByUser(userID uint) (*models.Resume, error) {
	return s.resume, s.err
}

func newResumeTestApp(svc *stubResumeService) *fiber.App {
	app := fiber.New()
	handler := NewResumeHandler(svc)
	app.Get("/api/resume", func(c *fiber.Ctx) error {
		c.Locals(middlewares.LocalUserIDKey, uint(7))
		return c.Next()
	}, handler.HandleGetResume)
	return app
}

func TestHandleGetResumeStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "no resume uploaded yet",
			err:        fmt.Errorf("resume not found: %w", gorm.ErrRecordNotFound),
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "repository failure",
			err:        errors.New("failed to find resume: connection refused"),
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newResumeTestApp(&stubResumeService{err: tt.err})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/resume", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestHandleGetResumeSuccess(t *testing.T) {
	score := 85
	app := newResumeTestApp(&stubResumeService{
		resume: &models.Resume{UserID: 7, OriginalName: "cv.pdf", Score: &score},
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/resume", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}
