package handlers

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"alfredoptarigan/resume-portal/internal/middlewares"
	"alfredoptarigan/resume-portal/internal/models"
	"alfredoptarigan/resume-portal/internal/validator"
)

type stubProfileService struct {
	profile      *models.Profile
	completeness int
	err          error
}

func (s *stubProfileService) Get(userID uint) (*models.Profile, int, error) {
	return s.profile, s.completeness, s.err
}

func (s *stubProfileService) Update(userID uint, req *models.ProfileRequest) (*models.Profile, int, error) {
	return s.profile, s.completeness, s.err
}

func newProfileTestApp(svc *stubProfileService) *fiber.App {
	app := fiber.New()
	handler := NewProfileHandler(svc, validator.New())
	app.Get("/api/profile", func(c *fiber.Ctx) error {
		c.Locals(middlewares.LocalUserIDKey, uint(7))
		return c.Next()
	}, handler.HandleGetProfile)
	return app
}

func TestHandleGetProfileStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "missing profile row",
			err:        fmt.Errorf("profile not found: %w", gorm.ErrRecordNotFound),
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "repository failure",
			err:        errors.New("failed to find profile: connection refused"),
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newProfileTestApp(&stubProfileService{err: tt.err})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/profile", nil))
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

func TestHandleGetProfileSuccess(t *testing.T) {
	app := newProfileTestApp(&stubProfileService{
		profile:      &models.Profile{UserID: 7, FirstName: "Jane"},
		completeness: 20,
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/profile", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}
