package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"alfredoptarigan/resume-portal/internal/middlewares"
	"alfredoptarigan/resume-portal/internal/services"
)

type ResumeHandler struct {
	resumeService services.ResumeService
}

func NewResumeHandler(resumeService services.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

// HandleUpload handles POST /api/upload-resume
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded",
		})
	}

	result, err := h.resumeService.ProcessUpload(c.Context(), userID, file)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileType) || errors.Is(err, services.ErrFileTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		log.Printf("❌ Resume upload error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Resume upload failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Resume uploaded successfully",
		"score":    result.Score,
		"feedback": result.Feedback,
		"file":     result.File,
	})
}

// HandleGetResume handles GET /api/resume
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)

	resume, err := h.resumeService.GetByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No resume found",
			})
		}
		log.Printf("❌ Resume fetch error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch resume",
		})
	}

	return c.JSON(fiber.Map{
		"resume": resume,
		"band":   services.BandForScore(resume.Score),
	})
}
