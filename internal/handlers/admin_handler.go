package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-portal/internal/repositories"
)

type AdminHandler struct {
	resumeRepo repositories.ResumeRepository
}

func NewAdminHandler(resumeRepo repositories.ResumeRepository) *AdminHandler {
	return &AdminHandler{resumeRepo: resumeRepo}
}

// HandleListResumes handles GET /api/admin/resumes. Any authenticated user
// can call this; the portal has no role concept.
func (h *AdminHandler) HandleListResumes(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.ListAll()
	if err != nil {
		log.Printf("❌ Admin resumes error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch resumes",
		})
	}

	return c.JSON(fiber.Map{
		"resumes": resumes,
	})
}
