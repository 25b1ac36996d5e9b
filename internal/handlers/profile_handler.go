package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"alfredoptarigan/resume-portal/internal/middlewares"
	"alfredoptarigan/resume-portal/internal/models"
	"alfredoptarigan/resume-portal/internal/services"
	"alfredoptarigan/resume-portal/internal/validator"
)

type ProfileHandler struct {
	profileService services.ProfileService
	validate       *validator.Validator
}

func NewProfileHandler(profileService services.ProfileService, validate *validator.Validator) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validate:       validate,
	}
}

// HandleGetProfile handles GET /api/profile
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)

	profile, completeness, err := h.profileService.Get(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Printf("❌ Profile fetch error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch profile",
		})
	}

	return c.JSON(fiber.Map{
		"profile":      profile,
		"completeness": completeness,
	})
}

// HandleUpdateProfile handles PUT /api/profile
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)

	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid profile fields",
				"errors":  valErr.Errors,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid profile fields",
		})
	}

	profile, completeness, err := h.profileService.Update(userID, &req)
	if err != nil {
		log.Printf("❌ Profile update error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message":      "Profile updated successfully",
		"profile":      profile,
		"completeness": completeness,
	})
}
