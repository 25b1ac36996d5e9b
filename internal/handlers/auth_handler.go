package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/resume-portal/internal/middlewares"
	"alfredoptarigan/resume-portal/internal/models"
	"alfredoptarigan/resume-portal/internal/repositories"
	"alfredoptarigan/resume-portal/internal/validator"
)

type AuthHandler struct {
	userRepo repositories.UserRepository
	store    *session.Store
	validate *validator.Validator
}

func NewAuthHandler(
	userRepo repositories.UserRepository,
	store *session.Store,
	validate *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		store:    store,
		validate: validate,
	}
}

// HandleRegister handles POST /api/register
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "All fields are required",
				"errors":  valErr.Errors,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "All fields are required",
		})
	}

	exists, err := h.userRepo.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		log.Printf("❌ Registration error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Username or email already exists",
		})
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Registration error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed",
		})
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}

	if err := h.userRepo.CreateWithProfile(user); err != nil {
		log.Printf("❌ Registration error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
	})
}

// HandleLogin handles POST /api/login
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and password are required",
		})
	}

	// Same response for unknown email and wrong password.
	user, err := h.userRepo.FindByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("❌ Login error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Login failed",
		})
	}

	sess.Set(middlewares.SessionUserIDKey, user.ID)
	if err := sess.Save(); err != nil {
		log.Printf("❌ Login error: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Login failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user": models.SessionUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// HandleLogout handles POST /api/logout
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Logout failed",
		})
	}

	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Logout failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// HandleCurrentUser handles GET /api/user
func (h *AuthHandler) HandleCurrentUser(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	return c.JSON(fiber.Map{
		"user": models.SessionUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}
