// services/user_service.go
package services

import (
	"errors"
	"log"
	"regexp"
	"time"

	"georound-backend/models"
	"georound-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*$`)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func validEmail(email string) bool {
	if len(email) < 6 {
		return false
	}
	return emailRegex.MatchString(email)
}

// CreateUser registers a new user and issues their permanent token.
func (s *UserService) CreateUser(c *fiber.Ctx) error {
	var in struct {
		Email *string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	if in.Email == nil || !validEmail(*in.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email",
		})
	}
	email := *in.Email

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email, already in use.",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[USER] email lookup failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	token, err := utils.NewUserToken()
	if err != nil {
		log.Printf("[USER] token generation failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	user := models.User{
		ID:            uuid.NewString(),
		UserToken:     token,
		Email:         email,
		RequestCount:  1,
		LastRequestAt: time.Now(),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Printf("[USER] insert failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"email":   email,
		"token":   token,
	})
}

// GetLocations lists every recorded point for a token, newest first.
func (s *UserService) GetLocations(c *fiber.Ctx) error {
	token := c.Params("token")

	var locations []models.Location
	err := s.DB.Where("user_token = ?", token).
		Order("created_at DESC").
		Find(&locations).Error
	if err != nil {
		log.Printf("[USER] location list failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	return c.JSON(locations)
}
