package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hackathon-management-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles account registration, login and profile updates.
// Tokens are HS256 JWTs carrying the user ID as subject.
type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{
		DB:        db,
		JWTSecret: secret,
		TokenTTL:  24 * time.Hour,
	}
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against its bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateAccessToken issues a signed token for the user.
func (s *AuthService) GenerateAccessToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iat": now.Unix(),
		"exp": now.Add(s.TokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(s.JWTSecret))
}

// RegisterUser creates an account. Email must be unique; name at least 3
// characters, password at least 8.
func (s *AuthService) RegisterUser(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(name) < 3 {
		return nil, ValidationError("name must be at least 3 characters")
	}
	if !strings.Contains(email, "@") {
		return nil, ValidationError("invalid email address")
	}
	if len(password) < 8 {
		return nil, ValidationError("password must be at least 8 characters")
	}

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, DuplicateError("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginUser verifies credentials and issues an access token.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, AuthorizationError("invalid credentials")
	}
	if !CheckPassword(user.PasswordHash, password) {
		return "", nil, AuthorizationError("invalid credentials")
	}

	token, err := s.GenerateAccessToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// ---- Fiber endpoints ----

type userPayload struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register handles POST /auth/register.
func (s *AuthService) Register(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, ValidationError("invalid request body"))
	}

	user, err := s.RegisterUser(body.Name, body.Email, body.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    userPayload{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Login handles POST /auth/login.
func (s *AuthService) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, ValidationError("invalid request body"))
	}

	token, user, err := s.LoginUser(body.Email, body.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"access_token": token,
		"user":         userPayload{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

// Logout handles GET /auth/logout. Tokens are stateless; the client drops it.
func (s *AuthService) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /auth/me.
func (s *AuthService) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return respondError(c, NotFoundError("user not found"))
	}
	return c.JSON(userPayload{ID: user.ID, Name: user.Name, Email: user.Email})
}

// Update handles PUT /auth/update.
func (s *AuthService) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return respondError(c, AuthorizationError("missing user context"))
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return respondError(c, NotFoundError("user not found"))
	}

	var body struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, ValidationError("invalid request body"))
	}

	if body.Name != "" {
		if len(strings.TrimSpace(body.Name)) < 3 {
			return respondError(c, ValidationError("name must be at least 3 characters"))
		}
		user.Name = strings.TrimSpace(body.Name)
	}
	if body.Password != "" {
		if len(body.Password) < 8 {
			return respondError(c, ValidationError("password must be at least 8 characters"))
		}
		hash, err := HashPassword(body.Password)
		if err != nil {
			return respondError(c, err)
		}
		user.PasswordHash = hash
	}

	if err := s.DB.Save(&user).Error; err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    userPayload{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}
