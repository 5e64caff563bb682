package user

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/storefront-backend/internal/httpx"
	"go.uber.org/zap"
)

type Handler struct {
	service  *Service
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

func NewHandler(service *Service, secret []byte, tokenTTL time.Duration, logger *zap.Logger) *Handler {
	return &Handler{service: service, secret: secret, tokenTTL: tokenTTL, logger: logger}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/auth/register", h.register)
	app.Post("/api/auth/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/auth/profile", h.getProfile)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := httpx.Validate(payload); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	u, err := h.service.Authenticate(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	signed, err := h.issueToken(u)
	if err != nil {
		h.logger.Error("sign token", zap.Int("user_id", u.ID), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	return httpx.OKMessage(c, "login successful", fiber.Map{
		"user":  u,
		"token": signed,
	})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := httpx.Validate(payload); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	created, err := h.service.Register(c.UserContext(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return httpx.Fail(c, fiber.StatusConflict, "email already exists")
		}
		h.logger.Error("register user", zap.String("email", payload.Email), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to register user")
	}

	signed, err := h.issueToken(created)
	if err != nil {
		h.logger.Error("sign token", zap.Int("user_id", created.ID), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	return httpx.Created(c, "registration successful", fiber.Map{
		"user":  created,
		"token": signed,
	})
}

// getProfile returns the account behind the caller's token.
func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	u, err := h.service.GetByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.Fail(c, fiber.StatusNotFound, "user not found")
		}
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return httpx.OK(c, u)
}

func (h *Handler) issueToken(u User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    string(u.Role),
		"exp":     time.Now().Add(h.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}
