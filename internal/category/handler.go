package category

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront-backend/internal/httpx"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/categories", h.getCategories)
	app.Get("/api/categories/:id<int>", h.getCategory)
}

func (h *Handler) RegisterAdminRoutes(app fiber.Router, guard fiber.Handler) {
	app.Post("/api/categories", guard, h.createCategory)
	app.Put("/api/categories/:id<int>", guard, h.updateCategory)
	app.Delete("/api/categories/:id<int>", guard, h.deleteCategory)
}

type categoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext(), c.QueryInt("limit", defaultLimit))
	if err != nil {
		h.logger.Error("list categories", zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to load categories")
	}
	return httpx.OK(c, items)
}

func (h *Handler) getCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid category id")
	}
	item, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.Fail(c, fiber.StatusNotFound, "category not found")
		}
		h.logger.Error("get category", zap.Int("category_id", id), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to load category")
	}
	return httpx.OK(c, item)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := httpx.Validate(payload); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	created, err := h.service.Create(c.UserContext(), payload.Name, payload.Description)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNameExists):
			return httpx.Fail(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error("create category", zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to create category")
	}
	return httpx.Created(c, "category created", created)
}

func (h *Handler) updateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid category id")
	}
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := httpx.Validate(payload); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	updated, err := h.service.Update(c.UserContext(), id, payload.Name, payload.Description)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return httpx.Fail(c, fiber.StatusNotFound, "category not found")
		case errors.Is(err, ErrNameExists):
			return httpx.Fail(c, fiber.StatusConflict, err.Error())
		}
		h.logger.Error("update category", zap.Int("category_id", id), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to update category")
	}
	return httpx.OKMessage(c, "category updated", updated)
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid category id")
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.Fail(c, fiber.StatusNotFound, "category not found")
		}
		h.logger.Error("delete category", zap.Int("category_id", id), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to delete category")
	}
	return httpx.OKMessage(c, "category deleted", nil)
}
