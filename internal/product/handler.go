package product

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/storefront-backend/internal/httpx"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/products", h.getProducts)
	app.Get("/api/products/:id<int>", h.getProduct)
}

// RegisterAdminRoutes mounts catalog maintenance behind the given guard.
func (h *Handler) RegisterAdminRoutes(app fiber.Router, guard fiber.Handler) {
	app.Post("/api/products", guard, h.createProduct)
	app.Put("/api/products/:id<int>", guard, h.updateProduct)
	app.Delete("/api/products/:id<int>", guard, h.deleteProduct)
}

type productRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CategoryID  *int            `json:"category_id,omitempty" validate:"omitempty,gt=0"`
}

// validate reports every problem with p in one message, or "".
func (p *productRequest) validate() string {
	var msgs []string
	if msg := httpx.Validate(p); msg != "" {
		msgs = append(msgs, msg)
	}
	// decimal.Decimal has no validator tags
	switch {
	case p.Price.IsNegative():
		msgs = append(msgs, "price must not be negative")
	case !p.Price.Equal(p.Price.Round(2)):
		msgs = append(msgs, "price must have at most 2 decimal places")
	}
	return strings.Join(msgs, "; ")
}

func (p productRequest) toProduct() Product {
	return Product{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
	}
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext(), c.QueryInt("category_id"))
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to load products")
	}
	return httpx.OK(c, products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	p, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.Fail(c, fiber.StatusNotFound, "product not found")
		}
		h.logger.Error("get product", zap.Int("product_id", id), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to load product")
	}
	return httpx.OK(c, p)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if msg := payload.validate(); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	created, err := h.service.Create(c.UserContext(), payload.toProduct())
	if err != nil {
		h.logger.Error("create product", zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to create product")
	}
	return httpx.Created(c, "product created", created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := payload.validate(); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	updated, err := h.service.Update(c.UserContext(), id, payload.toProduct())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.Fail(c, fiber.StatusNotFound, "product not found")
		}
		h.logger.Error("update product", zap.Int("product_id", id), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to update product")
	}
	return httpx.OKMessage(c, "product updated", updated)
}

// deleteProduct removes a product that no order refers to. Products already
// ordered stay in the catalog so order history keeps its line items.
func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return httpx.Fail(c, fiber.StatusNotFound, "product not found")
		case errors.Is(err, ErrInUse):
			return httpx.Fail(c, fiber.StatusConflict, "product has been ordered and cannot be deleted")
		}
		h.logger.Error("delete product", zap.Int("product_id", id), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to delete product")
	}
	return httpx.OKMessage(c, "product deleted", nil)
}
