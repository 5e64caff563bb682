package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront-backend/internal/httpx"
	"github.com/wichananm65/storefront-backend/internal/product"
	"github.com/wichananm65/storefront-backend/internal/user"
	"go.uber.org/zap"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/cart", h.getCart)
	app.Post("/api/cart", h.addToCart)
	app.Put("/api/cart/:productId<int>", h.setQuantity)
	app.Delete("/api/cart/:productId<int>", h.removeItem)
	app.Delete("/api/cart", h.clearCart)
}

type addRequest struct {
	ProductID int `json:"product_id" validate:"gt=0"`
	Quantity  int `json:"quantity" validate:"gt=0"`
}

type setRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, "get cart", userID, err)
	}
	return httpx.OK(c, cart)
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := addRequest{Quantity: 1}
	if err := c.BodyParser(&payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := httpx.Validate(payload); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	cart, err := h.service.Add(c.UserContext(), userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return h.fail(c, "add to cart", userID, err)
	}
	return httpx.OKMessage(c, "item added to cart", cart)
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	productID, err := c.ParamsInt("productId")
	if err != nil || productID <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	payload := new(setRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	cart, err := h.service.SetQuantity(c.UserContext(), userID, productID, payload.Quantity)
	if err != nil {
		return h.fail(c, "update cart item", userID, err)
	}
	return httpx.OKMessage(c, "cart updated", cart)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	productID, err := c.ParamsInt("productId")
	if err != nil || productID <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	cart, err := h.service.Remove(c.UserContext(), userID, productID)
	if err != nil {
		return h.fail(c, "remove cart item", userID, err)
	}
	return httpx.OKMessage(c, "item removed from cart", cart)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.service.Clear(c.UserContext(), userID); err != nil {
		return h.fail(c, "clear cart", userID, err)
	}
	return httpx.OKMessage(c, "cart cleared", nil)
}

func (h *Handler) fail(c *fiber.Ctx, op string, userID int, err error) error {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, product.ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "product not found")
	case errors.Is(err, ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "item not in cart")
	default:
		h.logger.Error(op, zap.Int("user_id", userID), zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to update cart")
	}
}
