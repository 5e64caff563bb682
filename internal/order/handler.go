package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront-backend/internal/httpx"
	"github.com/wichananm65/storefront-backend/internal/middleware"
	"github.com/wichananm65/storefront-backend/internal/user"
	"go.uber.org/zap"
)

// Handler delegates order operations to the order service.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

// RegisterProtectedRoutes mounts the order routes. Every route needs an
// authenticated caller; the admin routes check the role in the service.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/orders", h.placeOrder)
	app.Get("/api/orders/my-orders", h.getMyOrders)
	app.Get("/api/orders/admin/all", h.getAllOrders)
	app.Get("/api/orders/:id<int>", h.getOrder)
	app.Patch("/api/orders/:id<int>/status", h.updateStatus)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	ident, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := new(PlaceOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.PlaceOrder(c.UserContext(), ident.ID, *payload)
	if err != nil {
		return h.fail(c, "place order", err)
	}
	return httpx.Created(c, "order placed", created)
}

func (h *Handler) getMyOrders(c *fiber.Ctx) error {
	ident, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.service.ListForUser(c.UserContext(), ident.ID)
	if err != nil {
		return h.fail(c, "list orders", err)
	}
	return httpx.OK(c, orders)
}

func (h *Handler) getAllOrders(c *fiber.Ctx) error {
	ident, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.service.ListAll(c.UserContext(), ident)
	if err != nil {
		return h.fail(c, "list all orders", err)
	}
	return httpx.OK(c, orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	ident, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid order id")
	}

	o, err := h.service.GetOrder(c.UserContext(), id, ident.ID)
	if err != nil {
		return h.fail(c, "get order", err)
	}
	return httpx.OK(c, o)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	ident, err := user.GetIdentityFromCtx(c)
	if err != nil {
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid order id")
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := httpx.Validate(payload); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), ident, id, payload.Status)
	if err != nil {
		return h.fail(c, "update order status", err)
	}
	return httpx.OKMessage(c, "order status updated", updated)
}

// fail maps service errors to responses. Unexpected errors are logged and
// answered with a fixed message.
func (h *Handler) fail(c *fiber.Ctx, op string, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return httpx.Fail(c, fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, ErrEmptyOrder), errors.Is(err, ErrInvalidStatus):
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthenticated):
		return httpx.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrForbidden):
		return httpx.Fail(c, fiber.StatusForbidden, "admin privileges required")
	case errors.Is(err, ErrNotFound):
		return httpx.Fail(c, fiber.StatusNotFound, "order not found")
	case errors.Is(err, ErrStockUnavailable):
		return httpx.Fail(c, fiber.StatusConflict, "insufficient stock for one or more items")
	default:
		h.logger.Error(op,
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		return httpx.Fail(c, fiber.StatusInternalServerError, "failed to process order")
	}
}
