package shipping

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront-backend/internal/httpx"
)

type Handler struct {
	directory *Directory
}

func NewHandler(d *Directory) *Handler {
	return &Handler{directory: d}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/shipping/methods", h.listMethods)
	app.Post("/api/shipping/calculate", h.calculate)
	app.Get("/api/shipping/seven-eleven/stores", h.listStores(MethodSevenEleven))
	app.Get("/api/shipping/shopee/stores", h.listStores(MethodShopee))
	app.Get("/api/shipping/cities", h.listCities)
	app.Get("/api/shipping/districts", h.listDistricts)
}

type calculateRequest struct {
	Method   string  `json:"shipping_method" validate:"required"`
	City     string  `json:"city,omitempty"`
	District string  `json:"district,omitempty"`
	Weight   float64 `json:"weight,omitempty" validate:"gte=0"`
}

func (h *Handler) listMethods(c *fiber.Ctx) error {
	out := make([]Quote, 0, len(quotes))
	for _, m := range Methods() {
		out = append(out, quotes[m])
	}
	return httpx.OK(c, out)
}

func (h *Handler) calculate(c *fiber.Ctx) error {
	payload := new(calculateRequest)
	if err := c.BodyParser(payload); err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if msg := httpx.Validate(payload); msg != "" {
		return httpx.Fail(c, fiber.StatusBadRequest, msg)
	}

	m, err := ParseMethod(payload.Method)
	if err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	q, err := Calculate(m)
	if err != nil {
		return httpx.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	return httpx.OK(c, q)
}

func (h *Handler) listStores(m Method) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		if limit < 0 {
			return httpx.Fail(c, fiber.StatusBadRequest, "limit must be at least 0")
		}
		stores := h.directory.Stores(m, StoreFilter{
			City:     c.Query("city"),
			District: c.Query("district"),
			Search:   c.Query("search"),
			Limit:    limit,
		})
		return httpx.OK(c, stores)
	}
}

func (h *Handler) listCities(c *fiber.Ctx) error {
	return httpx.OK(c, Cities())
}

func (h *Handler) listDistricts(c *fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		return httpx.Fail(c, fiber.StatusBadRequest, "city is required")
	}
	return httpx.OK(c, Districts(city))
}
