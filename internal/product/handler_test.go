package product

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func ptrString(s string) *string { return &s }

func makeAppWithProductHandler(h *Handler, allowAdmin bool) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	guard := func(c *fiber.Ctx) error {
		if !allowAdmin {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.Next()
	}
	h.RegisterAdminRoutes(app, guard)
	return app
}

func TestProductRoutes_Public(t *testing.T) {
	seed := []Product{{ID: 12, Name: "Cat Sweater", Price: decimal.NewFromInt(260), Stock: 4, ImageURL: ptrString("/img/12.png")}}
	h := NewHandler(NewService(NewInMemoryRepository(seed)), zap.NewNop())
	app := makeAppWithProductHandler(h, false)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	if !routes["/api/products/:id<int>"] {
		t.Fatalf("expected route '/api/products/:id<int>' to be registered")
	}

	res, err := app.Test(httptest.NewRequest("GET", "/api/products/12", nil))
	if err != nil {
		t.Fatalf("product request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Cat Sweater") || !strings.Contains(string(b), `"stock":4`) {
		t.Fatalf("unexpected body: %s", string(b))
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/products/99", nil))
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res2.StatusCode)
	}

	res3, _ := app.Test(httptest.NewRequest("GET", "/api/products", nil))
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for list, got %d", res3.StatusCode)
	}
}

func TestProductRoutes_Admin(t *testing.T) {
	h := NewHandler(NewService(NewInMemoryRepository(nil)), zap.NewNop())

	denied := makeAppWithProductHandler(h, false)
	req := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":"Bowl","price":"420","stock":3}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := denied.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	app := makeAppWithProductHandler(h, true)
	req2 := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":"Bowl","price":420.5,"stock":3}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res2.StatusCode)
	}
	b, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b), `"price":"420.5"`) {
		t.Fatalf("unexpected body: %s", string(b))
	}

	req3 := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"price":-1,"stock":-2}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	for _, msg := range []string{"name is required", "stock must be at least 0", "price must not be negative"} {
		if !strings.Contains(string(b3), msg) {
			t.Fatalf("expected %q in %s", msg, string(b3))
		}
	}
	if !strings.Contains(string(b3), `"success":false`) {
		t.Fatalf("expected failure envelope, got %s", string(b3))
	}

	req3b := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":"Bowl","price":"1.005","stock":1}`))
	req3b.Header.Set("Content-Type", "application/json")
	res3b, _ := app.Test(req3b)
	if res3b.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for sub-cent price, got %d", res3b.StatusCode)
	}

	req4 := httptest.NewRequest("PUT", "/api/products/1", strings.NewReader(`{"name":"Bowl XL","price":"500","stock":1}`))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for update, got %d", res4.StatusCode)
	}

	req5 := httptest.NewRequest("PUT", "/api/products/77", strings.NewReader(`{"name":"Ghost","price":"1","stock":1}`))
	req5.Header.Set("Content-Type", "application/json")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res5.StatusCode)
	}
}

func TestProductRoutes_CategoryFilter(t *testing.T) {
	toys := 3
	seed := []Product{
		{ID: 1, Name: "Feather Wand", Price: decimal.NewFromInt(80), Stock: 9, CategoryID: &toys},
		{ID: 2, Name: "Kibble", Price: decimal.NewFromInt(350), Stock: 20},
	}
	app := makeAppWithProductHandler(NewHandler(NewService(NewInMemoryRepository(seed)), zap.NewNop()), false)

	res, err := app.Test(httptest.NewRequest("GET", "/api/products?category_id=3", nil))
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Feather Wand") || strings.Contains(string(b), "Kibble") {
		t.Fatalf("expected only category 3 products, got %s", string(b))
	}
}

// orderedRepository reports every product as referenced by an order.
type orderedRepository struct {
	*InMemoryRepository
}

func (orderedRepository) Delete(context.Context, int) error { return ErrInUse }

func TestProductRoutes_Delete(t *testing.T) {
	seed := []Product{{ID: 5, Name: "Leash", Price: decimal.NewFromInt(150), Stock: 2}}
	repo := NewInMemoryRepository(seed)
	app := makeAppWithProductHandler(NewHandler(NewService(repo), zap.NewNop()), true)

	res, _ := app.Test(httptest.NewRequest("DELETE", "/api/products/5", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", res.StatusCode)
	}
	if _, err := repo.GetByID(context.Background(), 5); err != ErrNotFound {
		t.Fatalf("expected product to be gone, got %v", err)
	}

	res2, _ := app.Test(httptest.NewRequest("DELETE", "/api/products/5", nil))
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for second delete, got %d", res2.StatusCode)
	}

	denied := makeAppWithProductHandler(NewHandler(NewService(NewInMemoryRepository(seed)), zap.NewNop()), false)
	res3, _ := denied.Test(httptest.NewRequest("DELETE", "/api/products/5", nil))
	if res3.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res3.StatusCode)
	}

	ordered := makeAppWithProductHandler(NewHandler(NewService(orderedRepository{NewInMemoryRepository(seed)}), zap.NewNop()), true)
	res4, _ := ordered.Test(httptest.NewRequest("DELETE", "/api/products/5", nil))
	if res4.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for ordered product, got %d", res4.StatusCode)
	}
}
