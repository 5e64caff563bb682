package shipping

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeApp() *fiber.App {
	app := fiber.New()
	NewHandler(NewDirectory()).RegisterPublicRoutes(app)
	return app
}

func TestCalculateRoute(t *testing.T) {
	app := makeApp()

	req := httptest.NewRequest("POST", "/api/shipping/calculate", strings.NewReader(`{"shipping_method":"home_delivery"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"shipping_fee":"90"`) || !strings.Contains(string(b), `"estimated_days":2`) {
		t.Fatalf("unexpected body: %s", string(b))
	}

	req2 := httptest.NewRequest("POST", "/api/shipping/calculate", strings.NewReader(`{"shipping_method":"pigeon"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %d", res2.StatusCode)
	}

	req3 := httptest.NewRequest("POST", "/api/shipping/calculate", strings.NewReader(`{}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing method, got %d", res3.StatusCode)
	}
}

func TestStoreRoutes(t *testing.T) {
	app := makeApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/api/shipping/shopee/stores?limit=2", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Count(string(b), "store_id") != 2 {
		t.Fatalf("expected 2 stores, got %s", string(b))
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/shipping/districts", nil))
	if res2.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without city, got %d", res2.StatusCode)
	}
}
