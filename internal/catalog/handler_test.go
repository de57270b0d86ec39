package catalog

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeApp() *fiber.App {
	app := fiber.New()
	handler := NewHandler(NewService(NewInMemoryRepository(DefaultCatalog())))
	handler.RegisterPublicRoutes(app)
	return app
}

func TestProductRoutes(t *testing.T) {
	app := makeApp()

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for product list, got %d", res.StatusCode)
	}
	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 5 {
		t.Fatalf("expected 5 seeded products, got %d", len(products))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/2", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for product 2, got %d", res.StatusCode)
	}
	var p Product
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if p.Title != "Conf Mug" {
		t.Fatalf("unexpected product %q", p.Title)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/999", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}
}
