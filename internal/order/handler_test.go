package order

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/ame-market/equipment-market-backend/internal/cart"
	"github.com/ame-market/equipment-market-backend/internal/equipment"
)

// makeAppWithOrderHandler installs a fake auth middleware that turns the
// X-User-ID / X-Supplier-ID headers into JWT claims.
func makeAppWithOrderHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		claims := jwt.MapClaims{}
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims["user_id"] = id
			}
		}
		if v := c.Get("X-Supplier-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims["supplier_id"] = id
			}
		}
		if len(claims) > 0 {
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func newOrderHandlerFixture() (*fiber.App, *cart.Service) {
	eqRepo := equipment.NewInMemoryRepository([]equipment.Equipment{
		{ID: 1, SupplierID: 10, Name: "Excavator", Price: 500000},
	})
	cartRepo := cart.NewInMemoryRepository()
	carts := cart.NewService(cartRepo, equipment.NewService(eqRepo))

	orderRepo := NewInMemoryRepository()
	orderRepo.ClearCart = cartRepo.Clear

	handler := NewHandler(NewService(orderRepo, carts))
	return makeAppWithOrderHandler(handler), carts
}

func TestOrderRoutes_Checkout(t *testing.T) {
	app, carts := newOrderHandlerFixture()

	// unauthenticated checkout is refused
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(`{"deliveryAddress":"12 Harbor Rd"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated checkout, got %d", res.StatusCode)
	}

	// delivery address is mandatory
	req = httptest.NewRequest("POST", "/api/orders", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without delivery address, got %d", res.StatusCode)
	}

	// an empty cart cannot be checked out
	req = httptest.NewRequest("POST", "/api/orders", strings.NewReader(`{"deliveryAddress":"12 Harbor Rd"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", res.StatusCode)
	}

	carts.AddItem(42, 1, 2)

	req = httptest.NewRequest("POST", "/api/orders", strings.NewReader(`{"deliveryAddress":"12 Harbor Rd"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for checkout, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"status":"under review"`) {
		t.Fatalf("expected new order under review, got %s", string(b))
	}
	if !strings.Contains(string(b), `"totalCost":1000000`) {
		t.Fatalf("expected total 1000000, got %s", string(b))
	}
}

func TestOrderRoutes_StatusByRole(t *testing.T) {
	app, carts := newOrderHandlerFixture()
	carts.AddItem(42, 1, 1)

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(`{"deliveryAddress":"12 Harbor Rd"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	app.Test(req)

	// the supplier moves the order forward
	req = httptest.NewRequest("PUT", "/api/orders/1/status", strings.NewReader(`{"status":"in progress"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Supplier-ID", "10")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for supplier transition, got %d", res.StatusCode)
	}

	// the user can no longer cancel
	req = httptest.NewRequest("PUT", "/api/orders/1/status", strings.NewReader(`{"status":"cancelled"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for late cancel, got %d", res.StatusCode)
	}

	// a foreign supplier gets refused
	req = httptest.NewRequest("PUT", "/api/orders/1/status", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Supplier-ID", "99")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for foreign supplier, got %d", res.StatusCode)
	}
}

func TestOrderRoutes_Listings(t *testing.T) {
	app, carts := newOrderHandlerFixture()
	carts.AddItem(42, 1, 1)

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(`{"deliveryAddress":"12 Harbor Rd"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	app.Test(req)

	req = httptest.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for user listing, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"supplierId":10`) {
		t.Fatalf("expected order in user listing, got %s", string(b))
	}

	// supplier listing requires a supplier token
	req = httptest.NewRequest("GET", "/api/supplier/orders", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for user token on supplier listing, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/supplier/orders", nil)
	req.Header.Set("X-Supplier-ID", "10")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for supplier listing, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"userId":42`) {
		t.Fatalf("expected order in supplier listing, got %s", string(b))
	}
}
