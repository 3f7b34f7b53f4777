package review

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/ame-market/equipment-market-backend/internal/order"
)

func makeAppWithReviewHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestReviewRoutes(t *testing.T) {
	service := newReviewService(map[int]order.Order{
		1: {ID: 1, UserID: 42, SupplierID: 10, Status: order.StatusCompleted},
		2: {ID: 2, UserID: 42, SupplierID: 10, Status: order.StatusInProgress},
	})
	app := makeAppWithReviewHandler(NewHandler(service))

	// posting without a token is refused
	req := httptest.NewRequest("POST", "/api/reviews", strings.NewReader(`{"orderId":1,"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	// a review for an unfinished order is a 400
	req = httptest.NewRequest("POST", "/api/reviews", strings.NewReader(`{"orderId":2,"rating":5,"shortReview":"fast"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unfinished order, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/reviews", strings.NewReader(`{"orderId":1,"rating":5,"shortReview":"fast","description":"arrived early"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for review, got %d", res.StatusCode)
	}

	// a duplicate for the same order conflicts
	req = httptest.NewRequest("POST", "/api/reviews", strings.NewReader(`{"orderId":1,"rating":4}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate review, got %d", res.StatusCode)
	}

	// the public supplier listing carries the average
	res, _ = app.Test(httptest.NewRequest("GET", "/api/reviews/supplier/10", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for public listing, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"averageRating":5`) {
		t.Fatalf("expected average rating in listing, got %s", string(b))
	}
	if !strings.Contains(string(b), `"shortReview":"fast"`) {
		t.Fatalf("expected review in listing, got %s", string(b))
	}
}
