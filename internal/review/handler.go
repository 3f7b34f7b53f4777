package review

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ame-market/equipment-market-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/reviews/supplier/:id", h.listBySupplier)
	app.Get("/api/reviews/:id", h.getByID)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/reviews", h.create)
	app.Put("/api/reviews/:id", h.update)
	app.Delete("/api/reviews/:id", h.delete)
}

type createReviewRequest struct {
	OrderID     int    `json:"orderId"`
	Rating      int    `json:"rating"`
	ShortReview string `json:"shortReview"`
	Description string `json:"description"`
}

type updateReviewRequest struct {
	Rating      int    `json:"rating"`
	ShortReview string `json:"shortReview"`
	Description string `json:"description"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	rev, err := h.service.Create(userID, payload.OrderID, payload.Rating, payload.ShortReview, payload.Description)
	if err != nil {
		switch err {
		case ErrRating:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "rating must be between 1 and 5"})
		case ErrOrderNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrOrderNotCompleted:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "reviews are only allowed for completed orders"})
		case ErrAlreadyReviewed:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "review already exists for this order"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(rev)
}

func (h *Handler) getByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid review id"})
	}

	rev, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(rev)
}

func (h *Handler) listBySupplier(c *fiber.Ctx) error {
	supplierID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid supplier id"})
	}

	reviews, err := h.service.ListBySupplier(supplierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	average, err := h.service.AverageRating(supplierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"reviews":       reviews,
		"averageRating": average,
	})
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid review id"})
	}

	payload := new(updateReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	rev, err := h.service.Update(id, userID, payload.Rating, payload.ShortReview, payload.Description)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights to edit this review"})
		case ErrRating:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "rating must be between 1 and 5"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(rev)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid review id"})
	}

	if err := h.service.Delete(id, userID); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "review not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights to delete this review"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "review deleted"})
}
