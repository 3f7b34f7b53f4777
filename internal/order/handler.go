package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ame-market/equipment-market-backend/internal/auth"
)

// Handler delegates order operations to the order service. The status
// route accepts either token role and routes to the matching service
// method.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders", h.checkout)
	app.Get("/api/orders", h.listForUser)
	app.Get("/api/supplier/orders", h.listForSupplier)
	app.Get("/api/orders/:id", h.getByID)
	app.Put("/api/orders/:id/status", h.setStatus)
	app.Put("/api/orders/:id/completion-time", h.setCompletionTime)
	app.Delete("/api/orders/:id", h.delete)
}

type checkoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	Description     string `json:"description"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type completionTimeRequest struct {
	CompletionTime string `json:"completionTime"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.DeliveryAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "delivery address is required"})
	}

	ord, err := h.service.Checkout(userID, payload.DeliveryAddress, payload.Description)
	if err != nil {
		switch err {
		case ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case ErrMultipleSuppliers:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "all items must belong to one supplier"})
		case ErrCartConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "cart changed, please retry"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "order created", "order": ord})
}

func (h *Handler) listForUser(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) listForSupplier(c *fiber.Ctx) error {
	supplierID, err := auth.SupplierIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "supplier token required"})
	}

	orders, err := h.service.ListForSupplier(supplierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) setStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var ord Order
	if supplierID, err := auth.SupplierIDFromCtx(c); err == nil {
		ord, err = h.service.SetStatusAsSupplier(id, supplierID, payload.Status)
		return h.respondStatusChange(c, ord, err)
	}

	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	ord, err = h.service.SetStatusAsUser(id, userID, payload.Status)
	return h.respondStatusChange(c, ord, err)
}

func (h *Handler) respondStatusChange(c *fiber.Ctx, ord Order, err error) error {
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order status"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights for this order"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) setCompletionTime(c *fiber.Ctx) error {
	supplierID, err := auth.SupplierIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "supplier token required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(completionTimeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.SetCompletionTime(id, supplierID, payload.CompletionTime)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights for this order"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "completion time updated", "order": ord})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	if err := h.service.Delete(id, userID); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights to delete this order"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "order deleted"})
}
