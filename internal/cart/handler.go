package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ame-market/equipment-market-backend/internal/auth"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/carts", h.getCart)
	app.Post("/api/carts/add", h.addItem)
	app.Put("/api/carts/update/:equipmentId", h.updateQuantity)
	app.Delete("/api/carts/remove/:equipmentId", h.removeItem)
	app.Delete("/api/carts/clear", h.clear)
}

type addItemRequest struct {
	EquipmentID int `json:"equipmentId"`
	Quantity    int `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":     crt.ID,
		"userId": crt.UserID,
		"items":  crt.Items,
		"total":  crt.Total(),
	})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	item, err := h.service.AddItem(userID, payload.EquipmentID, payload.Quantity)
	if err != nil {
		switch err {
		case ErrQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be at least 1"})
		case ErrEquipmentNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "equipment not found"})
		case ErrSupplierConflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "cart may only contain items from one supplier"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	equipmentID, err := strconv.Atoi(c.Params("equipmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid equipment id"})
	}

	payload := new(updateQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	item, err := h.service.UpdateQuantity(userID, equipmentID, payload.Quantity)
	if err != nil {
		switch err {
		case ErrQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "quantity must be at least 1"})
		case ErrItemNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart item not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(item)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	equipmentID, err := strconv.Atoi(c.Params("equipmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid equipment id"})
	}

	if err := h.service.RemoveItem(userID, equipmentID); err != nil {
		switch err {
		case ErrItemNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart item not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "item removed from cart"})
}

func (h *Handler) clear(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Clear(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "cart cleared"})
}
