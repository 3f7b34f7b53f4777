package equipment

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ame-market/equipment-market-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/equipments", h.list)
	app.Get("/api/equipments/supplier/:supplierId", h.listBySupplier)
	app.Get("/api/equipments/:id", h.getByID)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/equipments", h.create)
	app.Put("/api/equipments/:id", h.update)
	app.Delete("/api/equipments/:id", h.delete)
}

type equipmentRequest struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	Description  string `json:"description"`
	Price        int    `json:"price"`
	SerialNumber string `json:"serialNumber"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	items, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}

func (h *Handler) listBySupplier(c *fiber.Ctx) error {
	supplierID, err := strconv.Atoi(c.Params("supplierId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid supplier id"})
	}

	items, err := h.service.ListBySupplier(supplierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}

func (h *Handler) getByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	item, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "equipment not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(item)
}

func (h *Handler) create(c *fiber.Ctx) error {
	supplierID, err := auth.SupplierIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "supplier token required"})
	}

	payload := new(equipmentRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	item := Equipment{
		Name:         payload.Name,
		Model:        payload.Model,
		Description:  payload.Description,
		Price:        payload.Price,
		SerialNumber: payload.SerialNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if path, err := h.savePhoto(c); err == nil && path != "" {
		item.Photo = &path
	}

	created, err := h.service.Create(supplierID, item)
	if err != nil {
		switch err {
		case ErrInvalid:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid equipment payload"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	supplierID, err := auth.SupplierIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "supplier token required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(equipmentRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	item := Equipment{
		Name:         payload.Name,
		Model:        payload.Model,
		Description:  payload.Description,
		Price:        payload.Price,
		SerialNumber: payload.SerialNumber,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if path, err := h.savePhoto(c); err == nil && path != "" {
		item.Photo = &path
	}

	updated, err := h.service.Update(id, supplierID, item)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "equipment not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights to update this equipment"})
		case ErrInvalid:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid equipment payload"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	supplierID, err := auth.SupplierIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "supplier token required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id, supplierID); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "equipment not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights to delete this equipment"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "equipment deleted"})
}

// savePhoto stores an optional multipart photo and returns its public path.
func (h *Handler) savePhoto(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("photo")
	if err != nil || file == nil {
		return "", err
	}
	path := "/uploads/equipment/" + uuid.NewString() + "_" + file.Filename
	if err := os.MkdirAll("./uploads/equipment", 0755); err != nil {
		return "", err
	}
	if err := c.SaveFile(file, "."+path); err != nil {
		return "", err
	}
	return path, nil
}
