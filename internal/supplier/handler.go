package supplier

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/ame-market/equipment-market-backend/internal/auth"
	"github.com/ame-market/equipment-market-backend/internal/config"
	"github.com/ame-market/equipment-market-backend/internal/equipment"
	"github.com/ame-market/equipment-market-backend/internal/review"
)

// Handler serves supplier accounts and the public catalog views. The
// detail endpoint composes the supplier's equipment and reviews from
// their services.
type Handler struct {
	service   *Service
	equipment equipment.ServiceInterface
	reviews   review.ServiceInterface
}

func NewHandler(s *Service, eq equipment.ServiceInterface, rev review.ServiceInterface) *Handler {
	return &Handler{service: s, equipment: eq, reviews: rev}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/supplier/registration", h.register)
	app.Post("/api/supplier/login", h.login)
	app.Get("/api/supplier", h.list)
	app.Get("/api/supplier/:id<[0-9]+>", h.getByID)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/supplier/auth", h.authCheck)
	app.Put("/api/supplier/:id<[0-9]+>", h.update)
	app.Delete("/api/supplier/:id<[0-9]+>", h.delete)
}

type registerRequest struct {
	CompanyName        string  `json:"companyName"`
	ContactPerson      string  `json:"contactPerson"`
	RegistrationNumber string  `json:"registrationNumber"`
	Phone              string  `json:"phone"`
	Description        *string `json:"description,omitempty"`
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	Address            string  `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.isMissingRequiredFields() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing required fields"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	sup := Supplier{
		CompanyName:        payload.CompanyName,
		ContactPerson:      payload.ContactPerson,
		RegistrationNumber: payload.RegistrationNumber,
		Phone:              payload.Phone,
		Description:        payload.Description,
		Email:              payload.Email,
		Password:           payload.Password,
		Address:            payload.Address,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if path, err := h.saveLogo(c); err == nil && path != "" {
		sup.Logo = &path
	}

	created, err := h.service.Register(sup)
	if err != nil {
		if err == ErrEmailExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(sanitizeSupplier(created))
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	sup, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid email or password"})
	}

	signed, err := signToken(sup.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token": signed,
		"user":  sanitizeSupplier(sup),
	})
}

func (h *Handler) authCheck(c *fiber.Ctx) error {
	supplierID, err := auth.SupplierIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	sup, err := h.service.GetByID(supplierID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "supplier not found"})
	}

	return c.JSON(sanitizeSupplier(sup))
}

// list supports companyName/address substring filters and a minimum
// average rating, all optional.
func (h *Handler) list(c *fiber.Ctx) error {
	filter := ListFilter{
		CompanyName: c.Query("companyName"),
		Address:     c.Query("address"),
	}
	if v := c.Query("averageRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.AverageRating = f
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	suppliers, total, err := h.service.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	out := make([]Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, sanitizeSupplier(s))
	}

	return c.JSON(fiber.Map{
		"suppliers": out,
		"total":     total,
	})
}

func (h *Handler) getByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid supplier id"})
	}

	sup, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "supplier not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	items, err := h.equipment.ListBySupplier(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	reviews, err := h.reviews.ListBySupplier(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"supplier":  sanitizeSupplier(sup),
		"equipment": items,
		"reviews":   reviews,
	})
}

func (h *Handler) update(c *fiber.Ctx) error {
	supplierID, err := auth.SupplierIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "supplier token required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid supplier id"})
	}
	if id != supplierID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights to update this supplier"})
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "supplier not found"})
	}

	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.CompanyName != "" {
		existing.CompanyName = payload.CompanyName
	}
	if payload.ContactPerson != "" {
		existing.ContactPerson = payload.ContactPerson
	}
	if payload.RegistrationNumber != "" {
		existing.RegistrationNumber = payload.RegistrationNumber
	}
	if payload.Phone != "" {
		existing.Phone = payload.Phone
	}
	if payload.Description != nil {
		existing.Description = payload.Description
	}
	if payload.Email != "" {
		existing.Email = payload.Email
	}
	if payload.Address != "" {
		existing.Address = payload.Address
	}
	if payload.Password != "" {
		existing.Password = payload.Password
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if path, err := h.saveLogo(c); err == nil && path != "" {
		existing.Logo = &path
	}

	updated, err := h.service.Update(id, existing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(sanitizeSupplier(updated))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	supplierID, err := auth.SupplierIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "supplier token required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid supplier id"})
	}
	if id != supplierID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "no rights to delete this supplier"})
	}

	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "supplier not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "supplier deleted"})
}

func (r registerRequest) isMissingRequiredFields() bool {
	return r.CompanyName == "" || r.ContactPerson == "" || r.RegistrationNumber == "" || r.Phone == "" || r.Email == "" || r.Password == "" || r.Address == ""
}

func (h *Handler) saveLogo(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("logo")
	if err != nil || file == nil {
		return "", err
	}
	path := "/uploads/supplier/" + uuid.NewString() + "_" + file.Filename
	if err := os.MkdirAll("./uploads/supplier", 0755); err != nil {
		return "", err
	}
	if err := c.SaveFile(file, "."+path); err != nil {
		return "", err
	}
	return path, nil
}

func signToken(supplierID int) (string, error) {
	claims := jwt.MapClaims{
		"supplier_id": supplierID,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Load().JWTSecret))
}

func sanitizeSupplier(s Supplier) Supplier {
	s.Password = ""
	return s
}
