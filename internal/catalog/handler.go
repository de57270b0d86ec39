package catalog

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler delegates catalog operations to the catalog service. Browsing the
// merch lineup never requires a session.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.list)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getByID)
}

func (h *Handler) list(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func (h *Handler) getByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(product)
}
