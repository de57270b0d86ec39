package session

import (
	"github.com/gofiber/fiber/v2"
)

// Handler issues shopper sessions. Creating one is public; everything else
// in the checkout API requires the returned token.
type Handler struct {
	manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{manager: m}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/session", h.createSession)
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	sessionID, token, err := h.manager.Create()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create session"})
	}

	return c.JSON(fiber.Map{
		"sessionId": sessionID,
		"token":     token,
	})
}
