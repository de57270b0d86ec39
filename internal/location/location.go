package location

import "github.com/gofiber/fiber/v2"

// Coordinates is the pair the map widget consumes.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Handler serves the venue position and the key the frontend map embed
// needs. The widget itself is presentation; only this contract lives here.
type Handler struct {
	venue  Coordinates
	apiKey string
}

func NewHandler(venue Coordinates, apiKey string) *Handler {
	return &Handler{venue: venue, apiKey: apiKey}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/venue/location", h.getLocation)
}

func (h *Handler) getLocation(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"center":     h.venue,
		"zoom":       9,
		"mapsApiKey": h.apiKey,
	})
}
