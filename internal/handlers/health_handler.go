package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/config"
)

// HealthHandler serves the health, readiness and liveness probes. None
// of them touch the item store.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates the handler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// RegisterRoutes mounts the probe routes on the given router.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
	router.Get("/live", h.Live)
}

// Health reports service status along with static app metadata and the
// current server time.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"app_name":    h.cfg.AppName,
		"version":     h.cfg.AppVersion,
		"environment": h.cfg.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready reports readiness. Dependency checks (database, broker) can be
// added here when the service grows real startup dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ready"})
}

// Live reports liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}
