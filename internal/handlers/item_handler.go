package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/models"
	"katalog/internal/services"
)

// ItemHandler exposes the item collection over HTTP.
type ItemHandler struct {
	service *services.ItemService
}

// NewItemHandler creates the handler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes mounts the item routes on the given router group. The
// stats route is registered before the :id route so "stats" is never
// captured as an id.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	items := router.Group("/items")
	items.Post("/", h.CreateItem)
	items.Get("/", h.ListItems)
	items.Get("/stats/count", h.CountItems)
	items.Get("/:id", h.GetItem)
	items.Patch("/:id", h.UpdateItem)
	items.Delete("/:id", h.DeleteItem)
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var payload models.ItemCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	item, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListItems handles GET /items with skip/limit/available_only query
// parameters.
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	availableOnly := c.QueryBool("available_only", false)

	if skip < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "skip must be greater than or equal to 0",
		})
	}
	if limit < 1 || limit > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be between 1 and 100",
		})
	}

	items, err := h.service.List(c.Context(), skip, limit, availableOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// GetItem handles GET /items/:id.
func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// UpdateItem handles PATCH /items/:id. Only fields present in the body
// are applied.
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	var payload models.ItemUpdate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	item, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// DeleteItem handles DELETE /items/:id.
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CountItems handles GET /items/stats/count.
func (h *ItemHandler) CountItems(c *fiber.Ctx) error {
	availableOnly := c.QueryBool("available_only", false)
	count, err := h.service.Count(c.Context(), availableOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// respondError translates domain errors into transport status codes.
// The service never swallows these, so the mapping lives here alone.
func respondError(c *fiber.Ctx, err error) error {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFound.Error(),
		})
	}
	var invalid *models.ValidationError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": invalid.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
