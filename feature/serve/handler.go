package serve

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nms-extractor/core/logger"
)

// Handler handles HTTP requests for catalogs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalogs")
	group.Get("/", h.HandleListCatalogs)
	group.Get("/:name", h.HandleGetCatalog)
	app.Get("/localization", h.HandleGetLocalization)
}

// HandleListCatalogs lists every expected catalog and its on-disk state.
func (h *Handler) HandleListCatalogs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	infos, err := h.service.ListCatalogs()
	if err != nil {
		l.Error("catalog listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(infos)
}

// HandleGetCatalog returns one catalog's JSON document.
func (h *Handler) HandleGetCatalog(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.GetCatalog(name)
	switch {
	case errors.Is(err, ErrUnknownCatalog):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown catalog: " + name,
		})
	case errors.Is(err, os.ErrNotExist):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "catalog not generated yet: " + name,
		})
	case err != nil:
		l.Error("catalog read failed", zap.String("catalog", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleGetLocalization returns the flat localization table.
func (h *Handler) HandleGetLocalization(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.GetLocalization()
	if errors.Is(err, os.ErrNotExist) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "localization table not generated yet",
		})
	}
	if err != nil {
		l.Error("localization read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
