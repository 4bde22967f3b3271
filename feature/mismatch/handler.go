package mismatch

import (
	"errors"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the stored mismatch logs.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes registers the mismatch routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/mismatches")
	group.Get("/", h.HandleListLogs)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/:id", h.HandleGetLog)
}

// HandleListLogs lists reconciliation logs.
// @Summary List mismatch logs
// @Description List reconciliation events, newest first.
// @Tags mismatches
// @Produce json
// @Param status query string false "Status filter (Success, Error)"
// @Param type query string false "Compared document type (PO, Contract)"
// @Param invoice query string false "Invoice number"
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {array} models.Log
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /mismatches [get]
func (h *Handler) HandleListLogs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	filter := ListFilter{
		Status:        c.Query("status"),
		InvoiceNumber: c.Query("invoice"),
		Limit:         c.QueryInt("limit", DefaultListLimit),
	}
	if t := c.Query("type"); t != "" {
		doc, err := documents.ParseDocType(t)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		filter.DocType = string(doc)
	}

	logs, err := h.repo.ListLogs(c.Context(), filter)
	if err != nil {
		l.Error("Listing mismatch logs failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(logs)
}

// HandleGetLog returns one log with its items and fields.
// @Summary Get mismatch log
// @Description Get a reconciliation event with every stored mismatch field.
// @Tags mismatches
// @Produce json
// @Param id path int true "Log ID"
// @Success 200 {object} models.Log
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /mismatches/{id} [get]
func (h *Handler) HandleGetLog(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid log id"})
	}

	log, err := h.repo.GetLog(c.Context(), uint(id))
	if errors.Is(err, ErrLogNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Loading mismatch log failed", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(log)
}

// HandleSchemaCheck compares the live tables with the models.
// @Summary Check mismatch store schema
// @Tags mismatches
// @Produce json
// @Success 200 {object} SchemaReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /mismatches/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.repo.CheckSchema()
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
