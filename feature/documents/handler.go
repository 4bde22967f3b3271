package documents

import (
	"errors"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the stored documents over HTTP.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the document routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/documents")
	group.Get("/layout", h.HandleLayout)
	group.Get("/:type", h.HandleList)
	group.Get("/:type/:name", h.HandleGet)
	group.Put("/:type/:name", h.HandlePut)
	group.Delete("/:type/:name", h.HandleDelete)
}

// HandleLayout reports folders missing from the bucket.
// @Summary Check bucket layout
// @Tags documents
// @Produce json
// @Success 200 {object} LayoutReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/layout [get]
func (h *Handler) HandleLayout(c *fiber.Ctx) error {
	report, err := h.store.CheckLayout(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Layout check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleList lists stored document names of one type.
// @Summary List stored documents
// @Tags documents
// @Produce json
// @Param type path string true "Document type (invoice, po, contract)"
// @Success 200 {array} string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/{type} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	doc, err := documents.ParseDocType(c.Params("type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	names, err := h.store.List(c.Context(), doc)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Listing documents failed", zap.String("type", string(doc)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(names)
}

// HandleGet returns a stored document as JSON.
// @Summary Get stored document
// @Tags documents
// @Produce json
// @Param type path string true "Document type (invoice, po, contract)"
// @Param name path string true "Document name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/{type}/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	doc, err := documents.ParseDocType(c.Params("type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.store.Get(c.Context(), doc, c.Params("name"))
	if err != nil {
		return h.fail(c, "Loading document failed", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandlePut validates and stores a document.
// @Summary Store document
// @Description Validate a parsed document and write it to object storage.
// @Tags documents
// @Accept json
// @Produce json
// @Param type path string true "Document type (invoice, po, contract)"
// @Param name path string true "Document name"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/{type}/{name} [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	doc, err := documents.ParseDocType(c.Params("type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	name := c.Params("name")
	if err := h.store.Put(c.Context(), doc, name, c.Body()); err != nil {
		return h.fail(c, "Storing document failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": h.store.Key(doc, name)})
}

// HandleDelete removes a stored document.
// @Summary Delete stored document
// @Tags documents
// @Param type path string true "Document type (invoice, po, contract)"
// @Param name path string true "Document name"
// @Success 204
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /documents/{type}/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	doc, err := documents.ParseDocType(c.Params("type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.store.Delete(c.Context(), doc, c.Params("name")); err != nil {
		return h.fail(c, "Deleting document failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidName), errors.Is(err, documents.ErrInvalidDocument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	logger.WithRayID(h.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
