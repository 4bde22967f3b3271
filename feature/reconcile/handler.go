package reconcile

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"invoice-reconciler/core/documents"
	"invoice-reconciler/core/logger"
	"invoice-reconciler/core/reconcile"
	docstore "invoice-reconciler/feature/documents"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHeader overrides the acting user recorded for a request.
const UserHeader = "X-User-ID"

// Request carries the parsed documents of one reconciliation.
type Request struct {
	Invoice  json.RawMessage `json:"invoice" swaggertype:"object"`
	PO       json.RawMessage `json:"po,omitempty" swaggertype:"object"`
	Contract json.RawMessage `json:"contract,omitempty" swaggertype:"object"`
}

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/reconcile", h.HandleReconcile)
	app.Post("/reconcile/stored", h.HandleReconcileStored)
	app.Get("/schemas/:type", h.HandleSchema)
}

// HandleReconcile reconciles an invoice against the documents in the body.
// @Summary Reconcile invoice
// @Description Validate an invoice against its purchase order or contract and record the result.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Acting user"
// @Param request body Request true "Parsed documents"
// @Success 200 {object} reconcile.Outcome
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if isAbsent(req.Invoice) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invoice is required"})
	}

	inv, err := documents.DecodeInvoice(bytes.NewReader(req.Invoice))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var po *documents.PO
	if !isAbsent(req.PO) {
		if po, err = documents.DecodePO(bytes.NewReader(req.PO)); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	var contract *documents.Contract
	if !isAbsent(req.Contract) {
		if contract, err = documents.DecodeContract(bytes.NewReader(req.Contract)); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	outcome, err := h.service.Reconcile(c.Context(), c.Get(UserHeader), inv, po, contract)
	return h.respond(c, outcome, err)
}

// HandleReconcileStored reconciles documents already held in object storage.
// @Summary Reconcile stored invoice
// @Description Load the named documents from storage, reconcile them and write the report artifact.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Acting user"
// @Param request body StoredRequest true "Document names"
// @Success 200 {object} reconcile.Outcome
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Service Unavailable"
// @Router /reconcile/stored [post]
func (h *Handler) HandleReconcileStored(c *fiber.Ctx) error {
	var req StoredRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Invoice) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invoice is required"})
	}

	outcome, err := h.service.ReconcileStored(c.Context(), c.Get(UserHeader), req)
	return h.respond(c, outcome, err)
}

// HandleSchema returns the JSON Schema of a document type.
// @Summary Document schema
// @Tags reconcile
// @Produce json
// @Param type path string true "Document type (invoice, po, contract)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /schemas/{type} [get]
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	doc, err := documents.ParseDocType(c.Params("type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	schema, err := documents.Schema(doc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(schema)
}

func (h *Handler) respond(c *fiber.Ctx, outcome *reconcile.Outcome, err error) error {
	if err == nil {
		return c.JSON(outcome)
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, documents.ErrInvalidDocument),
		errors.Is(err, reconcile.ErrMalformedRecord),
		errors.Is(err, docstore.ErrInvalidName):
		status = fiber.StatusBadRequest
	case errors.Is(err, docstore.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrNoStore):
		status = fiber.StatusServiceUnavailable
	default:
		logger.WithRayID(h.logger, c).Error("Reconciliation failed", zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
