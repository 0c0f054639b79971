package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finovo/erp-backend/internal/core/domain"
	portssvc "github.com/finovo/erp-backend/internal/core/ports/services"
	"github.com/finovo/erp-backend/internal/dto"
	"github.com/finovo/erp-backend/internal/middleware"
)

// documentHandler handles HTTP requests for documents and payments.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	postingService  portssvc.PostingSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, ps portssvc.PostingSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds, postingService: ps}
}

// registerDocumentRoutes registers routes related to documents and payments.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newDocumentHandler(documentService, postingService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("/:id", h.getDocument)
		documents.GET("", h.listDocuments)
		documents.POST("/:id/submit", h.submitDocument)
		documents.POST("/:id/post", h.postDocument)
		documents.POST("/:id/cancel", h.cancelDocument)
	}

	rg.POST("/payments", h.createPayment)
}

// createDocument godoc
// @Summary Create a draft document
// @Description Creates a bill, invoice, expense, asset purchase or tax transaction
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input or amounts"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind document request", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "invalid request format", err.Error())
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), rc, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "document created", dto.ToDocumentResponse(doc))
}

// getDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "document retrieved", dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List the company's documents
// @Tags documents
// @Produce json
// @Param kind query string false "Filter by kind"
// @Param limit query int false "Max rows"
// @Success 200 {array} dto.DocumentResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	kind := domain.DocumentKind(c.Query("kind"))

	docs, err := h.documentService.ListDocuments(c.Request.Context(), rc, kind, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "documents retrieved", dto.ToDocumentResponses(docs))
}

// submitResponse pairs the updated document with the created request, when
// one was created.
type submitResponse struct {
	Document dto.DocumentResponse         `json:"document"`
	Request  *dto.ApprovalRequestResponse `json:"request,omitempty"`
}

// submitDocument godoc
// @Summary Submit a draft document for approval
// @Description Routes the document into the matching workflow, or auto-approves it when none matches
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 409 {object} map[string]string "Document not in draft"
// @Security BearerAuth
// @Router /documents/{id}/submit [post]
func (h *documentHandler) submitDocument(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	doc, request, err := h.documentService.SubmitForApproval(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := submitResponse{Document: dto.ToDocumentResponse(doc)}
	message := "document auto-approved"
	if request != nil {
		r := dto.ToApprovalRequestResponse(request)
		resp.Request = &r
		message = "document submitted for approval"
	}
	respondSuccess(c, http.StatusOK, message, resp)
}

// postDocument godoc
// @Summary Post a document to the ledger
// @Description Creates the balanced journal entry and applies account balance deltas
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Required account missing"
// @Failure 409 {object} map[string]string "Document not postable"
// @Security BearerAuth
// @Router /documents/{id}/post [post]
func (h *documentHandler) postDocument(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	doc, err := h.documentService.PostDocument(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "document posted", dto.ToDocumentResponse(doc))
}

// cancelDocument godoc
// @Summary Cancel a document
// @Description Cancels a draft/approved document or withdraws its pending approval
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 409 {object} map[string]string "Document cannot be cancelled"
// @Security BearerAuth
// @Router /documents/{id}/cancel [post]
func (h *documentHandler) cancelDocument(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	doc, err := h.documentService.CancelDocument(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "document cancelled", dto.ToDocumentResponse(doc))
}

// createPayment godoc
// @Summary Record a payment against a posted bill or invoice
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 409 {object} map[string]string "Document not payable"
// @Security BearerAuth
// @Router /payments [post]
func (h *documentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind payment request", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "invalid request format", err.Error())
		return
	}

	payment, err := h.postingService.PostPayment(c.Request.Context(), rc, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "payment posted", dto.ToPaymentResponse(payment))
}
