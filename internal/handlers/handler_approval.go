package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finovo/erp-backend/internal/core/ports/services"
	"github.com/finovo/erp-backend/internal/dto"
	"github.com/finovo/erp-backend/internal/middleware"
)

// approvalHandler handles HTTP requests for workflows and approval requests.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{approvalService: as}
}

// registerApprovalRoutes registers routes related to the approval engine.
func registerApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approvalService)

	workflows := rg.Group("/workflows")
	{
		workflows.POST("", h.createWorkflow)
		workflows.GET("", h.listWorkflows)
		workflows.DELETE("/:id", h.deactivateWorkflow)
	}

	approvals := rg.Group("/approvals")
	{
		approvals.GET("/pending", h.listPending)
		approvals.GET("/:id", h.getRequest)
		approvals.POST("/:id/decision", h.decide)
	}
}

// createWorkflow godoc
// @Summary Create an approval workflow
// @Description Defines a threshold-gated chain of approver levels
// @Tags approvals
// @Accept json
// @Produce json
// @Param workflow body dto.CreateWorkflowRequest true "Workflow details"
// @Success 201 {object} dto.WorkflowResponse
// @Failure 400 {object} map[string]string "Invalid levels"
// @Security BearerAuth
// @Router /workflows [post]
func (h *approvalHandler) createWorkflow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	var req dto.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind workflow request", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "invalid request format", err.Error())
		return
	}

	workflow, err := h.approvalService.CreateWorkflow(c.Request.Context(), rc, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "workflow created", dto.ToWorkflowResponse(workflow))
}

// listWorkflows godoc
// @Summary List the company's workflows
// @Tags approvals
// @Produce json
// @Param limit query int false "Max rows"
// @Success 200 {array} dto.WorkflowResponse
// @Security BearerAuth
// @Router /workflows [get]
func (h *approvalHandler) listWorkflows(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	workflows, err := h.approvalService.ListWorkflows(c.Request.Context(), rc, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "workflows retrieved", dto.ToWorkflowResponses(workflows))
}

// deactivateWorkflow godoc
// @Summary Deactivate a workflow
// @Description New submissions stop matching; in-flight requests are unaffected
// @Tags approvals
// @Param id path string true "Workflow ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Workflow not found"
// @Security BearerAuth
// @Router /workflows/{id} [delete]
func (h *approvalHandler) deactivateWorkflow(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	if err := h.approvalService.DeactivateWorkflow(c.Request.Context(), rc, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "workflow deactivated", nil)
}

// listPending godoc
// @Summary List the caller's pending approval queue
// @Tags approvals
// @Produce json
// @Param limit query int false "Max rows"
// @Success 200 {array} dto.ApprovalRequestResponse
// @Security BearerAuth
// @Router /approvals/pending [get]
func (h *approvalHandler) listPending(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	requests, err := h.approvalService.ListPendingForApprover(c.Request.Context(), rc, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "pending requests retrieved", dto.ToApprovalRequestResponses(requests))
}

// getRequest godoc
// @Summary Get an approval request
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.ApprovalRequestResponse
// @Failure 404 {object} map[string]string "Request not found"
// @Security BearerAuth
// @Router /approvals/{id} [get]
func (h *approvalHandler) getRequest(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	request, err := h.approvalService.GetRequestByID(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "request retrieved", dto.ToApprovalRequestResponse(request))
}

// decide godoc
// @Summary Approve or reject a pending request
// @Description Only the currently assigned approver may decide
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body dto.ProcessApprovalRequest true "Decision"
// @Success 200 {object} dto.ApprovalRequestResponse
// @Failure 403 {object} map[string]string "Not the assigned approver"
// @Failure 409 {object} map[string]string "Request already decided"
// @Security BearerAuth
// @Router /approvals/{id}/decision [post]
func (h *approvalHandler) decide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	var req dto.ProcessApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("failed to bind decision request", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "invalid request format", err.Error())
		return
	}

	request, err := h.approvalService.ProcessApproval(c.Request.Context(), rc, c.Param("id"), req.Action, req.Comments)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "decision applied", dto.ToApprovalRequestResponse(request))
}
