package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finovo/erp-backend/internal/core/ports/services"
	"github.com/finovo/erp-backend/internal/dto"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to the journal.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.GET("/:id", h.getEntry)
		entries.GET("", h.listEntries)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "entry retrieved", dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List the company's journal entries
// @Tags journal
// @Produce json
// @Param limit query int false "Max rows"
// @Success 200 {array} dto.JournalEntryResponse
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.journalService.ListEntries(c.Request.Context(), rc, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "entries retrieved", dto.ToJournalEntryResponses(entries))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates a balancing entry with swapped sides and cancels the original
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Entry not reversible"
// @Security BearerAuth
// @Router /journal-entries/{id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	rc, ok := mustRequestContext(c)
	if !ok {
		return
	}

	reversing, err := h.journalService.ReverseEntry(c.Request.Context(), rc, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "entry reversed", dto.ToJournalEntryResponse(reversing))
}
