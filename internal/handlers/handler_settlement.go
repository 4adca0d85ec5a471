package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hisaab-app/hisaab-backend/internal/core/ports/services"
	"github.com/hisaab-app/hisaab-backend/internal/dto"
)

// settlementHandler exposes derived balances and settlements for a group.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers balance and settlement routes.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	groups := rg.Group("/groups/:id")
	{
		groups.GET("/balances", h.getBalances)
		groups.GET("/settlements/suggestions", h.suggestSettlements)
		groups.POST("/settlements", h.recordSettlement)
		groups.GET("/settlements", h.listSettlements)
	}
}

// getBalances godoc
// @Summary Get group balances
// @Description Recomputes every member's net balance from the group's expenses.
// @Tags settlements
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupBalancesResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/balances [get]
func (h *settlementHandler) getBalances(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	groupID := c.Param("id")

	balances, err := h.settlementService.GetGroupBalances(c.Request.Context(), groupID, userID)
	if err != nil {
		respondWithError(c, err, "Failed to compute balances")
		return
	}

	c.JSON(http.StatusOK, dto.GroupBalancesResponse{
		GroupID:  groupID,
		Balances: dto.ToBalanceResponses(balances),
	})
}

// suggestSettlements godoc
// @Summary Suggest settlements
// @Description Reduces the group's balances to a minimal list of transfers. Nothing is persisted.
// @Tags settlements
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.ListSettlementsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/settlements/suggestions [get]
func (h *settlementHandler) suggestSettlements(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	suggestions, err := h.settlementService.SuggestSettlements(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to suggest settlements")
		return
	}

	c.JSON(http.StatusOK, dto.ListSettlementsResponse{Settlements: dto.ToSettlementResponses(suggestions)})
}

// recordSettlement godoc
// @Summary Record a settlement
// @Description Records a payment from the authenticated user to another member and marks covered shares paid.
// @Tags settlements
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param settlement body dto.RecordSettlementRequest true "Settlement details"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/settlements [post]
func (h *settlementHandler) recordSettlement(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.RecordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.RecordSettlement(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record settlement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSettlementResponse(*settlement))
}

// listSettlements godoc
// @Summary List settlements
// @Description Retrieves the group's recorded settlements, newest first.
// @Tags settlements
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.ListSettlementsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/settlements [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	settlements, err := h.settlementService.ListSettlements(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list settlements")
		return
	}

	c.JSON(http.StatusOK, dto.ListSettlementsResponse{Settlements: dto.ToSettlementResponses(settlements)})
}
