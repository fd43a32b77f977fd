package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/transitdesk/lostfound-backend/internal/domain/valueobject"
	"github.com/transitdesk/lostfound-backend/internal/dto"
	"github.com/transitdesk/lostfound-backend/internal/http/handlers/common"
	"github.com/transitdesk/lostfound-backend/internal/http/middleware"
	"github.com/transitdesk/lostfound-backend/internal/http/response"
	"github.com/transitdesk/lostfound-backend/internal/service"
)

// ClaimHandler обслуживает маршруты заявок.
type ClaimHandler struct {
	claims *service.ClaimService
}

// NewClaimHandler создаёт новый хэндлер.
func NewClaimHandler(claims *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// ListClaims обрабатывает GET /claims.
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	claims, err := h.claims.ListClaims(c.Request.Context(), common.ParseStatuses(c), common.GetPage(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, claims)
}

// GetClaim обрабатывает GET /claims/:id.
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	claim, err := h.claims.GetClaim(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, claim)
}

// RequestClaim обрабатывает POST /claims/request/:id.
func (h *ClaimHandler) RequestClaim(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	claim, err := h.claims.RequestClaim(c.Request.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, claim)
}

// ResolveClaim обрабатывает PUT /claims/:id.
func (h *ClaimHandler) ResolveClaim(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ResolveClaimRequest
	if err := common.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	decision, err := valueobject.DecisionFromStatus(req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	claim, err := h.claims.ResolveClaim(c.Request.Context(), middleware.CurrentIdentity(c), id, decision)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, claim)
}
