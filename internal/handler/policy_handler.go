package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimlens/internal/domain"
	"claimlens/internal/service"
)

// PolicyHandler handles the public policy catalog and admin policy management.
type PolicyHandler struct {
	policies *service.PolicyService
}

func NewPolicyHandler(policies *service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policies: policies}
}

// Catalog handles GET /api/v1/policy.
func (h *PolicyHandler) Catalog(c *gin.Context) {
	catalog, err := h.policies.Catalog(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, catalog)
}

// Insurers handles GET /api/v1/insurers.
func (h *PolicyHandler) Insurers(c *gin.Context) {
	insurers, err := h.policies.Insurers(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, insurers)
}

// Plans handles GET /api/v1/plans?insurer=X.
func (h *PolicyHandler) Plans(c *gin.Context) {
	insurer := c.Query("insurer")
	if insurer == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "insurer query parameter is required")
		return
	}
	plans, err := h.policies.Plans(c.Request.Context(), insurer)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, plans)
}

// Upsert handles POST /api/v1/admin/policies (JWT protected).
func (h *PolicyHandler) Upsert(c *gin.Context) {
	var req struct {
		Insurer              string   `json:"insurer" binding:"required"`
		Plan                 string   `json:"plan" binding:"required"`
		CoveragePercent      float64  `json:"coverage_percent" binding:"required"`
		Deductible           float64  `json:"deductible"`
		AnnualLimit          float64  `json:"annual_limit" binding:"required"`
		RoomRentLimit        *float64 `json:"room_rent_limit"`
		CoPayPercent         float64  `json:"co_pay_percent"`
		NonPayableKeywords   []string `json:"non_payable_keywords"`
		ProcessingDescriptor string   `json:"processing_descriptor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "insurer, plan, coverage_percent, and annual_limit are required")
		return
	}

	rule := &domain.PolicyRule{
		Insurer:              req.Insurer,
		Plan:                 req.Plan,
		CoveragePercent:      req.CoveragePercent,
		Deductible:           req.Deductible,
		AnnualLimit:          req.AnnualLimit,
		RoomRentLimit:        req.RoomRentLimit,
		CoPayPercent:         req.CoPayPercent,
		NonPayableKeywords:   req.NonPayableKeywords,
		ProcessingDescriptor: req.ProcessingDescriptor,
	}
	saved, err := h.policies.Upsert(c.Request.Context(), rule)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, saved)
}

// Delete handles DELETE /api/v1/admin/policies/:id (JWT protected).
func (h *PolicyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.policies.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
