package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimlens/internal/estimate"
)

// UtilsHandler exposes the standalone bill-text parsing helpers.
type UtilsHandler struct{}

func NewUtilsHandler() *UtilsHandler {
	return &UtilsHandler{}
}

// ParseTotal handles POST /api/v1/utils/parse-total.
func (h *UtilsHandler) ParseTotal(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	total, found := estimate.ParseTotalAmount(req.Text)
	RespondOK(c, gin.H{
		"found":     found,
		"total":     total,
		"formatted": estimate.FormatRupees(total),
	})
}

// SumNonPayables handles POST /api/v1/utils/sum-non-payables.
func (h *UtilsHandler) SumNonPayables(c *gin.Context) {
	var req struct {
		Text     string   `json:"text" binding:"required"`
		Keywords []string `json:"keywords" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text and keywords are required")
		return
	}

	sum, hits := estimate.SumNonPayables(req.Text, req.Keywords)
	RespondOK(c, gin.H{
		"sum":       sum,
		"formatted": estimate.FormatRupees(sum),
		"hits":      hits,
	})
}
