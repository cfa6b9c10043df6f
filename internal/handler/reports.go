package handler

import (
	"net/http"

	"github.com/emerpc1992/horale/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// FinancialSummary returns the full profit waterfall over completed sales:
// gross sales, cost of sales, discounts, expenses, commissions and the
// resulting net profit, plus per-category and per-method breakdowns.
func (h *ReportsHandler) FinancialSummary(c *gin.Context) {
	resp, err := h.svc.GetFinancialSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
