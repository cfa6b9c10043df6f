package handler

import (
	"net/http"

	"github.com/emerpc1992/horale/internal/apierror"
	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreditsHandler struct{ svc service.CreditService }

func NewCreditsHandler(svc service.CreditService) *CreditsHandler {
	return &CreditsHandler{svc: svc}
}

// Create opens a credit for a product. Stock is not touched: the product
// leaves inventory only when the credit is converted into a sale.
func (h *CreditsHandler) Create(c *gin.Context) {
	var req dto.CreateCreditRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCredit(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AddPayment registers an abono against the credit's remaining balance.
func (h *CreditsHandler) AddPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AddPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddPayment(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreditsHandler) List(c *gin.Context) {
	status := c.Query("status")
	resp, err := h.svc.ListCredits(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
