package handler

import (
	"net/http"

	"github.com/emerpc1992/horale/internal/apierror"
	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExpensesHandler struct{ svc service.ExpenseService }

func NewExpensesHandler(svc service.ExpenseService) *ExpensesHandler {
	return &ExpensesHandler{svc: svc}
}

func (h *ExpensesHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpensesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExpensesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
