package handler

import (
	"net/http"

	"github.com/emerpc1992/horale/internal/apierror"
	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	svc service.SaleService
}

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Create registers a sale: decrements stock atomically, snapshots staff and
// product data, and queues PDF receipt generation.
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSale(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancel voids a completed sale and restores its stock.
func (h *SalesHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.CancelSale(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get returns one sale with its items.
func (h *SalesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns all sales, newest first.
func (h *SalesHandler) List(c *gin.Context) {
	resp, err := h.svc.ListSales(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt renders the sale receipt as a PDF and streams it back.
// Generation is on demand so the endpoint works even when the
// background worker pool is disabled.
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, err := h.svc.GenerateReceipt(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=recibo-"+id.String()+".pdf")
	c.File(path)
}
