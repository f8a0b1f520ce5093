package handler

import (
	"net/http"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/apierror"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Register handles POST /v1/sales — the POS checkout.
func (h *SalesHandler) Register(c *gin.Context) {
	var req dto.RegisterSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegisterSale(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
