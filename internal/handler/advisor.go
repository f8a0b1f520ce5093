package handler

import (
	"errors"
	"net/http"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/apierror"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/service"

	"github.com/gin-gonic/gin"
)

type AdvisorHandler struct{ svc service.AdvisorService }

func NewAdvisorHandler(svc service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{svc: svc}
}

// Ask handles POST /v1/advisor — a free-form consultation question answered
// against the current financial snapshot.
func (h *AdvisorHandler) Ask(c *gin.Context) {
	var req dto.AdvisorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Ask(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrAdvisorUnavailable) {
			c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
