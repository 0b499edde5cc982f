package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/cash"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	ucCash "github.com/BruksfildServices01/barbershop-booking/internal/usecase/cash"
)

type CashHandler struct {
	register *ucCash.Register
}

func NewCashHandler(register *ucCash.Register) *CashHandler {
	return &CashHandler{register: register}
}

func (h *CashHandler) Create(c *gin.Context) {
	var in domain.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c)
		return
	}

	tx, err := h.register.Create(c.Request.Context(), actorID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, tx)
}

func (h *CashHandler) List(c *gin.Context) {
	txs, err := h.register.List(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, txs)
}

func (h *CashHandler) Summary(c *gin.Context) {
	s, err := h.register.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *CashHandler) QuickConcepts(c *gin.Context) {
	httpresp.OK(c, h.register.QuickConcepts())
}
