package handler

import (
	"hardwarehub-be/internal/report"
	"hardwarehub-be/internal/response"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SalesReport(c *gin.Context) {
	var q report.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rep, err := h.reports.Sales(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rep)
}

func (h *Handler) ServiceReport(c *gin.Context) {
	var q report.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rep, err := h.reports.Services(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rep)
}

func (h *Handler) DashboardReport(c *gin.Context) {
	var q report.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rep, err := h.reports.Dashboard(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rep)
}
