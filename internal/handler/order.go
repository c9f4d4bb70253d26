package handler

import (
	"errors"
	"io"
	"time"

	"hardwarehub-be/internal/order"
	"hardwarehub-be/internal/response"
	"hardwarehub-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListOrders(c *gin.Context) {
	f := order.ListFilter{
		Status: order.Status(c.Query("status")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	if raw := c.Query("userId"); raw != "" {
		id, err := utils.ToUint(raw)
		if err != nil {
			response.BadRequest(c, "userId must be a number")
			return
		}
		f.UserID = &id
	}
	if raw := c.Query("startDate"); raw != "" {
		from, _, err := utils.ParseDate(raw)
		if err != nil {
			response.BadRequest(c, "startDate must be YYYY-MM-DD or RFC3339")
			return
		}
		f.From = &from
	}
	if raw := c.Query("endDate"); raw != "" {
		to, dateOnly, err := utils.ParseDate(raw)
		if err != nil {
			response.BadRequest(c, "endDate must be YYYY-MM-DD or RFC3339")
			return
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.To = &to
	}

	userID, isAdmin := caller(c)
	res, err := h.orders.List(c.Request.Context(), userID, isAdmin, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var in order.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID, _ := caller(c)
	o, err := h.orders.Create(c.Request.Context(), userID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, o)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, isAdmin := caller(c)
	o, err := h.orders.Get(c.Request.Context(), userID, isAdmin, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, o)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var in order.UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, o)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	// The body is optional.
	var in order.CancelInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, err.Error())
		return
	}

	userID, isAdmin := caller(c)
	o, err := h.orders.Cancel(c.Request.Context(), userID, isAdmin, id, in.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, o)
}

func (h *Handler) UpdateOrderTracking(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var in order.TrackingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	o, err := h.orders.UpdateTracking(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, o)
}

func (h *Handler) OrderStats(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
