package handler

import (
	"hardwarehub-be/internal/response"
	"hardwarehub-be/internal/servicerequest"
	"hardwarehub-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func serviceRequestFilter(c *gin.Context) (servicerequest.ListFilter, bool) {
	f := servicerequest.ListFilter{
		Status: servicerequest.Status(c.Query("status")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	if raw := c.Query("serviceTypeId"); raw != "" {
		id, err := utils.ToUint(raw)
		if err != nil {
			return f, false
		}
		f.ServiceTypeID = &id
	}
	return f, true
}

func (h *Handler) CreateServiceRequest(c *gin.Context) {
	var in servicerequest.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID, _ := caller(c)
	sr, err := h.requests.Create(c.Request.Context(), userID, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sr)
}

func (h *Handler) ListServiceRequests(c *gin.Context) {
	f, ok := serviceRequestFilter(c)
	if !ok {
		response.BadRequest(c, "serviceTypeId must be a number")
		return
	}

	res, err := h.requests.ListAll(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) ListMyServiceRequests(c *gin.Context) {
	f, ok := serviceRequestFilter(c)
	if !ok {
		response.BadRequest(c, "serviceTypeId must be a number")
		return
	}

	userID, _ := caller(c)
	res, err := h.requests.ListByUser(c.Request.Context(), userID, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) GetServiceRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, isAdmin := caller(c)
	sr, err := h.requests.Get(c.Request.Context(), userID, isAdmin, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sr)
}

func (h *Handler) UpdateServiceRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var in servicerequest.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sr, err := h.requests.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sr)
}

func (h *Handler) CancelServiceRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, _ := caller(c)
	sr, err := h.requests.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sr)
}

func (h *Handler) DeleteServiceRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.requests.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "service request deleted")
}
