package handler

import (
	"hardwarehub-be/internal/cart"
	"hardwarehub-be/internal/response"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCart(c *gin.Context) {
	userID, _ := caller(c)
	ct, err := h.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ct)
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var in cart.AddItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	userID, _ := caller(c)
	ct, err := h.carts.AddItem(c.Request.Context(), userID, in.ProductID, in.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ct)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, err := paramID(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var in cart.UpdateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID, _ := caller(c)
	ct, err := h.carts.UpdateItem(c.Request.Context(), userID, productID, in.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ct)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, err := paramID(c, "productId")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, _ := caller(c)
	ct, err := h.carts.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ct)
}

func (h *Handler) ClearCart(c *gin.Context) {
	userID, _ := caller(c)
	ct, err := h.carts.Clear(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ct)
}
