package handler

import (
	"hardwarehub-be/internal/product"
	"hardwarehub-be/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func queryDecimal(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func (h *Handler) ListProducts(c *gin.Context) {
	q := product.ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		InStock:  queryBool(c, "inStock"),
		SortBy:   c.Query("sortBy"),
		SortDir:  c.DefaultQuery("sortOrder", c.Query("sortDir")),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	var ok bool
	if q.MinPrice, ok = queryDecimal(c, "minPrice"); !ok {
		response.BadRequest(c, "minPrice must be a number")
		return
	}
	if q.MaxPrice, ok = queryDecimal(c, "maxPrice"); !ok {
		response.BadRequest(c, "maxPrice must be a number")
		return
	}

	res, err := h.products.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var in product.NewProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var in product.UpdateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "product deleted")
}

func (h *Handler) ProductCategories(c *gin.Context) {
	cats, err := h.products.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cats)
}

func (h *Handler) ProductSuggestions(c *gin.Context) {
	names, err := h.products.Suggestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, names)
}

func (h *Handler) LowStockProducts(c *gin.Context) {
	items, err := h.products.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}
