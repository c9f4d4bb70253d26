package handler

import (
	"hardwarehub-be/internal/catalog"
	"hardwarehub-be/internal/response"
	"hardwarehub-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type catalogPage struct {
	Items []catalog.Entry `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// Inactive entries are visible to admins only, and only on request.
func includeInactive(c *gin.Context) bool {
	_, isAdmin := caller(c)
	inc := queryBool(c, "includeInactive")
	return isAdmin && inc != nil && *inc
}

func (h *Handler) listCatalog(kind catalog.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.ListQuery{
			IncludeInactive: includeInactive(c),
			Search:          c.Query("search"),
			Page:            queryInt(c, "page"),
			Limit:           queryInt(c, "limit"),
		}
		q.Page, q.Limit, _ = utils.Paginate(q.Page, q.Limit)

		items, total, err := h.catalog.List(c.Request.Context(), kind, q)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, catalogPage{Items: items, Total: total, Page: q.Page, Limit: q.Limit})
	}
}

func (h *Handler) getCatalog(kind catalog.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}

		e, err := h.catalog.Get(c.Request.Context(), kind, id, includeInactive(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, e)
	}
}

func (h *Handler) createCatalog(kind catalog.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalog.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		e, err := h.catalog.Create(c.Request.Context(), kind, in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, e)
	}
}

func (h *Handler) updateCatalog(kind catalog.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}

		var in catalog.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		e, err := h.catalog.Update(c.Request.Context(), kind, id, in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, e)
	}
}

func (h *Handler) deleteCatalog(kind catalog.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}

		if err := h.catalog.Delete(c.Request.Context(), kind, id); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, "deactivated")
	}
}
