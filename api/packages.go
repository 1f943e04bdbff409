package api

import (
	"net/http"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/Domenick1991/tourtrek/internal/service/packages"
	"github.com/gin-gonic/gin"
)

type PackageHandler struct {
	service packages.PackageUseCase
}

func NewPackageHandler(service packages.PackageUseCase) *PackageHandler {
	return &PackageHandler{service: service}
}

func (h *PackageHandler) Register(router *gin.RouterGroup, guard gin.HandlerFunc) {
	router.GET("/packages", h.list)
	router.GET("/packages-featured", h.featured)
	router.GET("/packages/:id", h.get)
	router.GET("/my-packages/:email", guard, h.listByGuide)
	router.POST("/packages", guard, h.create)
	router.PUT("/packages/:id", guard, h.update)
	router.DELETE("/packages/:id", guard, h.delete)
}

func (h *PackageHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *PackageHandler) featured(c *gin.Context) {
	list, err := h.service.Featured(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// get answers null for an unknown id.
func (h *PackageHandler) get(c *gin.Context) {
	pkg, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) listByGuide(c *gin.Context) {
	email := c.Param("email")
	if !requireOwner(c, email) {
		return
	}

	list, err := h.service.ListByGuide(c.Request.Context(), email)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *PackageHandler) create(c *gin.Context) {
	var pkg domain.TourPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), pkg)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PackageHandler) update(c *gin.Context) {
	var update domain.PackageUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PackageHandler) delete(c *gin.Context) {
	res, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// nonNil keeps empty listings encoded as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
