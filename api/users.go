package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/Domenick1991/tourtrek/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

type userExistsResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

type roleResponse struct {
	Role domain.Role `json:"role"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup, guard gin.HandlerFunc) {
	router.POST("/users", h.create)
	router.GET("/users/role/:email", guard, h.role)
}

func (h *UserHandler) create(c *gin.Context) {
	var user domain.User
	if err := c.ShouldBindJSON(&user); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), user)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		c.JSON(http.StatusOK, userExistsResponse{Message: "user already exists"})
	case errors.Is(err, users.ErrEmailRequired):
		badRequest(c, err)
	case err != nil:
		internalError(c, err)
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (h *UserHandler) role(c *gin.Context) {
	email := c.Param("email")
	if !requireOwner(c, email) {
		return
	}

	role, err := h.service.Role(c.Request.Context(), email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
	case err != nil:
		internalError(c, err)
	default:
		c.JSON(http.StatusOK, roleResponse{Role: role})
	}
}
