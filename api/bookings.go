package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/Domenick1991/tourtrek/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type updateStatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, guard gin.HandlerFunc) {
	router.POST("/bookings", guard, h.create)
	router.GET("/my-bookings/:email", guard, h.listMine)
	router.PATCH("/my-bookings/:email/:id", guard, h.updateMine)
	router.PATCH("/bookings/:id", guard, h.updateStatus)
}

func (h *BookingHandler) create(c *gin.Context) {
	var b domain.Booking
	if err := c.ShouldBindJSON(&b); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), b)
	switch {
	case errors.Is(err, booking.ErrTourIDRequired), errors.Is(err, booking.ErrBuyerEmailRequired):
		badRequest(c, err)
	case err != nil:
		internalError(c, err)
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (h *BookingHandler) listMine(c *gin.Context) {
	email := c.Param("email")
	if !requireOwner(c, email) {
		return
	}

	list, err := h.service.ListByBuyer(c.Request.Context(), email)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

// updateMine only touches a booking bought by the caller.
func (h *BookingHandler) updateMine(c *gin.Context) {
	email := c.Param("email")
	if !requireOwner(c, email) {
		return
	}
	h.patch(c, email)
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	h.patch(c, "")
}

func (h *BookingHandler) patch(c *gin.Context, buyerEmail string) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), buyerEmail, req.Status)
	switch {
	case errors.Is(err, booking.ErrStatusRequired):
		badRequest(c, err)
	case err != nil:
		internalError(c, err)
	default:
		c.JSON(http.StatusOK, res)
	}
}
