package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shark062/EridesSouzaStudio/internal/handler"
	"github.com/shark062/EridesSouzaStudio/internal/middleware"
	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/service/account"
	"github.com/shark062/EridesSouzaStudio/internal/service/booking"
)

type Handler struct {
	svc      *booking.Service
	accounts *account.Service
}

func NewHandler(svc *booking.Service, accounts *account.Service) *Handler {
	return &Handler{svc: svc, accounts: accounts}
}

// RegisterPublicRoutes exposes the catalog without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/services", h.ListServices)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

func (h *Handler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.svc.ListServices()))
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.accounts.GetByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		handler.Error(c, err)
		return
	}

	booking, err := h.svc.Create(c.Request.Context(), user, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(booking))
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	bookings, err := h.svc.ListFor(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(bookings))
}

func (h *Handler) CancelBooking(c *gin.Context) {
	actor, err := h.accounts.GetByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		handler.Error(c, err)
		return
	}

	booking, err := h.svc.Cancel(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(booking))
}
