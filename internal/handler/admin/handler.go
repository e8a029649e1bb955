package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shark062/EridesSouzaStudio/internal/handler"
	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/service/account"
	"github.com/shark062/EridesSouzaStudio/internal/service/booking"
)

type Handler struct {
	bookingSvc *booking.Service
	accounts   *account.Service
}

func NewHandler(bookingSvc *booking.Service, accounts *account.Service) *Handler {
	return &Handler{bookingSvc: bookingSvc, accounts: accounts}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/bookings", h.ListBookings)
		admin.POST("/bookings/:id", h.UpdateBooking)
		admin.GET("/bookings/export", h.ExportBookings)
		admin.GET("/stats", h.TodayStats)
		admin.POST("/credentials", h.ChangeCredentials)
	}
}

func (h *Handler) ListBookings(c *gin.Context) {
	filter := &model.BookingFilter{
		UserID: c.Query("user_id"),
		Date:   c.Query("date"),
		Status: model.BookingStatus(c.Query("status")),
	}
	if filter.Status != "" && !model.ValidBookingStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown status filter"))
		return
	}

	bookings, err := h.bookingSvc.ListAll(c.Request.Context(), filter)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(bookings))
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	var req model.AdminBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	booking, err := h.bookingSvc.AdminUpdate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(booking))
}

func (h *Handler) ExportBookings(c *gin.Context) {
	filter := &model.BookingFilter{
		Date:   c.Query("date"),
		Status: model.BookingStatus(c.Query("status")),
	}

	data, err := h.bookingSvc.ExportExcel(c.Request.Context(), filter)
	if err != nil {
		handler.Error(c, err)
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) TodayStats(c *gin.Context) {
	stats, err := h.bookingSvc.TodayStats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) ChangeCredentials(c *gin.Context) {
	var req model.ChangeCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.accounts.SetAdminCredentials(c.Request.Context(), req.NewUsername, req.NewPassword); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("credentials updated successfully"))
}
