package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shark062/EridesSouzaStudio/internal/handler"
	"github.com/shark062/EridesSouzaStudio/internal/middleware"
	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/service/account"
)

type Handler struct {
	accounts *account.Service
}

func NewHandler(accounts *account.Service) *Handler {
	return &Handler{accounts: accounts}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("/profile", h.UpdateProfile)
	}
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), c.GetString(middleware.ContextUsername), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}
