package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
}

func (h *MeHandler) load(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return nil, false
	}
	return &user, true
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, ok := h.load(c)
	if !ok {
		return
	}

	updates := map[string]any{}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
		updates["full_name"] = user.FullName
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
		updates["phone"] = user.Phone
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).Model(user).Updates(updates).Error; err != nil {
			httperr.Internal(c, "update_failed", "Erro ao atualizar perfil.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
