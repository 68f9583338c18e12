package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/realtime"
)

const (
	notificationsLimit = 20
	keepAliveInterval  = 25 * time.Second
)

type NotificationHandler struct {
	db  *gorm.DB
	hub realtime.Hub
	log zerolog.Logger
}

func NewNotificationHandler(db *gorm.DB, hub realtime.Hub, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{db: db, hub: hub, log: log}
}

type NotificationsResponse struct {
	Data        []models.Notification `json:"data"`
	UnreadCount int64                 `json:"unread_count"`
}

// List devolve as 20 mais recentes e o total de não lidas.
func (h *NotificationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	notifications := []models.Notification{}
	if err := h.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(notificationsLimit).
		Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	var unread int64
	if err := h.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_read = ?", false).
		Count(&unread).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Erro ao listar notificações.")
		return
	}

	c.JSON(http.StatusOK, NotificationsResponse{Data: notifications, UnreadCount: unread})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var n models.Notification
	if err := h.db.WithContext(c.Request.Context()).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_notification", "Erro ao buscar notificação.")
		return
	}

	n.IsRead = true
	if err := h.db.WithContext(c.Request.Context()).
		Model(&n).
		Update("is_read", true).Error; err != nil {
		httperr.Internal(c, "failed_to_update_notification", "Erro ao atualizar notificação.")
		return
	}

	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_notification", "Erro ao atualizar notificações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}

// Stream mantém um canal SSE aberto com as notificações novas.
// O painel recarrega a lista ao receber cada evento.
func (h *NotificationHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	ch, err := h.hub.Subscribe(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("subscribe notifications")
		httperr.Unavailable(c, "realtime_unavailable", "Notificações em tempo real indisponíveis.")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Header("Content-Type", "text/event-stream")

	// abre o stream já com a assinatura feita
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
