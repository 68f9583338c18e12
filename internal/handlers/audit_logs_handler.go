package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List: filtros opcionais action, entity, from, to (YYYY-MM-DD) + page/limit.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(domain.DateLayout, from)
		if err != nil {
			httperr.BadRequest(c, domain.CodeInvalidDate, "Data inválida.")
			return
		}
		q = q.Where("created_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(domain.DateLayout, to)
		if err != nil {
			httperr.BadRequest(c, domain.CodeInvalidDate, "Data inválida.")
			return
		}
		q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
