package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

type ServiceAdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewServiceAdminHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *ServiceAdminHandler {
	return &ServiceAdminHandler{db: db, audit: audit, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Price           float64 `json:"price" binding:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	IsActive        *bool   `json:"is_active"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" binding:"omitempty,gt=0"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

// --------- Handlers ---------

// List devolve todos os serviços, inclusive inativos.
func (h *ServiceAdminHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceAdminHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	service := models.Service{
		Name:            strings.TrimSpace(req.Name),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive == nil || *req.IsActive,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		h.log.Error().Err(err).Msg("create service")
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.ID(middleware.UserID(c)),
		Action:   audit.ActionServiceCreated,
		Entity:   "service",
		EntityID: audit.ID(service.ID),
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceAdminHandler) find(c *gin.Context) (*models.Service, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return nil, false
	}
	return &service, true
}

func (h *ServiceAdminHandler) Update(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.ID(middleware.UserID(c)),
		Action:   audit.ActionServiceUpdated,
		Entity:   "service",
		EntityID: audit.ID(service.ID),
	})

	c.JSON(http.StatusOK, service)
}

// Delete remove o serviço de vez; agendamentos antigos ficam com service nulo.
func (h *ServiceAdminHandler) Delete(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao remover serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.ID(middleware.UserID(c)),
		Action:   audit.ActionServiceDeleted,
		Entity:   "service",
		EntityID: audit.ID(service.ID),
		Metadata: map[string]string{"name": service.Name},
	})

	c.Status(http.StatusNoContent)
}
