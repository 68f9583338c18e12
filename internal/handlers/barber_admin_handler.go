package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	"github.com/BruksfildServices01/barberpro/internal/imaging"
	"github.com/BruksfildServices01/barberpro/internal/infra/storage"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

const maxPhotoBytes = 5 << 20

type BarberAdminHandler struct {
	db      *gorm.DB
	storage storage.PhotoStorage
	audit   *audit.Dispatcher
	log     zerolog.Logger
}

// NewBarberAdminHandler: photos pode ser nil (upload desativado).
func NewBarberAdminHandler(
	db *gorm.DB,
	photos storage.PhotoStorage,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *BarberAdminHandler {
	return &BarberAdminHandler{db: db, storage: photos, audit: audit, log: log}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	WorkStartTime string `json:"work_start_time" binding:"required,hhmm"`
	WorkEndTime   string `json:"work_end_time" binding:"required,hhmm"`
	WorkDays      []int  `json:"work_days" binding:"omitempty,unique,dive,min=1,max=7"`
	IsActive      *bool  `json:"is_active"`
}

type UpdateBarberRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	WorkStartTime *string `json:"work_start_time,omitempty" binding:"omitempty,hhmm"`
	WorkEndTime   *string `json:"work_end_time,omitempty" binding:"omitempty,hhmm"`
	WorkDays      []int   `json:"work_days,omitempty" binding:"omitempty,unique,dive,min=1,max=7"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// validHours: início estritamente antes do fim.
func validHours(start, end string) bool {
	s, err1 := domain.ParseTimeOfDay(start)
	e, err2 := domain.ParseTimeOfDay(end)
	return err1 == nil && err2 == nil && s < e
}

// --------- Handlers ---------

func (h *BarberAdminHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberAdminHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if !validHours(req.WorkStartTime, req.WorkEndTime) {
		httperr.BadRequest(c, "invalid_work_hours", "O início do expediente deve ser antes do fim.")
		return
	}

	workDays := req.WorkDays
	if workDays == nil {
		workDays = models.DefaultWorkDays
	}

	barber := models.Barber{
		Name:          strings.TrimSpace(req.Name),
		WorkStartTime: req.WorkStartTime,
		WorkEndTime:   req.WorkEndTime,
		WorkDays:      workDays,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		h.log.Error().Err(err).Msg("create barber")
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.ID(middleware.UserID(c)),
		Action:   audit.ActionBarberCreated,
		Entity:   "barber",
		EntityID: audit.ID(barber.ID),
	})

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberAdminHandler) find(c *gin.Context) (*models.Barber, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return nil, false
	}

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).First(&barber, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, domain.CodeBarberNotFound, "Barbeiro não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return nil, false
	}
	return &barber, true
}

func (h *BarberAdminHandler) Update(c *gin.Context) {
	barber, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.WorkStartTime != nil {
		barber.WorkStartTime = *req.WorkStartTime
	}
	if req.WorkEndTime != nil {
		barber.WorkEndTime = *req.WorkEndTime
	}
	if req.WorkDays != nil {
		barber.WorkDays = req.WorkDays
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	if !validHours(barber.WorkStartTime, barber.WorkEndTime) {
		httperr.BadRequest(c, "invalid_work_hours", "O início do expediente deve ser antes do fim.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.ID(middleware.UserID(c)),
		Action:   audit.ActionBarberUpdated,
		Entity:   "barber",
		EntityID: audit.ID(barber.ID),
	})

	c.JSON(http.StatusOK, barber)
}

// Delete remove o barbeiro de vez; agendamentos antigos ficam com barber nulo.
func (h *BarberAdminHandler) Delete(c *gin.Context) {
	barber, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Erro ao remover barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.ID(middleware.UserID(c)),
		Action:   audit.ActionBarberDeleted,
		Entity:   "barber",
		EntityID: audit.ID(barber.ID),
		Metadata: map[string]string{"name": barber.Name},
	})

	c.Status(http.StatusNoContent)
}

// UploadPhoto recebe multipart "photo", converte para WebP e grava no bucket.
func (h *BarberAdminHandler) UploadPhoto(c *gin.Context) {
	if h.storage == nil {
		httperr.Unavailable(c, "storage_unavailable", "Upload de fotos não está configurado.")
		return
	}

	barber, ok := h.find(c)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie a foto no campo \"photo\".")
		return
	}
	if file.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "A foto deve ter no máximo 5 MB.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}

	encoded, err := imaging.ToWebP(bytes.NewReader(raw), imaging.MaxSide, imaging.Quality)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			httperr.BadRequest(c, "invalid_image", "Formato de imagem não suportado.")
			return
		}
		h.log.Error().Err(err).Msg("encode photo")
		httperr.Internal(c, "photo_processing_failed", "Erro ao processar a foto.")
		return
	}

	key := fmt.Sprintf("barbers/%s-%d.webp", barber.ID, time.Now().Unix())
	url, err := h.storage.Put(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("upload photo")
		httperr.Internal(c, "photo_upload_failed", "Erro ao enviar a foto.")
		return
	}

	barber.PhotoURL = &url
	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.ID(middleware.UserID(c)),
		Action:   audit.ActionBarberUpdated,
		Entity:   "barber",
		EntityID: audit.ID(barber.ID),
		Metadata: map[string]string{"photo_url": url},
	})

	c.JSON(http.StatusOK, barber)
}
