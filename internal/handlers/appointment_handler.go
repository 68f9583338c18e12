package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
	"github.com/BruksfildServices01/barberpro/internal/models"
	ucAppointment "github.com/BruksfildServices01/barberpro/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	book       *ucAppointment.BookAppointment
	cancel     *ucAppointment.CancelAppointment
	list       *ucAppointment.ListAppointments
	listClient *ucAppointment.ListClientAppointments

	log zerolog.Logger
}

func NewAppointmentHandler(
	db *gorm.DB,
	book *ucAppointment.BookAppointment,
	cancel *ucAppointment.CancelAppointment,
	list *ucAppointment.ListAppointments,
	listClient *ucAppointment.ListClientAppointments,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		book:       book,
		cancel:     cancel,
		list:       list,
		listClient: listClient,
		log:        log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Sem binding:"required": seleções ausentes são respondidas pelo fluxo
// de agendamento com missing_selection.
type BookAppointmentRequest struct {
	ServiceID string `json:"service_id"`
	BarberID  string `json:"barber_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// ======================================================
// CLIENT
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	serviceID, ok1 := optionalUUID(req.ServiceID)
	barberID, ok2 := optionalUUID(req.BarberID)
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		ClientID:    user.ID,
		ServiceID:   serviceID,
		BarberID:    barberID,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  user.FullName,
		ClientEmail: user.Email,
		ClientPhone: user.Phone,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	out, err := h.listClient.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ======================================================
// ADMIN
// ======================================================

// List: GET /api/admin/appointments?date=YYYY-MM-DD | ?month=YYYY-MM [&barber_id=]
func (h *AppointmentHandler) List(c *gin.Context) {
	in := ucAppointment.ListAppointmentsInput{
		Date:  c.Query("date"),
		Month: c.Query("month"),
	}

	if raw := c.Query("barber_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "ID inválido.")
			return
		}
		in.BarberID = &id
	}

	out, err := h.list.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// optionalUUID: vazio vira uuid.Nil; texto inválido devolve ok=false.
func optionalUUID(s string) (uuid.UUID, bool) {
	if s == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}
