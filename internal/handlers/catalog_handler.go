package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barberpro/internal/usecase/appointment"
)

// CatalogHandler atende as telas de escolha do cliente: serviço, barbeiro e horário.
type CatalogHandler struct {
	repo         domain.Repository
	availability *ucAppointment.GetAvailability
	log          zerolog.Logger
}

func NewCatalogHandler(
	repo domain.Repository,
	availability *ucAppointment.GetAvailability,
	log zerolog.Logger,
) *CatalogHandler {
	return &CatalogHandler{repo: repo, availability: availability, log: log}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.repo.ListActiveServices(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.repo.ListActiveBarbers(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, barbers)
}

// Availability: GET /api/barbers/:id/availability?date=YYYY-MM-DD
func (h *CatalogHandler) Availability(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, domain.CodeMissingSelection, "Informe a data.")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID: barberID,
		Date:     date,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
