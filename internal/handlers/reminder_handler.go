package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	ucappointment "github.com/BruksfildServices01/barberpro/internal/usecase/appointment"
)

type ReminderHandler struct {
	send *ucappointment.SendReminders
	log  zerolog.Logger
}

func NewReminderHandler(send *ucappointment.SendReminders, log zerolog.Logger) *ReminderHandler {
	return &ReminderHandler{send: send, log: log}
}

// Run dispara os lembretes de amanhã manualmente (o cron usa cmd/reminders).
func (h *ReminderHandler) Run(c *gin.Context) {
	report, err := h.send.Execute(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
