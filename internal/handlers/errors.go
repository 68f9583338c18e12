package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
)

type errorInfo struct {
	status  int
	message string
}

// Mensagens exibidas ao cliente para cada código de negócio.
var businessErrors = map[string]errorInfo{
	domain.CodeMissingSelection:    {http.StatusBadRequest, "Selecione serviço, barbeiro, data e horário."},
	domain.CodeInvalidDate:         {http.StatusBadRequest, "Data inválida."},
	domain.CodeInvalidTime:         {http.StatusBadRequest, "Horário inválido."},
	domain.CodeDateInPast:          {http.StatusBadRequest, "Não é possível agendar em uma data passada."},
	domain.CodeNotAWorkDay:         {http.StatusBadRequest, "O barbeiro não atende neste dia."},
	domain.CodeBeyondBookingWindow: {http.StatusBadRequest, "Data além do período disponível para agendamento."},
	domain.CodeSlotUnavailable:     {http.StatusBadRequest, "Horário indisponível."},
	domain.CodeServiceNotFound:     {http.StatusNotFound, "Serviço não encontrado."},
	domain.CodeBarberNotFound:      {http.StatusNotFound, "Barbeiro não encontrado."},
	domain.CodeAppointmentNotFound: {http.StatusNotFound, "Agendamento não encontrado."},
	domain.CodeInvalidState:        {http.StatusConflict, "Este agendamento não pode mais ser alterado."},

	domain.CodeAvailabilityCheckFailed: {http.StatusServiceUnavailable, "Não foi possível verificar a disponibilidade. Tente novamente."},
	domain.CodeSlotTaken:               {http.StatusConflict, "Este horário acabou de ser reservado. Escolha outro."},
	domain.CodeInsertFailed:            {http.StatusInternalServerError, "Erro ao criar agendamento. Tente novamente."},
}

// writeError traduz erros de use case em resposta HTTP. Falhas de
// infraestrutura vão para o log; o cliente recebe só o código.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		info, ok := businessErrors[be.Code]
		if !ok {
			info = errorInfo{http.StatusBadRequest, "Requisição inválida."}
		}
		if be.Err != nil || info.status >= 500 {
			log.Error().Err(err).Str("error_code", be.Code).Str("path", c.FullPath()).Msg("request failed")
		}
		httperr.Write(c, info.status, be.Code, info.message)
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
	httperr.Internal(c, "internal_error", "Erro interno.")
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    "Dados inválidos.",
		"details":    err.Error(),
	})
}
