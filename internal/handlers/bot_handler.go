package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/middleware"
	"github.com/BelezaPro/agenda-core/internal/models"
	ucSchedule "github.com/BelezaPro/agenda-core/internal/usecase/schedule"
)

// BotHandler é a superfície do canal automatizado (integrações de
// mensageria). Mesmo contrato do público, mas com canal bot: sujeito à
// liberação de agenda por mês e ao status inicial configurado.
type BotHandler struct {
	generate *ucSchedule.GenerateSlots
	admit    *ucSchedule.AdmitBooking
}

func NewBotHandler(
	generate *ucSchedule.GenerateSlots,
	admit *ucSchedule.AdmitBooking,
) *BotHandler {
	return &BotHandler{
		generate: generate,
		admit:    admit,
	}
}

func (h *BotHandler) Availability(c *gin.Context) {
	est := c.MustGet(middleware.ContextEstablishment).(*models.Establishment)
	respondAvailability(c, h.generate, est)
}

func (h *BotHandler) CreateAppointment(c *gin.Context) {
	est := c.MustGet(middleware.ContextEstablishment).(*models.Establishment)

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.admit.Execute(
		c.Request.Context(),
		ucSchedule.AdmitBookingInput{
			EstablishmentID: est.ID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			ClientEmail:     req.ClientEmail,
			Date:            req.Date,
			Time:            req.Time,
			Channel:         domain.ChannelBot,
			Notes:           req.Notes,
		},
	)
	if err != nil {
		mapAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment_id": ap.ID, "status": ap.Status})
}
