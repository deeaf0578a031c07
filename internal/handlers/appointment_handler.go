package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/middleware"
	"github.com/BelezaPro/agenda-core/internal/models"
	ucSchedule "github.com/BelezaPro/agenda-core/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler é a superfície privada (staff/admin) da agenda.
type AppointmentHandler struct {
	db         *gorm.DB
	generate   *ucSchedule.GenerateSlots
	admit      *ucSchedule.AdmitBooking
	transition *ucSchedule.TransitionAppointment
	listDay    *ucSchedule.ListDayAgenda
}

func NewAppointmentHandler(
	db *gorm.DB,
	generate *ucSchedule.GenerateSlots,
	admit *ucSchedule.AdmitBooking,
	transition *ucSchedule.TransitionAppointment,
	listDay *ucSchedule.ListDayAgenda,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		generate:   generate,
		admit:      admit,
		transition: transition,
		listDay:    listDay,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	StaffID     uint   `json:"staff_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var est models.Establishment
	if err := h.db.First(&est, establishmentID).Error; err != nil {
		httperr.Internal(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	respondAvailability(c, h.generate, &est)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.admit.Execute(
		c.Request.Context(),
		ucSchedule.AdmitBookingInput{
			EstablishmentID: establishmentID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			ClientEmail:     req.ClientEmail,
			Date:            req.Date,
			Time:            req.Time,
			Channel:         domain.ChannelAdmin,
			Notes:           req.Notes,
		},
	)
	if err != nil {
		mapAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST (DIA)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var est models.Establishment
	if err := h.db.First(&est, establishmentID).Error; err != nil {
		httperr.Internal(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	date, err := parseDateInEstablishment(&est, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	items, err := h.listDay.Execute(c.Request.Context(), establishmentID, staffID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, items)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.applyTransition(c, h.transition.Confirm)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	h.applyTransition(c, h.transition.Reject)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, h.transition.Cancel)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.applyTransition(c, h.transition.Complete)
}

func (h *AppointmentHandler) applyTransition(
	c *gin.Context,
	fn func(ctx context.Context, establishmentID, staffID, appointmentID uint) (*models.Appointment, error),
) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	ap, err := fn(c.Request.Context(), establishmentID, staffID, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Transição de status inválida.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}
