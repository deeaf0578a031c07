package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/models"
	ucSchedule "github.com/BelezaPro/agenda-core/internal/usecase/schedule"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serve a página de agendamento self-service do cliente
// final, por slug do estabelecimento. Canal: client.
type PublicHandler struct {
	db       *gorm.DB
	generate *ucSchedule.GenerateSlots
	admit    *ucSchedule.AdmitBooking
}

func NewPublicHandler(
	db *gorm.DB,
	generate *ucSchedule.GenerateSlots,
	admit *ucSchedule.AdmitBooking,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		generate: generate,
		admit:    admit,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	StaffID     uint   `json:"staff_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var est models.Establishment
	if err := h.db.Where("slug = ?", slug).First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("establishment_id = ? AND active = true", est.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"establishment": est,
		"services":      services,
	})
}

////////////////////////////////////////////////////////
// STAFF ELEGÍVEL POR SERVIÇO
////////////////////////////////////////////////////////

func (h *PublicHandler) ListStaff(c *gin.Context) {
	slug := c.Param("slug")

	var est models.Establishment
	if err := h.db.Where("slug = ?", slug).First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	serviceIDStr := c.Query("service_id")
	if serviceIDStr == "" {
		httperr.BadRequest(c, "missing_service_id", "Serviço obrigatório.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	var svc models.Service
	if err := h.db.
		Preload("Staff", "active = true").
		Where("id = ? AND establishment_id = ? AND active = true", serviceID, est.ID).
		First(&svc).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service": svc.Name,
		"staff":   svc.Staff,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")

	var est models.Establishment
	if err := h.db.Where("slug = ?", slug).First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	respondAvailability(c, h.generate, &est)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	slug := c.Param("slug")

	var est models.Establishment
	if err := h.db.Where("slug = ?", slug).First(&est).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

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
			Channel:         domain.ChannelClient,
			Notes:           req.Notes,
		},
	)
	if err != nil {
		mapAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment_id": ap.ID, "status": ap.Status})
}

////////////////////////////////////////////////////////
// SHARED
////////////////////////////////////////////////////////

// respondAvailability resolve os parâmetros comuns de consulta de
// grade e escreve a resposta; compartilhado pelos canais public, bot e
// admin.
func respondAvailability(
	c *gin.Context,
	generate *ucSchedule.GenerateSlots,
	est *models.Establishment,
) {
	dateStr := c.Query("date")
	staffIDStr := c.Query("staff_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || staffIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, profissional e serviço obrigatórios.")
		return
	}

	staffID, err := strconv.ParseUint(staffIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	date, err := parseDateInEstablishment(est, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	grid, err := generate.Execute(
		c.Request.Context(),
		ucSchedule.GenerateSlotsInput{
			EstablishmentID: est.ID,
			StaffID:         uint(staffID),
			ServiceID:       uint(serviceID),
			Date:            date,
		},
	)
	if err != nil {
		mapAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, grid)
}
