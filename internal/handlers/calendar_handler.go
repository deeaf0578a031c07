package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BelezaPro/agenda-core/internal/cache"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/middleware"
	"github.com/BelezaPro/agenda-core/internal/models"
	"github.com/BelezaPro/agenda-core/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// CalendarHandler administra as regras de calendário do tenant:
// expediente, horário individual por profissional e afastamentos.
// Toda escrita invalida o cache de regras.
type CalendarHandler struct {
	db    *gorm.DB
	rules *cache.RulesCache
}

func NewCalendarHandler(db *gorm.DB, rules *cache.RulesCache) *CalendarHandler {
	return &CalendarHandler{db: db, rules: rules}
}

// ======================================================
// REQUESTS
// ======================================================

type BusinessDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsHoliday bool   `json:"is_holiday"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required"`
}

type StaffDayConfig struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	IsAvailable bool   `json:"is_available"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
}

type StaffHoursUpdateRequest struct {
	Days []StaffDayConfig `json:"days" binding:"required"`
}

type TimeOffCreateRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
}

// ======================================================
// BUSINESS HOURS
// ======================================================

func (h *CalendarHandler) GetBusinessHours(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var hours []models.BusinessHours
	if err := h.db.
		Where("establishment_id = ?", establishmentID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_business_hours", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *CalendarHandler) UpdateBusinessHours(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	for _, d := range req.Days {
		if d.IsOpen && !validators.IsClockRange(d.OpenTime, d.CloseTime) {
			httperr.BadRequest(c, "invalid_hours", "Abertura deve ser anterior ao fechamento.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("establishment_id = ?", establishmentID).
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.BusinessHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.BusinessHours{
				EstablishmentID: establishmentID,
				Weekday:         d.Weekday,
				IsOpen:          d.IsOpen,
				OpenTime:        d.OpenTime,
				CloseTime:       d.CloseTime,
				IsHoliday:       d.IsHoliday,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Erro ao salvar expediente.")
		return
	}

	h.rules.Invalidate(c.Request.Context(), establishmentID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// STAFF WORKING HOURS
// ======================================================

func (h *CalendarHandler) GetStaffHours(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
		return
	}

	var hours []models.StaffWorkingHours
	if err := h.db.
		Where("establishment_id = ? AND staff_id = ?", establishmentID, staffID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_staff_hours", "Erro ao buscar horários.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *CalendarHandler) UpdateStaffHours(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	staffID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
		return
	}

	var staff models.Staff
	if err := h.db.
		Where("id = ? AND establishment_id = ?", staffID, establishmentID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	var req StaffHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	for _, d := range req.Days {
		if d.IsAvailable && !validators.IsClockRange(d.OpenTime, d.CloseTime) {
			httperr.BadRequest(c, "invalid_hours", "Abertura deve ser anterior ao fechamento.")
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("establishment_id = ? AND staff_id = ?", establishmentID, staffID).
			Delete(&models.StaffWorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.StaffWorkingHours
		for _, d := range req.Days {
			toCreate = append(toCreate, models.StaffWorkingHours{
				EstablishmentID: establishmentID,
				StaffID:         staff.ID,
				Weekday:         d.Weekday,
				IsAvailable:     d.IsAvailable,
				OpenTime:        d.OpenTime,
				CloseTime:       d.CloseTime,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_staff_hours", "Erro ao salvar horários.")
		return
	}

	h.rules.Invalidate(c.Request.Context(), establishmentID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// TIME OFF
// ======================================================

func (h *CalendarHandler) ListTimeOff(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	q := h.db.Where("establishment_id = ?", establishmentID)

	if staffIDStr := c.Query("staff_id"); staffIDStr != "" {
		if staffID, err := strconv.ParseUint(staffIDStr, 10, 64); err == nil {
			q = q.Where("staff_id = ?", staffID)
		}
	}

	var offs []models.StaffTimeOff
	if err := q.Order("start_date ASC").Find(&offs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_off", "Erro ao listar afastamentos.")
		return
	}

	c.JSON(http.StatusOK, offs)
}

func (h *CalendarHandler) CreateTimeOff(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req TimeOffCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var est models.Establishment
	if err := h.db.First(&est, establishmentID).Error; err != nil {
		httperr.Internal(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	start, err := parseDateInEstablishment(&est, req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "Data inicial inválida.")
		return
	}

	end, err := parseDateInEstablishment(&est, req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
		return
	}

	if end.Before(start) {
		httperr.BadRequest(c, "invalid_range", "Data final anterior à inicial.")
		return
	}

	var staff models.Staff
	if err := h.db.
		Where("id = ? AND establishment_id = ?", req.StaffID, establishmentID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	offType := req.Type
	if offType == "" {
		offType = "vacation"
	}

	off := models.StaffTimeOff{
		EstablishmentID: establishmentID,
		StaffID:         staff.ID,
		StartDate:       start,
		EndDate:         end,
		Type:            offType,
		Notes:           req.Notes,
	}

	if err := h.db.Create(&off).Error; err != nil {
		httperr.Internal(c, "failed_to_create_time_off", "Erro ao criar afastamento.")
		return
	}

	h.rules.Invalidate(c.Request.Context(), establishmentID)

	c.JSON(http.StatusCreated, off)
}

func (h *CalendarHandler) DeleteTimeOff(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_time_off_id", "Afastamento inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		Delete(&models.StaffTimeOff{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_time_off", "Erro ao remover afastamento.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "time_off_not_found", "Afastamento não encontrado.")
		return
	}

	h.rules.Invalidate(c.Request.Context(), establishmentID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
