package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BelezaPro/agenda-core/internal/audit"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/middleware"
	"github.com/BelezaPro/agenda-core/internal/models"
	"github.com/BelezaPro/agenda-core/internal/timezone"
	ucAgenda "github.com/BelezaPro/agenda-core/internal/usecase/agenda"
)

// ======================================================
// HANDLER
// ======================================================

// AgendaPolicyHandler administra a política de liberação de agenda do
// tenant. O PUT só altera parâmetros; o recálculo do conjunto liberado
// é um POST separado e explícito.
type AgendaPolicyHandler struct {
	db     *gorm.DB
	engine *ucAgenda.Engine
	audit  *audit.Dispatcher
}

func NewAgendaPolicyHandler(
	db *gorm.DB,
	engine *ucAgenda.Engine,
	dispatcher *audit.Dispatcher,
) *AgendaPolicyHandler {
	return &AgendaPolicyHandler{
		db:     db,
		engine: engine,
		audit:  dispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AgendaPolicyUpdateRequest struct {
	ReleaseInterval int  `json:"release_interval" binding:"required,min=1,max=12"`
	ReleaseDay      int  `json:"release_day" binding:"required,min=1,max=31"`
	IsActive        bool `json:"is_active"`
}

// ======================================================
// GET
// ======================================================

func (h *AgendaPolicyHandler) Get(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	p, err := h.engine.GetPolicy(c.Request.Context(), establishmentID)
	if err != nil {
		if httperr.IsBusiness(err, "policy_not_found") {
			httperr.NotFound(c, "policy_not_found", "Política não configurada.")
			return
		}
		httperr.Internal(c, "failed_to_get_policy", "Erro ao buscar política.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"release_interval":        p.ReleaseInterval,
		"release_day":             p.ReleaseDay,
		"is_active":               p.IsActive,
		"current_released_months": p.Months(),
	})
}

// ======================================================
// PUT
// ======================================================

func (h *AgendaPolicyHandler) Update(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req AgendaPolicyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.engine.SetPolicy(
		c.Request.Context(),
		establishmentID,
		req.ReleaseInterval,
		req.ReleaseDay,
		req.IsActive,
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_release_interval"):
			httperr.BadRequest(c, "invalid_release_interval", "Intervalo deve ser de 1 a 12 meses.")
		case httperr.IsBusiness(err, "invalid_release_day"):
			httperr.BadRequest(c, "invalid_release_day", "Dia deve ser de 1 a 31.")
		default:
			httperr.Internal(c, "failed_to_save_policy", "Erro ao salvar política.")
		}
		return
	}

	h.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		StaffID:         &staffID,
		Action:          "agenda_policy_updated",
		Entity:          "agenda_release_policy",
		EntityID:        &p.ID,
		Metadata: map[string]any{
			"release_interval": p.ReleaseInterval,
			"release_day":      p.ReleaseDay,
			"is_active":        p.IsActive,
		},
	})

	c.JSON(http.StatusOK, p)
}

// ======================================================
// RECALCULATE
// ======================================================

func (h *AgendaPolicyHandler) Recalculate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextStaffID).(uint)
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var est models.Establishment
	if err := h.db.First(&est, establishmentID).Error; err != nil {
		httperr.Internal(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	today := timezone.NowIn(est.Timezone)

	months, err := h.engine.Recalculate(c.Request.Context(), establishmentID, today)
	if err != nil {
		if httperr.IsBusiness(err, "policy_not_found") {
			httperr.NotFound(c, "policy_not_found", "Política não configurada.")
			return
		}
		httperr.Internal(c, "failed_to_recalculate", "Erro ao recalcular liberações.")
		return
	}

	h.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		StaffID:         &staffID,
		Action:          "agenda_recalculated",
		Entity:          "agenda_release_policy",
		Metadata:        map[string]any{"months": months},
	})

	c.JSON(http.StatusOK, gin.H{"released_months": months})
}

// ======================================================
// HISTÓRICO
// ======================================================

func (h *AgendaPolicyHandler) ListReleases(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var releases []models.AgendaRelease
	if err := h.db.
		Where("establishment_id = ?", establishmentID).
		Order("id DESC").
		Limit(100).
		Find(&releases).Error; err != nil {

		httperr.Internal(c, "failed_to_list_releases", "Erro ao listar liberações.")
		return
	}

	c.JSON(http.StatusOK, releases)
}
