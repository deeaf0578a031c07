package agenda

import (
	"context"
	"time"

	"github.com/BelezaPro/agenda-core/internal/models"
)

// PolicyStore persiste a política de liberação de agenda e o histórico
// append-only de liberações.
type PolicyStore interface {
	// GetPolicy retorna a política vigente do tenant ou (nil, nil).
	GetPolicy(ctx context.Context, establishmentID uint) (*models.AgendaReleasePolicy, error)

	SavePolicy(ctx context.Context, p *models.AgendaReleasePolicy) error

	// ReleaseMonths adiciona os meses ausentes ao conjunto liberado e
	// grava um registro de liberação, atomicamente. Meses já presentes
	// são ignorados; retorna só o que foi de fato adicionado (vazio =
	// no-op, nenhum log gravado). Seguro sob chamadas concorrentes.
	ReleaseMonths(
		ctx context.Context,
		establishmentID uint,
		months []string,
		releaseType string,
		releasedAt time.Time,
	) ([]string, error)

	// ReplaceMonths sobrescreve o conjunto liberado (recálculo manual)
	// e grava um registro type=manual.
	ReplaceMonths(
		ctx context.Context,
		establishmentID uint,
		months []string,
		releasedAt time.Time,
	) ([]string, error)

	// ListActive lista as políticas ativas de todos os tenants, para o
	// tick diário de liberação.
	ListActive(ctx context.Context) ([]models.AgendaReleasePolicy, error)

	ListReleases(ctx context.Context, establishmentID uint) ([]models.AgendaRelease, error)
}

const (
	ReleaseTypeAutomatic = "automatic"
	ReleaseTypeManual    = "manual"
)
