package agenda

import (
	"context"
	"time"

	domain "github.com/BelezaPro/agenda-core/internal/domain/agenda"
	"github.com/BelezaPro/agenda-core/internal/events"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/models"
)

// Engine mantém, por tenant, quais meses futuros estão liberados para
// agendamento por canais automatizados, e avança esse conjunto no dia
// configurado de cada mês.
type Engine struct {
	store  domain.PolicyStore
	events *events.Publisher
}

func NewEngine(store domain.PolicyStore, publisher *events.Publisher) *Engine {
	return &Engine{store: store, events: publisher}
}

// IsMonthReleased responde o gate da admissão: sem política, ou com a
// política desativada, todo mês é liberado.
func (e *Engine) IsMonthReleased(
	ctx context.Context,
	establishmentID uint,
	monthKey string,
) (bool, error) {

	p, err := e.store.GetPolicy(ctx, establishmentID)
	if err != nil {
		return false, err
	}
	if p == nil || !p.IsActive {
		return true, nil
	}

	return p.HasMonth(monthKey), nil
}

// AdvanceIfDue é o tick agendado, idempotente: só dispara no
// releaseDay; o alvo é today + interval meses; alvo já liberado é
// no-op sem novo registro no histórico. Retorna o mês liberado, ou ""
// quando nada mudou.
func (e *Engine) AdvanceIfDue(
	ctx context.Context,
	establishmentID uint,
	today time.Time,
) (string, error) {

	p, err := e.store.GetPolicy(ctx, establishmentID)
	if err != nil {
		return "", err
	}
	if p == nil || !p.IsActive {
		return "", nil
	}

	if today.Day() != p.ReleaseDay {
		return "", nil
	}

	target := domain.TargetMonth(today, p.ReleaseInterval)
	if p.HasMonth(target) {
		return "", nil
	}

	// CAS no store: sob corrida, só um tick adiciona e loga
	added, err := e.store.ReleaseMonths(
		ctx,
		establishmentID,
		[]string{target},
		domain.ReleaseTypeAutomatic,
		today,
	)
	if err != nil {
		return "", err
	}
	if len(added) == 0 {
		return "", nil
	}

	e.events.AgendaReleased(establishmentID, added, domain.ReleaseTypeAutomatic)

	return target, nil
}

// Recalculate reconstrói o conjunto liberado a partir dos parâmetros
// vigentes da política — função pura da data atual + (interval, day),
// aplicada após edição manual da política.
func (e *Engine) Recalculate(
	ctx context.Context,
	establishmentID uint,
	today time.Time,
) ([]string, error) {

	p, err := e.store.GetPolicy(ctx, establishmentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, httperr.ErrBusiness("policy_not_found")
	}

	months := domain.OpenMonths(today, p.ReleaseInterval, p.ReleaseDay)

	if _, err := e.store.ReplaceMonths(ctx, establishmentID, months, today); err != nil {
		return nil, err
	}

	e.events.AgendaReleased(establishmentID, months, domain.ReleaseTypeManual)

	return months, nil
}

// SetPolicy cria ou atualiza os parâmetros. Não recalcula o conjunto
// liberado: o chamador decide quando disparar Recalculate.
func (e *Engine) SetPolicy(
	ctx context.Context,
	establishmentID uint,
	releaseInterval int,
	releaseDay int,
	isActive bool,
) (*models.AgendaReleasePolicy, error) {

	if releaseInterval < 1 || releaseInterval > 12 {
		return nil, httperr.ErrBusiness("invalid_release_interval")
	}
	if releaseDay < 1 || releaseDay > 31 {
		return nil, httperr.ErrBusiness("invalid_release_day")
	}

	p, err := e.store.GetPolicy(ctx, establishmentID)
	if err != nil {
		return nil, err
	}

	if p == nil {
		p = &models.AgendaReleasePolicy{
			EstablishmentID: establishmentID,
		}
		p.SetMonths([]string{})
	}

	p.ReleaseInterval = releaseInterval
	p.ReleaseDay = releaseDay
	p.IsActive = isActive

	if err := e.store.SavePolicy(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetPolicy expõe a política vigente para a API de gestão.
func (e *Engine) GetPolicy(
	ctx context.Context,
	establishmentID uint,
) (*models.AgendaReleasePolicy, error) {

	p, err := e.store.GetPolicy(ctx, establishmentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, httperr.ErrBusiness("policy_not_found")
	}
	return p, nil
}
