package scheduler

import (
	"context"
	"log"
	"time"

	agendadomain "github.com/BelezaPro/agenda-core/internal/domain/agenda"
	scheduledomain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/timezone"
	agendauc "github.com/BelezaPro/agenda-core/internal/usecase/agenda"
)

// ReleaseTicker percorre as políticas ativas e dispara o avanço de
// liberação de agenda. O avanço é idempotente por (tenant, dia), então
// o tick pode rodar com frequência maior que diária e em mais de uma
// instância ao mesmo tempo.
type ReleaseTicker struct {
	engine   *agendauc.Engine
	policies agendadomain.PolicyStore
	rules    scheduledomain.Rules
	interval time.Duration
}

func NewReleaseTicker(
	engine *agendauc.Engine,
	policies agendadomain.PolicyStore,
	rules scheduledomain.Rules,
	interval time.Duration,
) *ReleaseTicker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReleaseTicker{
		engine:   engine,
		policies: policies,
		rules:    rules,
		interval: interval,
	}
}

func (t *ReleaseTicker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	// passada imediata no boot, para não esperar um ciclo inteiro
	t.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

func (t *ReleaseTicker) tick(ctx context.Context) {
	policies, err := t.policies.ListActive(ctx)
	if err != nil {
		log.Println("release tick: list policies:", err)
		return
	}

	for _, p := range policies {
		est, err := t.rules.GetEstablishmentByID(ctx, p.EstablishmentID)
		if err != nil {
			log.Printf("release tick: establishment %d: %v", p.EstablishmentID, err)
			continue
		}

		today := timezone.NowIn(est.Timezone)

		released, err := t.engine.AdvanceIfDue(ctx, p.EstablishmentID, today)
		if err != nil {
			log.Printf("release tick: advance %d: %v", p.EstablishmentID, err)
			continue
		}

		if released != "" {
			log.Printf("release tick: establishment %d released %s", p.EstablishmentID, released)
		}
	}
}
