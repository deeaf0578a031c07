package schedule

import (
	"context"
	"testing"

	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/models"
)

func TestListDayAgenda(t *testing.T) {
	rules, ledger := newFixture()
	ctx := context.Background()

	// dois no dia (um cancelado) e um no dia seguinte
	seedAppointment(t, ledger, domain.StatusScheduled)

	cancelled := &models.Appointment{
		EstablishmentID: fixtureEstID,
		StaffID:         fixtureStaffID,
		StartTime:       fixtureAt("14:00"),
		EndTime:         fixtureAt("14:30"),
		Status:          string(domain.StatusCancelled),
	}
	if err := ledger.CreateAppointment(ctx, cancelled); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}

	nextDay := &models.Appointment{
		EstablishmentID: fixtureEstID,
		StaffID:         fixtureStaffID,
		StartTime:       fixtureAt("10:00").AddDate(0, 0, 1),
		EndTime:         fixtureAt("10:30").AddDate(0, 0, 1),
		Status:          string(domain.StatusScheduled),
	}
	if err := ledger.CreateAppointment(ctx, nextDay); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}

	uc := NewListDayAgenda(rules, ledger)

	items, err := uc.Execute(ctx, fixtureEstID, fixtureStaffID, fixtureDay())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	// a agenda do dia mostra tudo que toca o dia, cancelados inclusive
	if len(items) != 2 {
		t.Fatalf("esperava 2 itens no dia, veio %d", len(items))
	}
	if !items[0].StartTime.Before(items[1].StartTime) {
		t.Fatalf("itens deviam vir ordenados por início")
	}
	if items[1].Status != string(domain.StatusCancelled) {
		t.Fatalf("cancelado aparece na agenda do dia, veio %s", items[1].Status)
	}

	var nextDayListed bool
	for _, it := range items {
		if it.StartTime.Day() != fixtureDay().Day() {
			nextDayListed = true
		}
	}
	if nextDayListed {
		t.Fatalf("agendamento de outro dia não entra na agenda do dia")
	}
}

func TestListDayAgendaEmpty(t *testing.T) {
	rules, ledger := newFixture()

	uc := NewListDayAgenda(rules, ledger)

	items, err := uc.Execute(context.Background(), fixtureEstID, fixtureStaffID, fixtureDay())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("dia vazio devia vir sem itens, veio %d", len(items))
	}
}
