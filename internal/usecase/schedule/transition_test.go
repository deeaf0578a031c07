package schedule

import (
	"context"
	"testing"

	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/models"
)

func seedAppointment(t *testing.T, ledger *fakeLedger, status domain.Status) *models.Appointment {
	t.Helper()

	ap := &models.Appointment{
		EstablishmentID: fixtureEstID,
		StaffID:         fixtureStaffID,
		StartTime:       fixtureAt("10:00"),
		EndTime:         fixtureAt("10:30"),
		Status:          string(status),
		Channel:         string(domain.ChannelBot),
	}
	if err := ledger.CreateAppointment(context.Background(), ap); err != nil {
		t.Fatalf("seed falhou: %v", err)
	}
	return ap
}

func TestConfirmPendingAppointment(t *testing.T) {
	rules, ledger := newFixture()
	ap := seedAppointment(t, ledger, domain.StatusPending)

	uc := NewTransitionAppointment(rules, ledger, nil, nil)
	ctx := context.Background()

	got, err := uc.Confirm(ctx, fixtureEstID, fixtureStaffID, ap.ID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Fatalf("esperava confirmed, veio %s", got.Status)
	}

	// confirmado não pode ser confirmado de novo
	_, err = uc.Confirm(ctx, fixtureEstID, fixtureStaffID, ap.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("esperava invalid_state, veio %v", err)
	}
}

func TestRejectPendingAppointment(t *testing.T) {
	rules, ledger := newFixture()
	ap := seedAppointment(t, ledger, domain.StatusPending)

	uc := NewTransitionAppointment(rules, ledger, nil, nil)

	got, err := uc.Reject(context.Background(), fixtureEstID, fixtureStaffID, ap.ID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.Status != string(domain.StatusRejected) {
		t.Fatalf("esperava rejected, veio %s", got.Status)
	}
}

func TestRejectOnlyFromPending(t *testing.T) {
	rules, ledger := newFixture()
	ap := seedAppointment(t, ledger, domain.StatusScheduled)

	uc := NewTransitionAppointment(rules, ledger, nil, nil)

	_, err := uc.Reject(context.Background(), fixtureEstID, fixtureStaffID, ap.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("esperava invalid_state, veio %v", err)
	}
}

func TestCompleteScheduledAppointment(t *testing.T) {
	rules, ledger := newFixture()
	ap := seedAppointment(t, ledger, domain.StatusScheduled)

	uc := NewTransitionAppointment(rules, ledger, nil, nil)

	got, err := uc.Complete(context.Background(), fixtureEstID, fixtureStaffID, ap.ID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.Status != string(domain.StatusCompleted) {
		t.Fatalf("esperava completed, veio %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatalf("conclusão devia carimbar CompletedAt")
	}
}

func TestCompletePendingIsInvalid(t *testing.T) {
	rules, ledger := newFixture()
	ap := seedAppointment(t, ledger, domain.StatusPending)

	uc := NewTransitionAppointment(rules, ledger, nil, nil)

	_, err := uc.Complete(context.Background(), fixtureEstID, fixtureStaffID, ap.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("pendente não pode concluir direto, veio %v", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	rules, ledger := newFixture()
	ap := seedAppointment(t, ledger, domain.StatusConfirmed)

	uc := NewTransitionAppointment(rules, ledger, nil, nil)
	ctx := context.Background()

	got, err := uc.Cancel(ctx, fixtureEstID, fixtureStaffID, ap.ID)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.Status != string(domain.StatusCancelled) {
		t.Fatalf("esperava cancelled, veio %s", got.Status)
	}
	if got.CancelledAt == nil {
		t.Fatalf("cancelamento devia carimbar CancelledAt")
	}

	// cancelado libera o intervalo: nova admissão no mesmo horário passa
	admit := newAdmitUC(rules, ledger, nil)
	if _, err := admit.Execute(ctx, admitInput("10:00", domain.ChannelAdmin)); err != nil {
		t.Fatalf("horário cancelado devia aceitar nova admissão: %v", err)
	}

	// e cancelar de novo é inválido
	_, err = uc.Cancel(ctx, fixtureEstID, fixtureStaffID, ap.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("esperava invalid_state, veio %v", err)
	}
}

func TestTransitionUnknownAppointment(t *testing.T) {
	rules, ledger := newFixture()

	uc := NewTransitionAppointment(rules, ledger, nil, nil)

	_, err := uc.Confirm(context.Background(), fixtureEstID, fixtureStaffID, 999)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("esperava appointment_not_found, veio %v", err)
	}
}
