package schedule

import (
	"context"
	"time"

	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type GenerateSlotsInput struct {
	EstablishmentID uint
	StaffID         uint
	ServiceID       uint

	// Meia-noite da data consultada, no fuso do estabelecimento
	Date time.Time
}

// ======================================================
// USE CASE
// ======================================================

// GenerateSlots monta a grade de horários de um dia para um
// (profissional, serviço): candidatos a cada 10 minutos dentro da
// janela efetiva, marcados como passados, ocupados ou disponíveis.
type GenerateSlots struct {
	rules  domain.Rules
	ledger domain.Ledger
}

func NewGenerateSlots(rules domain.Rules, ledger domain.Ledger) *GenerateSlots {
	return &GenerateSlots{rules: rules, ledger: ledger}
}

func (uc *GenerateSlots) Execute(
	ctx context.Context,
	in GenerateSlotsInput,
) (*domain.Grid, error) {

	est, err := uc.rules.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	svc, err := uc.rules.GetService(ctx, in.EstablishmentID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if _, err := uc.rules.GetStaff(ctx, in.EstablishmentID, in.StaffID); err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	eligible, err := uc.rules.IsStaffEligible(ctx, svc.ID, in.StaffID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, httperr.ErrBusiness("staff_not_eligible")
	}

	window, err := ResolveDayWindow(ctx, uc.rules, in.EstablishmentID, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}
	if window.Closed {
		return domain.ClosedGrid(in.Date), nil
	}

	// Agendamentos ocupantes que tocam a janela do dia
	appointments, err := uc.ledger.ListOccupying(
		ctx,
		in.StaffID,
		window.Open,
		window.Close,
	)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(appointments))
	for _, ap := range appointments {
		busy = append(busy, domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}

	now := timezone.NowIn(est.Timezone)
	duration := time.Duration(svc.DurationMin) * time.Minute

	return domain.BuildGrid(in.Date, window, duration, busy, now), nil
}

// ResolveDayWindow aplica a precedência das regras de calendário:
// afastamento fecha o dia; senão, expediente do estabelecimento
// estreitado pelo horário individual do profissional.
func ResolveDayWindow(
	ctx context.Context,
	rules domain.Rules,
	establishmentID uint,
	staffID uint,
	date time.Time,
) (domain.DayWindow, error) {

	off, err := rules.HasTimeOff(ctx, establishmentID, staffID, date)
	if err != nil {
		return domain.DayWindow{}, err
	}
	if off {
		return domain.DayWindow{Closed: true}, nil
	}

	weekday := int(date.Weekday())

	bh, err := rules.GetBusinessHours(ctx, establishmentID, weekday)
	if err != nil {
		return domain.DayWindow{}, err
	}

	swh, err := rules.GetStaffWorkingHours(ctx, establishmentID, staffID, weekday)
	if err != nil {
		return domain.DayWindow{}, err
	}

	return domain.ResolveWindow(bh, swh, date), nil
}
