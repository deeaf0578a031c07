package schedule

import (
	"context"
	"time"

	"github.com/BelezaPro/agenda-core/internal/audit"
	agendadomain "github.com/BelezaPro/agenda-core/internal/domain/agenda"
	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/events"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/models"
	"github.com/BelezaPro/agenda-core/internal/timezone"
	agendauc "github.com/BelezaPro/agenda-core/internal/usecase/agenda"
)

// ======================================================
// INPUT
// ======================================================

type AdmitBookingInput struct {
	EstablishmentID uint
	StaffID         uint
	ServiceID       uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date string // YYYY-MM-DD
	Time string // HH:MM

	Channel domain.Channel
	Notes   string
}

// ======================================================
// USE CASE
// ======================================================

// AdmitBooking é o único caminho de escrita que cria ocupação no
// calendário. A validação do slot e o insert acontecem dentro da
// fronteira serializada por (tenant, profissional) do Ledger, para que
// duas admissões concorrentes sobre intervalos sobrepostos nunca
// enxerguem as duas o horário livre.
type AdmitBooking struct {
	rules  domain.Rules
	ledger domain.Ledger
	agenda *agendauc.Engine
	events *events.Publisher
	audit  *audit.Dispatcher
}

func NewAdmitBooking(
	rules domain.Rules,
	ledger domain.Ledger,
	agenda *agendauc.Engine,
	publisher *events.Publisher,
	dispatcher *audit.Dispatcher,
) *AdmitBooking {
	return &AdmitBooking{
		rules:  rules,
		ledger: ledger,
		agenda: agenda,
		events: publisher,
		audit:  dispatcher,
	}
}

func (uc *AdmitBooking) Execute(
	ctx context.Context,
	in AdmitBookingInput,
) (*models.Appointment, error) {

	est, err := uc.rules.GetEstablishmentByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	loc := timezone.Location(est.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if start.Minute()%10 != 0 {
		// só inícios quantizados na granularidade da grade
		return nil, httperr.ErrBusiness("invalid_time")
	}

	svc, err := uc.rules.GetService(ctx, in.EstablishmentID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
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

	// Canal automatizado só agenda em mês liberado pela política
	if in.Channel.Automated() {
		released, err := uc.agenda.IsMonthReleased(
			ctx,
			in.EstablishmentID,
			agendadomain.MonthKey(start),
		)
		if err != nil {
			return nil, err
		}
		if !released {
			return nil, httperr.ErrBusiness("agenda_not_released")
		}
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	client, err := uc.ledger.GetOrCreateClient(
		ctx,
		in.EstablishmentID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		EstablishmentID: in.EstablishmentID,
		StaffID:         in.StaffID,
		ClientID:        client.ID,
		ServiceID:       svc.ID,
		StartTime:       start,
		EndTime:         end,
		Status:          string(initialStatus(in.Channel, est)),
		Channel:         string(in.Channel),
		Notes:           in.Notes,
	}

	err = uc.ledger.Serialized(ctx, in.EstablishmentID, in.StaffID, func(ctx context.Context, tx domain.Ledger) error {

		// Revalida o slot exato com as regras vigentes
		window, err := ResolveDayWindow(ctx, uc.rules, in.EstablishmentID, in.StaffID, dayOf(start))
		if err != nil {
			return err
		}

		if window.Closed ||
			start.Before(window.Open) ||
			end.After(window.Close) {
			return httperr.ErrBusiness("slot_unavailable")
		}

		// início precisa cair na grade ancorada na abertura da janela
		gridStart := domain.RoundUpToGrain(window.Open)
		if start.Before(gridStart) ||
			start.Sub(gridStart)%domain.SlotGranularity != 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if start.Before(timezone.NowIn(est.Timezone)) {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if err := tx.AssertFree(ctx, in.StaffID, start, end); err != nil {
			return err
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.events.AppointmentChanged(in.EstablishmentID, ap.ID, ap.Status)

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: in.EstablishmentID,
		Action:          "appointment_created",
		Entity:          "appointment",
		EntityID:        &ap.ID,
		Metadata: map[string]any{
			"channel": string(in.Channel),
			"start":   start,
			"end":     end,
		},
	})

	return ap, nil
}

// initialStatus resolve o status inicial pelo canal: bot segue a
// configuração do estabelecimento (pendente de confirmação por
// padrão), demais canais entram direto como scheduled.
func initialStatus(ch domain.Channel, est *models.Establishment) domain.Status {
	if ch.Automated() {
		if est.BotBookingStatus == string(domain.StatusScheduled) {
			return domain.StatusScheduled
		}
		return domain.StatusPending
	}
	return domain.StatusScheduled
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
