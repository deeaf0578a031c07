package schedule

import (
	"context"
	"time"

	"github.com/BelezaPro/agenda-core/internal/audit"
	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/events"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/models"
	"github.com/BelezaPro/agenda-core/internal/timezone"
)

// TransitionAppointment aplica as mudanças de estado do ciclo de vida.
// Sempre relê o registro antes de validar a transição — o status atual
// é que decide se o horário continua ocupado.
type TransitionAppointment struct {
	rules  domain.Rules
	ledger domain.Ledger
	events *events.Publisher
	audit  *audit.Dispatcher
}

func NewTransitionAppointment(
	rules domain.Rules,
	ledger domain.Ledger,
	publisher *events.Publisher,
	dispatcher *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		rules:  rules,
		ledger: ledger,
		events: publisher,
		audit:  dispatcher,
	}
}

func (uc *TransitionAppointment) Confirm(
	ctx context.Context,
	establishmentID, staffID, appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, establishmentID, staffID, appointmentID, "appointment_confirmed",
		func(ap *models.Appointment, now time.Time) error {
			if err := domain.CanConfirm(domain.Status(ap.Status)); err != nil {
				return err
			}
			ap.Status = string(domain.StatusConfirmed)
			return nil
		})
}

func (uc *TransitionAppointment) Reject(
	ctx context.Context,
	establishmentID, staffID, appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, establishmentID, staffID, appointmentID, "appointment_rejected",
		func(ap *models.Appointment, now time.Time) error {
			if err := domain.CanReject(domain.Status(ap.Status)); err != nil {
				return err
			}
			ap.Status = string(domain.StatusRejected)
			return nil
		})
}

func (uc *TransitionAppointment) Cancel(
	ctx context.Context,
	establishmentID, staffID, appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, establishmentID, staffID, appointmentID, "appointment_cancelled",
		func(ap *models.Appointment, now time.Time) error {
			if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
				return err
			}
			ap.Status = string(domain.StatusCancelled)
			ap.CancelledAt = &now
			return nil
		})
}

func (uc *TransitionAppointment) Complete(
	ctx context.Context,
	establishmentID, staffID, appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, establishmentID, staffID, appointmentID, "appointment_completed",
		func(ap *models.Appointment, now time.Time) error {
			if err := domain.CanComplete(domain.Status(ap.Status)); err != nil {
				return err
			}
			ap.Status = string(domain.StatusCompleted)
			ap.CompletedAt = &now
			return nil
		})
}

func (uc *TransitionAppointment) apply(
	ctx context.Context,
	establishmentID, staffID, appointmentID uint,
	action string,
	change func(ap *models.Appointment, now time.Time) error,
) (*models.Appointment, error) {

	est, err := uc.rules.GetEstablishmentByID(ctx, establishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	ap, err := uc.ledger.GetAppointment(ctx, establishmentID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(est.Timezone)
	if err := change(ap, now); err != nil {
		return nil, err
	}

	if err := uc.ledger.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.AppointmentChanged(establishmentID, ap.ID, ap.Status)

	uc.audit.Dispatch(audit.Event{
		EstablishmentID: establishmentID,
		StaffID:         &staffID,
		Action:          action,
		Entity:          "appointment",
		EntityID:        &ap.ID,
	})

	return ap, nil
}
