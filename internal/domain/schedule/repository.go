package schedule

import (
	"context"
	"time"

	"github.com/BelezaPro/agenda-core/internal/models"
)

// Rules é o acesso de leitura às regras de calendário do tenant:
// expediente, horário individual do profissional e afastamentos.
// Métodos de horas retornam (nil, nil) quando não há registro.
type Rules interface {
	GetEstablishmentByID(ctx context.Context, id uint) (*models.Establishment, error)

	GetEstablishmentBySlug(ctx context.Context, slug string) (*models.Establishment, error)

	GetStaff(ctx context.Context, establishmentID, staffID uint) (*models.Staff, error)

	GetService(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error)

	IsStaffEligible(ctx context.Context, serviceID, staffID uint) (bool, error)

	GetBusinessHours(ctx context.Context, establishmentID uint, weekday int) (*models.BusinessHours, error)

	GetStaffWorkingHours(ctx context.Context, establishmentID, staffID uint, weekday int) (*models.StaffWorkingHours, error)

	HasTimeOff(ctx context.Context, establishmentID, staffID uint, date time.Time) (bool, error)
}

// Ledger é o acesso ao livro de agendamentos.
type Ledger interface {
	GetOrCreateClient(
		ctx context.Context,
		establishmentID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// ListOccupying retorna agendamentos ocupantes (pending/scheduled/
	// confirmed) que sobrepõem [start, end), ordenados por início.
	ListOccupying(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// AssertFree falha com slot_unavailable se algum agendamento
	// ocupante sobrepõe [start, end).
	AssertFree(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) error

	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	GetAppointment(
		ctx context.Context,
		establishmentID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// Serialized executa fn dentro de uma fronteira transacional
	// serializada por (establishment, staff): duas admissões
	// concorrentes para o mesmo profissional nunca observam o mesmo
	// horário livre. Tudo ou nada.
	Serialized(
		ctx context.Context,
		establishmentID uint,
		staffID uint,
		fn func(ctx context.Context, tx Ledger) error,
	) error
}
