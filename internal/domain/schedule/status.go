package schedule

import "github.com/BelezaPro/agenda-core/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Occupies diz se o status ainda bloqueia o horário no calendário.
// Concluídos, rejeitados e cancelados liberam o intervalo.
func (s Status) Occupies() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusConfirmed:
		return true
	}
	return false
}

// OccupyingStatuses é a versão para cláusulas SQL `status IN ?`.
var OccupyingStatuses = []string{
	string(StatusPending),
	string(StatusScheduled),
	string(StatusConfirmed),
}

// ===============================
// Channel
// ===============================

type Channel string

const (
	ChannelAdmin  Channel = "admin"
	ChannelClient Channel = "client"
	ChannelBot    Channel = "bot"
)

// Automated indica canal externo automatizado, sujeito à liberação
// de agenda por mês.
func (c Channel) Automated() bool {
	return c == ChannelBot
}

// ===============================
// Transitions
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.Occupies() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
