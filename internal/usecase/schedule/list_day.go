package schedule

import (
	"context"
	"time"

	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/dto"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/timezone"
)

type ListDayAgenda struct {
	rules  domain.Rules
	ledger domain.Ledger
}

func NewListDayAgenda(rules domain.Rules, ledger domain.Ledger) *ListDayAgenda {
	return &ListDayAgenda{rules: rules, ledger: ledger}
}

func (uc *ListDayAgenda) Execute(
	ctx context.Context,
	establishmentID uint,
	staffID uint,
	date time.Time,
) ([]dto.AgendaItemDTO, error) {

	est, err := uc.rules.GetEstablishmentByID(ctx, establishmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("establishment_not_found")
	}

	loc := timezone.Location(est.Timezone)

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.ledger.ListForPeriod(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AgendaItemDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AgendaItemDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			Channel:     ap.Channel,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
		})
	}

	return out, nil
}
