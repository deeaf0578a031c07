package handlers

import (
	"time"

	"github.com/BelezaPro/agenda-core/internal/models"
	"github.com/BelezaPro/agenda-core/internal/timezone"
)

// resolve o timezone oficial do estabelecimento
func locationFromEstablishment(est *models.Establishment) *time.Location {
	if est != nil {
		return timezone.Location(est.Timezone)
	}
	return timezone.Location("")
}

func parseDateInEstablishment(est *models.Establishment, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromEstablishment(est),
	)
}
