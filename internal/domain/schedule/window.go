package schedule

import (
	"time"

	"github.com/BelezaPro/agenda-core/internal/models"
)

// Granularidade da grade de horários: candidatos a cada 10 minutos.
const SlotGranularity = 10 * time.Minute

// DayWindow é a janela efetiva de atendimento de um profissional num
// dia: interseção do expediente do estabelecimento com o horário
// individual do profissional, quando cadastrado.
type DayWindow struct {
	Open   time.Time
	Close  time.Time
	Closed bool
}

// ParseClock converte "HH:MM" para um instante na data/fuso informados.
func ParseClock(hm string, date time.Time) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}

// ResolveWindow calcula a janela do dia. bh nil (sem registro para o
// weekday), dia fechado ou feriado fecham o dia inteiro. swh, quando
// presente, só estreita: vale o maior início e o menor fim.
func ResolveWindow(
	bh *models.BusinessHours,
	swh *models.StaffWorkingHours,
	date time.Time,
) DayWindow {

	closed := DayWindow{Closed: true}

	if bh == nil || !bh.IsOpen || bh.IsHoliday {
		return closed
	}

	open, ok := ParseClock(bh.OpenTime, date)
	if !ok {
		return closed
	}
	close, ok := ParseClock(bh.CloseTime, date)
	if !ok {
		return closed
	}
	if !open.Before(close) {
		return closed
	}

	if swh != nil {
		if !swh.IsAvailable {
			return closed
		}

		staffOpen, ok := ParseClock(swh.OpenTime, date)
		if !ok {
			return closed
		}
		staffClose, ok := ParseClock(swh.CloseTime, date)
		if !ok {
			return closed
		}

		if staffOpen.After(open) {
			open = staffOpen
		}
		if staffClose.Before(close) {
			close = staffClose
		}
		if !open.Before(close) {
			return closed
		}
	}

	return DayWindow{Open: open, Close: close}
}

// RoundUpToGrain arredonda para cima até o próximo múltiplo de 10
// minutos (09:05 -> 09:10; 09:00 permanece 09:00).
func RoundUpToGrain(t time.Time) time.Time {
	rounded := t.Truncate(SlotGranularity)
	if rounded.Before(t) {
		rounded = rounded.Add(SlotGranularity)
	}
	return rounded
}

// Overlaps testa sobreposição de intervalos semiabertos [aStart,aEnd)
// e [bStart,bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CoversDate diz se o afastamento cobre a data (intervalo inclusivo,
// comparado por dia no fuso da data).
func CoversDate(off *models.StaffTimeOff, date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	start := time.Date(
		off.StartDate.Year(), off.StartDate.Month(), off.StartDate.Day(),
		0, 0, 0, 0, date.Location(),
	)
	end := time.Date(
		off.EndDate.Year(), off.EndDate.Month(), off.EndDate.Day(),
		0, 0, 0, 0, date.Location(),
	)

	return !day.Before(start) && !day.After(end)
}
