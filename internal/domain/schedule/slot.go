package schedule

import "time"

// Slot é um horário candidato da grade.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	IsPast    bool   `json:"is_past"`
	IsBooked  bool   `json:"is_booked"`
}

// Grid é a grade completa de um dia para um (profissional, serviço).
// Dia fechado retorna Closed=true e nenhum slot.
type Grid struct {
	Date          string         `json:"date"`
	BusinessHours *BusinessHours `json:"business_hours"`
	Closed        bool           `json:"closed"`
	TimeSlots     []Slot         `json:"time_slots"`
}

type BusinessHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Interval é um trecho já ocupado do calendário.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ClosedGrid monta a grade de um dia sem expediente.
func ClosedGrid(date time.Time) *Grid {
	return &Grid{
		Date:      date.Format("2006-01-02"),
		Closed:    true,
		TimeSlots: []Slot{},
	}
}

// BuildGrid enumera os candidatos da janela na granularidade fixa e
// marca cada um. Um slot só é available quando o serviço inteiro
// [t, t+duration) cabe na janela, t não passou e não há sobreposição
// com agendamento ocupante.
func BuildGrid(
	date time.Time,
	window DayWindow,
	duration time.Duration,
	busy []Interval,
	now time.Time,
) *Grid {

	if window.Closed {
		return ClosedGrid(date)
	}

	grid := &Grid{
		Date: date.Format("2006-01-02"),
		BusinessHours: &BusinessHours{
			Open:  window.Open.Format("15:04"),
			Close: window.Close.Format("15:04"),
		},
		TimeSlots: []Slot{},
	}

	for cur := RoundUpToGrain(window.Open); cur.Before(window.Close); cur = cur.Add(SlotGranularity) {
		end := cur.Add(duration)

		fits := !end.After(window.Close)
		isPast := cur.Before(now)

		isBooked := false
		for _, b := range busy {
			if Overlaps(cur, end, b.Start, b.End) {
				isBooked = true
				break
			}
		}

		grid.TimeSlots = append(grid.TimeSlots, Slot{
			Time:      cur.Format("15:04"),
			Available: fits && !isPast && !isBooked,
			IsPast:    isPast,
			IsBooked:  isBooked,
		})
	}

	return grid
}
