package schedule

import (
	"testing"
	"time"
)

func slotByTime(t *testing.T, grid *Grid, hm string) Slot {
	t.Helper()
	for _, s := range grid.TimeSlots {
		if s.Time == hm {
			return s
		}
	}
	t.Fatalf("slot %s não encontrado na grade", hm)
	return Slot{}
}

func TestBuildGridFullDay(t *testing.T) {
	date := day(2030, time.January, 2)
	window := DayWindow{Open: at(date, "09:00"), Close: at(date, "18:00")}
	past := day(2000, time.January, 1)

	grid := BuildGrid(date, window, 30*time.Minute, nil, past)

	if grid.Closed {
		t.Fatalf("dia aberto não pode vir fechado")
	}
	if grid.Date != "2030-01-02" {
		t.Fatalf("data errada: %s", grid.Date)
	}
	if grid.BusinessHours == nil || grid.BusinessHours.Open != "09:00" || grid.BusinessHours.Close != "18:00" {
		t.Fatalf("janela divulgada errada: %+v", grid.BusinessHours)
	}

	// 09:00..17:50 a cada 10 minutos
	if len(grid.TimeSlots) != 54 {
		t.Fatalf("esperava 54 candidatos, veio %d", len(grid.TimeSlots))
	}
	if grid.TimeSlots[0].Time != "09:00" {
		t.Fatalf("primeiro candidato devia ser 09:00, veio %s", grid.TimeSlots[0].Time)
	}

	if !slotByTime(t, grid, "17:30").Available {
		t.Fatalf("17:30 + 30min cabe na janela")
	}
	if slotByTime(t, grid, "17:40").Available {
		t.Fatalf("17:40 + 30min estoura o fechamento")
	}
	if slotByTime(t, grid, "17:50").Available {
		t.Fatalf("17:50 + 30min estoura o fechamento")
	}
}

func TestBuildGridBusyMarking(t *testing.T) {
	date := day(2030, time.January, 2)
	window := DayWindow{Open: at(date, "09:00"), Close: at(date, "18:00")}
	past := day(2000, time.January, 1)

	busy := []Interval{{Start: at(date, "10:00"), End: at(date, "10:30")}}

	grid := BuildGrid(date, window, 30*time.Minute, busy, past)

	// candidatos cujo serviço de 30min invade [10:00,10:30)
	for _, hm := range []string{"09:40", "09:50", "10:00", "10:10", "10:20"} {
		s := slotByTime(t, grid, hm)
		if !s.IsBooked || s.Available {
			t.Fatalf("%s devia estar ocupado", hm)
		}
	}

	if s := slotByTime(t, grid, "09:30"); s.IsBooked || !s.Available {
		t.Fatalf("09:30 termina exatamente no início do ocupado e está livre")
	}
	if s := slotByTime(t, grid, "10:30"); s.IsBooked || !s.Available {
		t.Fatalf("10:30 começa exatamente no fim do ocupado e está livre")
	}
}

func TestBuildGridPastCutoff(t *testing.T) {
	date := day(2030, time.January, 2)
	window := DayWindow{Open: at(date, "09:00"), Close: at(date, "18:00")}
	now := at(date, "13:05")

	grid := BuildGrid(date, window, 30*time.Minute, nil, now)

	if s := slotByTime(t, grid, "13:00"); !s.IsPast || s.Available {
		t.Fatalf("13:00 já passou às 13:05")
	}
	if s := slotByTime(t, grid, "13:10"); s.IsPast || !s.Available {
		t.Fatalf("13:10 ainda não passou às 13:05")
	}
	if s := slotByTime(t, grid, "09:00"); !s.IsPast {
		t.Fatalf("início da manhã já passou")
	}
}

func TestBuildGridOddOpenAnchorsOnGrain(t *testing.T) {
	date := day(2030, time.January, 2)
	window := DayWindow{Open: at(date, "09:05"), Close: at(date, "12:00")}
	past := day(2000, time.January, 1)

	grid := BuildGrid(date, window, 30*time.Minute, nil, past)

	if grid.TimeSlots[0].Time != "09:10" {
		t.Fatalf("abertura fora da grade arredonda para cima: veio %s", grid.TimeSlots[0].Time)
	}
}

func TestBuildGridClosedDay(t *testing.T) {
	date := day(2030, time.January, 6)

	grid := BuildGrid(date, DayWindow{Closed: true}, 30*time.Minute, nil, day(2000, time.January, 1))

	if !grid.Closed {
		t.Fatalf("janela fechada produz grade fechada")
	}
	if len(grid.TimeSlots) != 0 {
		t.Fatalf("grade fechada não tem candidatos")
	}
	if grid.BusinessHours != nil {
		t.Fatalf("grade fechada não divulga expediente")
	}
}
