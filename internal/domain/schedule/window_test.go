package schedule

import (
	"testing"
	"time"

	"github.com/BelezaPro/agenda-core/internal/models"
)

var testLoc = time.FixedZone("BRT", -3*3600)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, testLoc)
}

func at(date time.Time, hm string) time.Time {
	t, ok := ParseClock(hm, date)
	if !ok {
		panic("hora inválida no teste: " + hm)
	}
	return t
}

func openHours(open, close string) *models.BusinessHours {
	return &models.BusinessHours{IsOpen: true, OpenTime: open, CloseTime: close}
}

func TestParseClock(t *testing.T) {
	date := day(2030, time.January, 2)

	got, ok := ParseClock("09:30", date)
	if !ok {
		t.Fatalf("esperava parse válido")
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Fatalf("esperava 09:30, veio %s", got.Format("15:04"))
	}
	if got.Location() != testLoc {
		t.Fatalf("esperava manter o fuso da data")
	}

	if _, ok := ParseClock("9h30", date); ok {
		t.Fatalf("formato inválido não pode passar")
	}
}

func TestResolveWindowBusinessHoursOnly(t *testing.T) {
	date := day(2030, time.January, 2)

	w := ResolveWindow(openHours("09:00", "18:00"), nil, date)
	if w.Closed {
		t.Fatalf("dia com expediente não pode fechar")
	}
	if !w.Open.Equal(at(date, "09:00")) || !w.Close.Equal(at(date, "18:00")) {
		t.Fatalf("janela errada: %s-%s", w.Open.Format("15:04"), w.Close.Format("15:04"))
	}
}

func TestResolveWindowStaffNarrows(t *testing.T) {
	date := day(2030, time.January, 2)
	bh := openHours("09:00", "18:00")

	swh := &models.StaffWorkingHours{IsAvailable: true, OpenTime: "10:00", CloseTime: "16:00"}

	w := ResolveWindow(bh, swh, date)
	if w.Closed {
		t.Fatalf("não devia fechar")
	}
	if !w.Open.Equal(at(date, "10:00")) || !w.Close.Equal(at(date, "16:00")) {
		t.Fatalf("horário individual devia estreitar: %s-%s", w.Open.Format("15:04"), w.Close.Format("15:04"))
	}
}

func TestResolveWindowStaffNeverWidens(t *testing.T) {
	date := day(2030, time.January, 2)
	bh := openHours("09:00", "18:00")

	swh := &models.StaffWorkingHours{IsAvailable: true, OpenTime: "08:00", CloseTime: "20:00"}

	w := ResolveWindow(bh, swh, date)
	if !w.Open.Equal(at(date, "09:00")) || !w.Close.Equal(at(date, "18:00")) {
		t.Fatalf("horário individual nunca amplia o expediente: %s-%s",
			w.Open.Format("15:04"), w.Close.Format("15:04"))
	}
}

func TestResolveWindowClosedCases(t *testing.T) {
	date := day(2030, time.January, 2)

	cases := []struct {
		name string
		bh   *models.BusinessHours
		swh  *models.StaffWorkingHours
	}{
		{"sem registro de expediente", nil, nil},
		{"dia marcado fechado", &models.BusinessHours{IsOpen: false, OpenTime: "09:00", CloseTime: "18:00"}, nil},
		{"feriado", &models.BusinessHours{IsOpen: true, IsHoliday: true, OpenTime: "09:00", CloseTime: "18:00"}, nil},
		{"profissional indisponível", openHours("09:00", "18:00"), &models.StaffWorkingHours{IsAvailable: false}},
		{"janelas disjuntas", openHours("09:00", "12:00"), &models.StaffWorkingHours{IsAvailable: true, OpenTime: "14:00", CloseTime: "18:00"}},
		{"expediente invertido", openHours("18:00", "09:00"), nil},
	}

	for _, tc := range cases {
		if w := ResolveWindow(tc.bh, tc.swh, date); !w.Closed {
			t.Fatalf("%s: esperava dia fechado", tc.name)
		}
	}
}

func TestRoundUpToGrain(t *testing.T) {
	date := day(2030, time.January, 2)

	if got := RoundUpToGrain(at(date, "09:05")); !got.Equal(at(date, "09:10")) {
		t.Fatalf("09:05 devia arredondar para 09:10, veio %s", got.Format("15:04"))
	}
	if got := RoundUpToGrain(at(date, "09:00")); !got.Equal(at(date, "09:00")) {
		t.Fatalf("09:00 já está na grade, veio %s", got.Format("15:04"))
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	date := day(2030, time.January, 2)

	// [10:00,10:30) e [10:30,11:00) apenas se tocam
	if Overlaps(at(date, "10:00"), at(date, "10:30"), at(date, "10:30"), at(date, "11:00")) {
		t.Fatalf("intervalos adjacentes não sobrepõem")
	}
	if !Overlaps(at(date, "10:00"), at(date, "10:30"), at(date, "10:20"), at(date, "10:50")) {
		t.Fatalf("intervalos cruzados sobrepõem")
	}
	if !Overlaps(at(date, "10:00"), at(date, "11:00"), at(date, "10:20"), at(date, "10:40")) {
		t.Fatalf("intervalo contido sobrepõe")
	}
}

func TestCoversDateInclusive(t *testing.T) {
	off := &models.StaffTimeOff{
		StartDate: day(2030, time.January, 10),
		EndDate:   day(2030, time.January, 12),
	}

	if !CoversDate(off, day(2030, time.January, 10)) {
		t.Fatalf("primeiro dia do afastamento é coberto")
	}
	if !CoversDate(off, day(2030, time.January, 12)) {
		t.Fatalf("último dia do afastamento é coberto")
	}
	if CoversDate(off, day(2030, time.January, 13)) {
		t.Fatalf("dia seguinte ao afastamento está livre")
	}
	if CoversDate(off, day(2030, time.January, 9)) {
		t.Fatalf("dia anterior ao afastamento está livre")
	}
}
