package agenda

import "time"

// Chave de mês usada na política de liberação: "YYYY-MM".
const MonthKeyLayout = "2006-01"

func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// AddMonths soma meses ancorando no dia 1, evitando a normalização de
// fim de mês do AddDate (31/jan + 1 mês não pode virar março).
func AddMonths(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}

// TargetMonth é o mês liberado por um ciclo disparado em `today`:
// today + interval meses (interval=2, today=2025-07-28 -> "2025-09").
func TargetMonth(today time.Time, interval int) string {
	return MonthKey(AddMonths(today, interval))
}

// OpenMonths reconstrói deterministicamente o conjunto de meses que
// deveria estar liberado sob os parâmetros atuais: do mês corrente até
// o último alvo já disparado. Antes do releaseDay do mês corrente, o
// ciclo deste mês ainda não ocorreu e o último alvo recua um mês.
// Meses passados ficam de fora: não recebem novos agendamentos.
func OpenMonths(today time.Time, interval, releaseDay int) []string {
	last := interval
	if today.Day() < releaseDay {
		last--
	}
	if last < 0 {
		last = 0
	}

	months := make([]string, 0, last+1)
	for i := 0; i <= last; i++ {
		months = append(months, MonthKey(AddMonths(today, i)))
	}
	return months
}

func ContainsMonth(months []string, key string) bool {
	for _, m := range months {
		if m == key {
			return true
		}
	}
	return false
}
