package validators

import "time"

// IsClock valida um horário de parede "HH:MM".
func IsClock(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// IsClockRange valida abertura estritamente anterior ao fechamento,
// ambos no mesmo dia (sem virada de meia-noite).
func IsClockRange(open, close string) bool {
	o, err := time.Parse("15:04", open)
	if err != nil {
		return false
	}
	c, err := time.Parse("15:04", close)
	if err != nil {
		return false
	}
	return o.Before(c)
}
