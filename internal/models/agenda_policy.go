package models

import (
	"encoding/json"
	"sort"
	"time"

	"gorm.io/datatypes"
)

// AgendaReleasePolicy controla até onde canais automatizados podem
// agendar: só meses presentes em ReleasedMonths ("YYYY-MM") aceitam
// novos agendamentos via bot. Com IsActive=false a trava é ignorada.
type AgendaReleasePolicy struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"index" json:"establishment_id"`

	ReleaseInterval int `json:"release_interval"`
	ReleaseDay      int `json:"release_day"`

	ReleasedMonths datatypes.JSON `json:"released_months"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *AgendaReleasePolicy) Months() []string {
	if len(p.ReleasedMonths) == 0 {
		return nil
	}

	var months []string
	if err := json.Unmarshal(p.ReleasedMonths, &months); err != nil {
		return nil
	}
	return months
}

func (p *AgendaReleasePolicy) SetMonths(months []string) {
	sort.Strings(months)
	b, _ := json.Marshal(months)
	p.ReleasedMonths = datatypes.JSON(b)
}

func (p *AgendaReleasePolicy) HasMonth(key string) bool {
	for _, m := range p.Months() {
		if m == key {
			return true
		}
	}
	return false
}

// AgendaRelease é o histórico de liberações (append-only).
type AgendaRelease struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"index" json:"establishment_id"`

	ReleaseDate    time.Time      `json:"release_date"`
	ReleasedMonths datatypes.JSON `json:"released_months"`

	// automatic | manual
	Type string `gorm:"size:20" json:"type"`

	CreatedAt time.Time `json:"created_at"`
}
