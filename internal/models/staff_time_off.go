package models

import "time"

// StaffTimeOff é um afastamento do profissional (férias, licença).
// O intervalo de datas é inclusivo nas duas pontas e zera qualquer
// disponibilidade, mesmo com working hours cadastrado.
type StaffTimeOff struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"index" json:"establishment_id"`
	StaffID         uint `gorm:"index" json:"staff_id"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Type  string `gorm:"size:30;default:'vacation'" json:"type"`
	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
