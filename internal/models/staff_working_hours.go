package models

import "time"

// StaffWorkingHours restringe o expediente de um profissional dentro do
// horário do estabelecimento. Ausência de registro significa que o
// profissional segue o BusinessHours do dia.
type StaffWorkingHours struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"index" json:"establishment_id"`
	StaffID         uint `gorm:"index:idx_staff_hours_day,unique" json:"staff_id"`

	Weekday int `gorm:"index:idx_staff_hours_day,unique" json:"weekday"`

	IsAvailable bool   `json:"is_available"`
	OpenTime    string `gorm:"size:5" json:"open_time"`
	CloseTime   string `gorm:"size:5" json:"close_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
