package models

import "time"

// BusinessHours define o expediente do estabelecimento por dia da semana.
// Ausência de registro para um weekday significa fechado naquele dia.
type BusinessHours struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	EstablishmentID uint `gorm:"index:idx_business_hours_day,unique" json:"establishment_id"`

	Weekday int `gorm:"index:idx_business_hours_day,unique" json:"weekday"`

	IsOpen    bool   `json:"is_open"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	IsHoliday bool   `json:"is_holiday"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
