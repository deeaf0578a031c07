package models

import "time"

type Establishment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:64" json:"timezone"`

	// Canal automatizado (bot de mensageria): token de integração e
	// status inicial dos agendamentos criados por esse canal.
	BotToken         string `gorm:"size:64;index" json:"-"`
	BotBookingStatus string `gorm:"size:20;default:'pending'" json:"bot_booking_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
