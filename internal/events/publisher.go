package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	TypeAppointmentChange = "appointment_change"
	TypeAgendaReleased    = "agenda_released"
)

// Event é a notificação publicada para a camada de fan-out
// (invalidadores de cache, notificadores) via pub/sub.
type Event struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	EstablishmentID uint      `json:"establishment_id"`
	OccurredAt      time.Time `json:"occurred_at"`

	AppointmentID uint   `json:"appointment_id,omitempty"`
	Status        string `json:"status,omitempty"`

	Months      []string `json:"months,omitempty"`
	ReleaseType string   `json:"release_type,omitempty"`
}

// Publisher envia eventos de forma assíncrona para um canal Redis por
// tenant. Sem Redis configurado, degrada para log local — a API nunca
// depende do sink para responder.
type Publisher struct {
	rdb   *redis.Client
	queue chan Event
}

func NewPublisher(rdb *redis.Client) *Publisher {
	p := &Publisher{
		rdb:   rdb,
		queue: make(chan Event, 256),
	}

	go p.worker()
	return p
}

func (p *Publisher) worker() {
	for ev := range p.queue {
		payload, err := json.Marshal(ev)
		if err != nil {
			log.Println("event marshal error:", err)
			continue
		}

		if p.rdb == nil {
			log.Printf("event (no redis): %s", payload)
			continue
		}

		channel := fmt.Sprintf("agenda:events:%d", ev.EstablishmentID)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
			log.Println("event publish error:", err)
		}
		cancel()
	}
}

func (p *Publisher) publish(ev Event) {
	if p == nil {
		return
	}

	ev.ID = uuid.NewString()
	ev.OccurredAt = time.Now().UTC()

	select {
	case p.queue <- ev:
	default:
		// fila cheia → descartamos o evento (nunca quebrar API)
		log.Println("event queue full, dropping event")
	}
}

func (p *Publisher) AppointmentChanged(establishmentID, appointmentID uint, status string) {
	p.publish(Event{
		Type:            TypeAppointmentChange,
		EstablishmentID: establishmentID,
		AppointmentID:   appointmentID,
		Status:          status,
	})
}

func (p *Publisher) AgendaReleased(establishmentID uint, months []string, releaseType string) {
	p.publish(Event{
		Type:            TypeAgendaReleased,
		EstablishmentID: establishmentID,
		Months:          months,
		ReleaseType:     releaseType,
	})
}
