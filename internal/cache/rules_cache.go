package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/models"
)

// RulesCache decora schedule.Rules com cache Redis de TTL curto para
// as regras de calendário (read-mostly). A admissão de agendamentos
// NUNCA passa por aqui: ela relê as regras dentro da transação, então
// o cache só pode deixar a grade de leitura levemente defasada.
//
// Invalidação por versão: cada escrita de regra incrementa a versão
// do tenant, e a versão participa da chave.
type RulesCache struct {
	inner schedule.Rules
	rdb   *redis.Client
	ttl   time.Duration
}

func NewRulesCache(inner schedule.Rules, rdb *redis.Client, ttl time.Duration) *RulesCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &RulesCache{inner: inner, rdb: rdb, ttl: ttl}
}

// Invalidate descarta todas as entradas do tenant.
func (c *RulesCache) Invalidate(ctx context.Context, establishmentID uint) {
	if c.rdb == nil {
		return
	}
	c.rdb.Incr(ctx, fmt.Sprintf("rules:ver:%d", establishmentID))
}

func (c *RulesCache) version(ctx context.Context, establishmentID uint) string {
	v, err := c.rdb.Get(ctx, fmt.Sprintf("rules:ver:%d", establishmentID)).Result()
	if err != nil {
		return "0"
	}
	return v
}

// fetch resolve via cache; o valor em cache pode ser "null" (registro
// ausente), que também vale a pena lembrar.
func fetch[T any](
	ctx context.Context,
	c *RulesCache,
	establishmentID uint,
	key string,
	load func() (*T, error),
) (*T, error) {

	if c.rdb == nil {
		return load()
	}

	full := fmt.Sprintf("rules:%d:v%s:%s", establishmentID, c.version(ctx, establishmentID), key)

	if raw, err := c.rdb.Get(ctx, full).Result(); err == nil {
		var out *T
		if err := json.Unmarshal([]byte(raw), &out); err == nil {
			return out, nil
		}
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		c.rdb.Set(ctx, full, b, c.ttl)
	}

	return out, nil
}

func (c *RulesCache) GetBusinessHours(ctx context.Context, establishmentID uint, weekday int) (*models.BusinessHours, error) {
	return fetch(ctx, c, establishmentID, fmt.Sprintf("bh:%d", weekday), func() (*models.BusinessHours, error) {
		return c.inner.GetBusinessHours(ctx, establishmentID, weekday)
	})
}

func (c *RulesCache) GetStaffWorkingHours(ctx context.Context, establishmentID, staffID uint, weekday int) (*models.StaffWorkingHours, error) {
	return fetch(ctx, c, establishmentID, fmt.Sprintf("swh:%d:%d", staffID, weekday), func() (*models.StaffWorkingHours, error) {
		return c.inner.GetStaffWorkingHours(ctx, establishmentID, staffID, weekday)
	})
}

func (c *RulesCache) HasTimeOff(ctx context.Context, establishmentID, staffID uint, date time.Time) (bool, error) {
	// dependente da data consultada; barato o suficiente para ir
	// sempre ao banco
	return c.inner.HasTimeOff(ctx, establishmentID, staffID, date)
}

func (c *RulesCache) GetEstablishmentByID(ctx context.Context, id uint) (*models.Establishment, error) {
	return c.inner.GetEstablishmentByID(ctx, id)
}

func (c *RulesCache) GetEstablishmentBySlug(ctx context.Context, slug string) (*models.Establishment, error) {
	return c.inner.GetEstablishmentBySlug(ctx, slug)
}

func (c *RulesCache) GetStaff(ctx context.Context, establishmentID, staffID uint) (*models.Staff, error) {
	return c.inner.GetStaff(ctx, establishmentID, staffID)
}

func (c *RulesCache) GetService(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
	return c.inner.GetService(ctx, establishmentID, serviceID)
}

func (c *RulesCache) IsStaffEligible(ctx context.Context, serviceID, staffID uint) (bool, error) {
	return c.inner.IsStaffEligible(ctx, serviceID, staffID)
}

var _ schedule.Rules = (*RulesCache)(nil)
