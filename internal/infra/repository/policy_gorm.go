package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BelezaPro/agenda-core/internal/domain/agenda"
	"github.com/BelezaPro/agenda-core/internal/models"
)

type PolicyGormStore struct {
	db *gorm.DB
}

func NewPolicyGormStore(db *gorm.DB) *PolicyGormStore {
	return &PolicyGormStore{db: db}
}

func (s *PolicyGormStore) GetPolicy(
	ctx context.Context,
	establishmentID uint,
) (*models.AgendaReleasePolicy, error) {

	var p models.AgendaReleasePolicy
	err := s.db.WithContext(ctx).
		Where("establishment_id = ?", establishmentID).
		Order("id DESC").
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *PolicyGormStore) SavePolicy(
	ctx context.Context,
	p *models.AgendaReleasePolicy,
) error {
	return s.db.WithContext(ctx).Save(p).Error
}

// ReleaseMonths relê a política sob FOR UPDATE, adiciona o que ainda
// falta e grava o registro de liberação na mesma transação. Ticks
// duplicados do mesmo dia perdem a corrida pelo lock e viram no-op.
func (s *PolicyGormStore) ReleaseMonths(
	ctx context.Context,
	establishmentID uint,
	months []string,
	releaseType string,
	releasedAt time.Time,
) ([]string, error) {

	var added []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.AgendaReleasePolicy
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("establishment_id = ?", establishmentID).
			Order("id DESC").
			First(&p).Error; err != nil {
			return err
		}

		current := p.Months()
		for _, m := range months {
			if !domain.ContainsMonth(current, m) {
				current = append(current, m)
				added = append(added, m)
			}
		}

		if len(added) == 0 {
			return nil
		}

		p.SetMonths(current)
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		return tx.Create(&models.AgendaRelease{
			EstablishmentID: establishmentID,
			ReleaseDate:     releasedAt,
			ReleasedMonths:  monthsJSON(added),
			Type:            releaseType,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

func (s *PolicyGormStore) ReplaceMonths(
	ctx context.Context,
	establishmentID uint,
	months []string,
	releasedAt time.Time,
) ([]string, error) {

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.AgendaReleasePolicy
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("establishment_id = ?", establishmentID).
			Order("id DESC").
			First(&p).Error; err != nil {
			return err
		}

		p.SetMonths(months)
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		return tx.Create(&models.AgendaRelease{
			EstablishmentID: establishmentID,
			ReleaseDate:     releasedAt,
			ReleasedMonths:  monthsJSON(months),
			Type:            domain.ReleaseTypeManual,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return months, nil
}

func (s *PolicyGormStore) ListActive(
	ctx context.Context,
) ([]models.AgendaReleasePolicy, error) {

	var policies []models.AgendaReleasePolicy
	if err := s.db.WithContext(ctx).
		Where("is_active = true").
		Find(&policies).Error; err != nil {
		return nil, err
	}

	return policies, nil
}

func (s *PolicyGormStore) ListReleases(
	ctx context.Context,
	establishmentID uint,
) ([]models.AgendaRelease, error) {

	var releases []models.AgendaRelease
	if err := s.db.WithContext(ctx).
		Where("establishment_id = ?", establishmentID).
		Order("id DESC").
		Find(&releases).Error; err != nil {
		return nil, err
	}

	return releases, nil
}

func monthsJSON(months []string) datatypes.JSON {
	b, _ := json.Marshal(months)
	return datatypes.JSON(b)
}

var _ domain.PolicyStore = (*PolicyGormStore)(nil)
