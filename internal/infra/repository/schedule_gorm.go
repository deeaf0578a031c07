package repository

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/models"
)

// ScheduleGormRepository implementa as duas faces de persistência do
// núcleo: regras de calendário (leitura) e livro de agendamentos.
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Establishment / Staff / Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetEstablishmentByID(
	ctx context.Context,
	id uint,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).First(&est, id).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *ScheduleGormRepository) GetEstablishmentBySlug(
	ctx context.Context,
	slug string,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&est).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *ScheduleGormRepository) GetStaff(
	ctx context.Context,
	establishmentID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ? AND active = true", staffID, establishmentID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	establishmentID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ? AND active = true", serviceID, establishmentID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ScheduleGormRepository) IsStaffEligible(
	ctx context.Context,
	serviceID uint,
	staffID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("service_staff").
		Where("service_id = ? AND staff_id = ?", serviceID, staffID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Calendar rules
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBusinessHours(
	ctx context.Context,
	establishmentID uint,
	weekday int,
) (*models.BusinessHours, error) {

	var bh models.BusinessHours
	err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND weekday = ?", establishmentID, weekday).
		First(&bh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// sem registro = fechado nesse dia
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &bh, nil
}

func (r *ScheduleGormRepository) GetStaffWorkingHours(
	ctx context.Context,
	establishmentID uint,
	staffID uint,
	weekday int,
) (*models.StaffWorkingHours, error) {

	var swh models.StaffWorkingHours
	err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND staff_id = ? AND weekday = ?", establishmentID, staffID, weekday).
		First(&swh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// sem registro = segue o expediente do estabelecimento
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &swh, nil
}

func (r *ScheduleGormRepository) HasTimeOff(
	ctx context.Context,
	establishmentID uint,
	staffID uint,
	date time.Time,
) (bool, error) {

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StaffTimeOff{}).
		Where(
			"establishment_id = ? AND staff_id = ? AND start_date <= ? AND end_date >= ?",
			establishmentID, staffID, day, day,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ScheduleGormRepository) GetOrCreateClient(
	ctx context.Context,
	establishmentID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND phone = ?", establishmentID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		EstablishmentID: establishmentID,
		Name:            name,
		Phone:           phone,
		Email:           email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *ScheduleGormRepository) ListOccupying(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID, domain.OccupyingStatuses, end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) AssertFree(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID, domain.OccupyingStatuses, end, start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("slot_unavailable")
	}

	return nil
}

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	establishmentID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND establishment_id = ?", appointmentID, establishmentID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) ListForPeriod(
	ctx context.Context,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"staff_id = ? AND start_time >= ? AND start_time < ?",
			staffID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Serialized abre a transação de admissão e toma o advisory lock
// transacional por (tenant, profissional). O lock serializa inclusive
// a ausência de linhas — algo que FOR UPDATE sozinho não cobre — e é
// liberado junto com o commit/rollback.
func (r *ScheduleGormRepository) Serialized(
	ctx context.Context,
	establishmentID uint,
	staffID uint,
	fn func(ctx context.Context, tx domain.Ledger) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?)",
			admissionLockKey(establishmentID, staffID),
		).Error; err != nil {
			return err
		}

		return fn(ctx, &ScheduleGormRepository{db: tx})
	})
}

func admissionLockKey(establishmentID, staffID uint) int64 {
	h := fnv.New64a()
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(establishmentID >> (8 * i))
		buf[8+i] = byte(staffID >> (8 * i))
	}
	h.Write(buf[:])
	return int64(h.Sum64())
}

// Compile-time checks
var (
	_ domain.Rules  = (*ScheduleGormRepository)(nil)
	_ domain.Ledger = (*ScheduleGormRepository)(nil)
)
