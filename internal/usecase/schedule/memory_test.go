package schedule

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	agendadomain "github.com/BelezaPro/agenda-core/internal/domain/agenda"
	domain "github.com/BelezaPro/agenda-core/internal/domain/schedule"
	"github.com/BelezaPro/agenda-core/internal/httperr"
	"github.com/BelezaPro/agenda-core/internal/models"
	"github.com/BelezaPro/agenda-core/internal/timezone"
)

var errNotFound = errors.New("registro não encontrado")

// ======================================================
// fakeRules — regras de calendário em memória
// ======================================================

type fakeRules struct {
	est        *models.Establishment
	staff      map[uint]*models.Staff
	services   map[uint]*models.Service
	eligible   map[uint]map[uint]bool // serviceID -> staffID
	business   map[int]*models.BusinessHours
	staffHours map[uint]map[int]*models.StaffWorkingHours
	timeOff    []models.StaffTimeOff
}

func (r *fakeRules) GetEstablishmentByID(ctx context.Context, id uint) (*models.Establishment, error) {
	if r.est == nil || r.est.ID != id {
		return nil, errNotFound
	}
	return r.est, nil
}

func (r *fakeRules) GetEstablishmentBySlug(ctx context.Context, slug string) (*models.Establishment, error) {
	if r.est == nil || r.est.Slug != slug {
		return nil, errNotFound
	}
	return r.est, nil
}

func (r *fakeRules) GetStaff(ctx context.Context, establishmentID, staffID uint) (*models.Staff, error) {
	s, ok := r.staff[staffID]
	if !ok || s.EstablishmentID != establishmentID {
		return nil, errNotFound
	}
	return s, nil
}

func (r *fakeRules) GetService(ctx context.Context, establishmentID, serviceID uint) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok || s.EstablishmentID != establishmentID {
		return nil, errNotFound
	}
	return s, nil
}

func (r *fakeRules) IsStaffEligible(ctx context.Context, serviceID, staffID uint) (bool, error) {
	return r.eligible[serviceID][staffID], nil
}

func (r *fakeRules) GetBusinessHours(ctx context.Context, establishmentID uint, weekday int) (*models.BusinessHours, error) {
	return r.business[weekday], nil
}

func (r *fakeRules) GetStaffWorkingHours(ctx context.Context, establishmentID, staffID uint, weekday int) (*models.StaffWorkingHours, error) {
	return r.staffHours[staffID][weekday], nil
}

func (r *fakeRules) HasTimeOff(ctx context.Context, establishmentID, staffID uint, date time.Time) (bool, error) {
	for i := range r.timeOff {
		off := &r.timeOff[i]
		if off.StaffID == staffID && domain.CoversDate(off, date) {
			return true, nil
		}
	}
	return false, nil
}

var _ domain.Rules = (*fakeRules)(nil)

// ======================================================
// fakeLedger — livro de agendamentos em memória
// ======================================================

// admitMu serializa o Serialized inteiro (papel do advisory lock);
// mu protege o estado nas operações pontuais.
type fakeLedger struct {
	admitMu sync.Mutex
	mu      sync.Mutex

	seq          uint
	appointments []*models.Appointment
	clients      []*models.Client
}

func (l *fakeLedger) GetOrCreateClient(
	ctx context.Context,
	establishmentID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, c := range l.clients {
		if c.EstablishmentID == establishmentID && c.Phone == phone {
			return c, nil
		}
	}

	l.seq++
	c := &models.Client{
		ID:              l.seq,
		EstablishmentID: establishmentID,
		Name:            name,
		Phone:           phone,
		Email:           email,
	}
	l.clients = append(l.clients, c)
	return c, nil
}

func (l *fakeLedger) ListOccupying(ctx context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.Appointment
	for _, ap := range l.appointments {
		if ap.StaffID != staffID {
			continue
		}
		if !domain.Status(ap.Status).Occupies() {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (l *fakeLedger) AssertFree(ctx context.Context, staffID uint, start, end time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ap := range l.appointments {
		if ap.StaffID != staffID {
			continue
		}
		if !domain.Status(ap.Status).Occupies() {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}
	return nil
}

func (l *fakeLedger) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	ap.ID = l.seq
	cp := *ap
	l.appointments = append(l.appointments, &cp)
	return nil
}

func (l *fakeLedger) GetAppointment(ctx context.Context, establishmentID, appointmentID uint) (*models.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ap := range l.appointments {
		if ap.ID == appointmentID && ap.EstablishmentID == establishmentID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (l *fakeLedger) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, cur := range l.appointments {
		if cur.ID == ap.ID {
			cp := *ap
			l.appointments[i] = &cp
			return nil
		}
	}
	return errNotFound
}

func (l *fakeLedger) ListForPeriod(ctx context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.Appointment
	for _, ap := range l.appointments {
		if ap.StaffID != staffID {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (l *fakeLedger) Serialized(
	ctx context.Context,
	establishmentID uint,
	staffID uint,
	fn func(ctx context.Context, tx domain.Ledger) error,
) error {
	l.admitMu.Lock()
	defer l.admitMu.Unlock()
	return fn(ctx, l)
}

var _ domain.Ledger = (*fakeLedger)(nil)

// ======================================================
// policyStub — política de liberação mínima para o gate do bot
// ======================================================

type policyStub struct {
	policy *models.AgendaReleasePolicy
}

func (s *policyStub) GetPolicy(ctx context.Context, establishmentID uint) (*models.AgendaReleasePolicy, error) {
	return s.policy, nil
}

func (s *policyStub) SavePolicy(ctx context.Context, p *models.AgendaReleasePolicy) error {
	s.policy = p
	return nil
}

func (s *policyStub) ReleaseMonths(ctx context.Context, establishmentID uint, months []string, releaseType string, releasedAt time.Time) ([]string, error) {
	return nil, nil
}

func (s *policyStub) ReplaceMonths(ctx context.Context, establishmentID uint, months []string, releasedAt time.Time) ([]string, error) {
	return months, nil
}

func (s *policyStub) ListActive(ctx context.Context) ([]models.AgendaReleasePolicy, error) {
	return nil, nil
}

func (s *policyStub) ListReleases(ctx context.Context, establishmentID uint) ([]models.AgendaRelease, error) {
	return nil, nil
}

var _ agendadomain.PolicyStore = (*policyStub)(nil)

// ======================================================
// fixture padrão: seg-sex 09:00-18:00, serviço de 30min
// ======================================================

const (
	fixtureEstID     = 1
	fixtureStaffID   = 10
	fixtureServiceID = 20
)

func newFixture() (*fakeRules, *fakeLedger) {
	est := &models.Establishment{
		ID:               fixtureEstID,
		Name:             "Studio Bela",
		Slug:             "studio-bela",
		Timezone:         timezone.DefaultTimezone,
		BotBookingStatus: string(domain.StatusPending),
	}

	rules := &fakeRules{
		est: est,
		staff: map[uint]*models.Staff{
			fixtureStaffID: {ID: fixtureStaffID, EstablishmentID: fixtureEstID, Name: "Carla", Active: true},
		},
		services: map[uint]*models.Service{
			fixtureServiceID: {ID: fixtureServiceID, EstablishmentID: fixtureEstID, Name: "Corte", DurationMin: 30, Active: true},
		},
		eligible: map[uint]map[uint]bool{
			fixtureServiceID: {fixtureStaffID: true},
		},
		business:   map[int]*models.BusinessHours{},
		staffHours: map[uint]map[int]*models.StaffWorkingHours{},
	}

	// seg a sex
	for wd := 1; wd <= 5; wd++ {
		rules.business[wd] = &models.BusinessHours{
			EstablishmentID: fixtureEstID,
			Weekday:         wd,
			IsOpen:          true,
			OpenTime:        "09:00",
			CloseTime:       "18:00",
		}
	}

	return rules, &fakeLedger{}
}

func fixtureLoc() *time.Location {
	return timezone.Location(timezone.DefaultTimezone)
}

// fixtureDay é uma quarta-feira distante no futuro, para que nenhum
// slot tenha passado.
func fixtureDay() time.Time {
	return time.Date(2030, time.January, 2, 0, 0, 0, 0, fixtureLoc())
}

func fixtureAt(hm string) time.Time {
	t, ok := domain.ParseClock(hm, fixtureDay())
	if !ok {
		panic("hora inválida no teste: " + hm)
	}
	return t
}
