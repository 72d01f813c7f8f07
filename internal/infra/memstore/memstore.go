// Package memstore keeps scheduling state in process memory. It backs the
// "memory" database driver used for local runs and the package tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Store struct {
	mu           sync.RWMutex
	users        map[uint]models.User
	appointments map[uint]models.Appointment
	windows      map[uint]models.Availability
	lastAppID    uint
	lastWindowID uint

	agendaMu sync.Mutex
	agendas  map[uint]*sync.Mutex

	rowMu sync.Mutex
	rows  map[uint]*sync.Mutex
}

func New() *Store {
	return &Store{
		users:        make(map[uint]models.User),
		appointments: make(map[uint]models.Appointment),
		windows:      make(map[uint]models.Availability),
		agendas:      make(map[uint]*sync.Mutex),
		rows:         make(map[uint]*sync.Mutex),
	}
}

// AddUser registers a user as the identity service would.
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u
}

func (s *Store) Users() *Users { return &Users{s: s} }

func (s *Store) Appointments() *Appointments { return &Appointments{s: s} }

func (s *Store) Availability() *AvailabilityWindows { return &AvailabilityWindows{s: s} }

func (s *Store) agenda(professionalID uint) *sync.Mutex {
	s.agendaMu.Lock()
	defer s.agendaMu.Unlock()

	m, ok := s.agendas[professionalID]
	if !ok {
		m = &sync.Mutex{}
		s.agendas[professionalID] = m
	}
	return m
}

func (s *Store) row(appointmentID uint) *sync.Mutex {
	s.rowMu.Lock()
	defer s.rowMu.Unlock()

	m, ok := s.rows[appointmentID]
	if !ok {
		m = &sync.Mutex{}
		s.rows[appointmentID] = m
	}
	return m
}

// withParticipants must be called with s.mu held.
func (s *Store) withParticipants(ap models.Appointment) models.Appointment {
	ap.User = s.users[ap.UserID]
	ap.Professional = s.users[ap.ProfessionalID]
	return ap
}

// --------------------------------------------------
// Users
// --------------------------------------------------

type Users struct{ s *Store }

func (u *Users) GetUser(_ context.Context, id uint) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	return &user, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

type Appointments struct{ s *Store }

func (r *Appointments) FindByID(_ context.Context, id uint) (*models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ap, ok := r.s.appointments[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	ap = r.s.withParticipants(ap)
	return &ap, nil
}

func (r *Appointments) ListAll(_ context.Context) ([]models.Appointment, error) {
	out := r.filter(func(models.Appointment) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Appointments) ListForProfessionalStartingBetween(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	return r.byStart(r.filter(func(ap models.Appointment) bool {
		return ap.ProfessionalID == professionalID && live(ap) && startsWithin(ap, start, end)
	})), nil
}

func (r *Appointments) ListForProfessionalOverlapping(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	window := interval.New(start, end)
	return r.byStart(r.filter(func(ap models.Appointment) bool {
		return ap.ProfessionalID == professionalID && live(ap) && interval.Overlaps(appointment.Span(ap), window)
	})), nil
}

func (r *Appointments) ListForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	return r.byStart(r.filter(func(ap models.Appointment) bool {
		return ap.UserID == userID && live(ap)
	})), nil
}

func (r *Appointments) ListForUserStartingBetween(_ context.Context, userID uint, start, end time.Time) ([]models.Appointment, error) {
	return r.byStart(r.filter(func(ap models.Appointment) bool {
		return ap.UserID == userID && live(ap) && startsWithin(ap, start, end)
	})), nil
}

func (r *Appointments) InProfessionalTx(ctx context.Context, professionalID uint, fn func(ctx context.Context, tx appointment.Tx) error) error {
	m := r.s.agenda(professionalID)
	m.Lock()
	defer m.Unlock()

	tx := &memTx{s: r.s, held: make(map[uint]*sync.Mutex)}
	defer tx.release()

	return fn(ctx, tx)
}

func (r *Appointments) filter(keep func(models.Appointment) bool) []models.Appointment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for _, ap := range r.s.appointments {
		if keep(ap) {
			out = append(out, r.s.withParticipants(ap))
		}
	}
	return out
}

func (r *Appointments) byStart(in []models.Appointment) []models.Appointment {
	sort.Slice(in, func(i, j int) bool {
		if in[i].StartsAt.Equal(in[j].StartsAt) {
			return in[i].ID < in[j].ID
		}
		return in[i].StartsAt.Before(in[j].StartsAt)
	})
	return in
}

func live(ap models.Appointment) bool {
	return appointment.Status(ap.Status) != appointment.StatusCancelled
}

func startsWithin(ap models.Appointment, start, end time.Time) bool {
	return !ap.StartsAt.Before(start) && ap.StartsAt.Before(end)
}

// memTx holds the row locks taken by FindByID until the transaction ends,
// so two agendas touching the same appointment take turns.
type memTx struct {
	s    *Store
	held map[uint]*sync.Mutex
}

func (t *memTx) release() {
	for _, m := range t.held {
		m.Unlock()
	}
}

func (t *memTx) FindByID(_ context.Context, id uint) (*models.Appointment, error) {
	if _, ok := t.held[id]; !ok {
		m := t.s.row(id)
		m.Lock()
		t.held[id] = m
	}

	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	ap, ok := t.s.appointments[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	return &ap, nil
}

func (t *memTx) HasTimeConflict(_ context.Context, professionalID uint, start, end time.Time, excludeID uint) (bool, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	candidate := interval.New(start, end)
	for _, ap := range t.s.appointments {
		if ap.ID == excludeID || ap.ProfessionalID != professionalID || !live(ap) {
			continue
		}
		if interval.Overlaps(appointment.Span(ap), candidate) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	t.s.lastAppID++
	now := time.Now().UTC()
	ap.ID = t.s.lastAppID
	ap.CreatedAt = now
	ap.UpdatedAt = now

	stored := *ap
	stored.User, stored.Professional = models.User{}, models.User{}
	t.s.appointments[ap.ID] = stored
	return nil
}

func (t *memTx) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.appointments[ap.ID]; !ok {
		return appointment.ErrNotFound
	}
	ap.UpdatedAt = time.Now().UTC()

	stored := *ap
	stored.User, stored.Professional = models.User{}, models.User{}
	t.s.appointments[ap.ID] = stored
	return nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

type AvailabilityWindows struct{ s *Store }

func (r *AvailabilityWindows) Create(_ context.Context, w *models.Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastWindowID++
	now := time.Now().UTC()
	w.ID = r.s.lastWindowID
	w.CreatedAt = now
	w.UpdatedAt = now

	stored := *w
	stored.Professional = models.User{}
	r.s.windows[w.ID] = stored
	return nil
}

func (r *AvailabilityWindows) FindByID(_ context.Context, id uint) (*models.Availability, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.windows[id]
	if !ok {
		return nil, availability.ErrNotFound
	}
	return &w, nil
}

func (r *AvailabilityWindows) Update(_ context.Context, w *models.Availability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.windows[w.ID]; !ok {
		return availability.ErrNotFound
	}
	w.UpdatedAt = time.Now().UTC()
	stored := *w
	stored.Professional = models.User{}
	r.s.windows[w.ID] = stored
	return nil
}

func (r *AvailabilityWindows) ListAllActive(_ context.Context) ([]models.Availability, error) {
	return newestFirst(r.filter(func(w models.Availability) bool { return w.Active })), nil
}

func (r *AvailabilityWindows) ListActiveForProfessional(_ context.Context, professionalID uint) ([]models.Availability, error) {
	return newestFirst(r.filter(func(w models.Availability) bool {
		return w.Active && w.ProfessionalID == professionalID
	})), nil
}

func (r *AvailabilityWindows) ListActiveForProfessionalOnDay(_ context.Context, professionalID uint, dayStart time.Time) ([]models.Availability, error) {
	lower := dayStart.Add(-availability.LookBack)
	dayEnd := dayStart.Add(24 * time.Hour)

	out := r.filter(func(w models.Availability) bool {
		return w.Active &&
			w.ProfessionalID == professionalID &&
			!w.From.Before(lower) &&
			w.From.Before(dayEnd) &&
			w.To.After(dayStart)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].From.Equal(out[j].From) {
			return out[i].ID < out[j].ID
		}
		return out[i].From.Before(out[j].From)
	})
	return out, nil
}

func (r *AvailabilityWindows) filter(keep func(models.Availability) bool) []models.Availability {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Availability, 0)
	for _, w := range r.s.windows {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func newestFirst(in []models.Availability) []models.Availability {
	sort.Slice(in, func(i, j int) bool {
		if in[i].From.Equal(in[j].From) {
			return in[i].ID > in[j].ID
		}
		return in[i].From.After(in[j].From)
	})
	return in
}

// Compile-time checks
var (
	_ appointment.Repository  = (*Appointments)(nil)
	_ appointment.Tx          = (*memTx)(nil)
	_ availability.Repository = (*AvailabilityWindows)(nil)
	_ directory.Users         = (*Users)(nil)
)
