package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeWindows struct {
	createFn func(ctx context.Context, w *models.Availability) error
	findFn   func(ctx context.Context, id uint) (*models.Availability, error)
	updateFn func(ctx context.Context, w *models.Availability) error
	onDayFn  func(ctx context.Context, professionalID uint, dayStart time.Time) ([]models.Availability, error)
}

func (f *fakeWindows) Create(ctx context.Context, w *models.Availability) error {
	return f.createFn(ctx, w)
}

func (f *fakeWindows) FindByID(ctx context.Context, id uint) (*models.Availability, error) {
	return f.findFn(ctx, id)
}

func (f *fakeWindows) Update(ctx context.Context, w *models.Availability) error {
	return f.updateFn(ctx, w)
}

func (f *fakeWindows) ListAllActive(context.Context) ([]models.Availability, error) {
	return nil, nil
}

func (f *fakeWindows) ListActiveForProfessional(context.Context, uint) ([]models.Availability, error) {
	return nil, nil
}

func (f *fakeWindows) ListActiveForProfessionalOnDay(ctx context.Context, professionalID uint, dayStart time.Time) ([]models.Availability, error) {
	return f.onDayFn(ctx, professionalID, dayStart)
}

type fakeBusy struct {
	calls  int
	listFn func(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error)
}

func (f *fakeBusy) ListForProfessionalOverlapping(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	f.calls++
	return f.listFn(ctx, professionalID, start, end)
}

type fakeUsers map[uint]models.User

func (f fakeUsers) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	return &u, nil
}

type recorder struct{ events []audit.Event }

func (r *recorder) Dispatch(ev audit.Event) { r.events = append(r.events, ev) }

func at(hour, minute int) time.Time {
	return time.Date(2025, 9, 1, hour, minute, 0, 0, time.UTC)
}

func window(id uint, from, to time.Time) models.Availability {
	return models.Availability{ID: id, ProfessionalID: 7, From: from, To: to, Active: true}
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func TestGenerateSlots(t *testing.T) {
	ctx := context.Background()
	in := domain.SlotInput{ProfessionalID: 7, Date: "2025-09-01", IntervalMinutes: 30}

	t.Run("free window", func(t *testing.T) {
		windows := &fakeWindows{onDayFn: func(_ context.Context, id uint, dayStart time.Time) ([]models.Availability, error) {
			assert.Equal(t, uint(7), id)
			assert.True(t, dayStart.Equal(at(0, 0)))
			return []models.Availability{window(1, at(9, 0), at(10, 0))}, nil
		}}
		busy := &fakeBusy{listFn: func(context.Context, uint, time.Time, time.Time) ([]models.Appointment, error) {
			return nil, nil
		}}

		got, err := availability.NewGenerateSlots(windows, busy, true).Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []domain.Slot{
			{Start: "09:00", End: "09:30", Available: true},
			{Start: "09:30", End: "10:00", Available: true},
		}, got.Slots)
		assert.Equal(t, 30, got.Interval)
		assert.Equal(t, "2025-09-01", got.Date)
	})

	t.Run("booked slot is unavailable", func(t *testing.T) {
		windows := &fakeWindows{onDayFn: func(context.Context, uint, time.Time) ([]models.Availability, error) {
			return []models.Availability{window(1, at(9, 0), at(10, 0))}, nil
		}}
		busy := &fakeBusy{listFn: func(_ context.Context, _ uint, start, end time.Time) ([]models.Appointment, error) {
			assert.True(t, start.Equal(at(0, 0)))
			assert.True(t, end.Equal(at(0, 0).Add(24*time.Hour)))
			return []models.Appointment{{ID: 1, StartsAt: at(9, 0), EndsAt: at(9, 30)}}, nil
		}}

		got, err := availability.NewGenerateSlots(windows, busy, true).Execute(ctx, in)
		require.NoError(t, err)
		require.Len(t, got.Slots, 2)
		assert.False(t, got.Slots[0].Available)
		assert.True(t, got.Slots[1].Available)
	})

	t.Run("no windows skips appointment lookup", func(t *testing.T) {
		windows := &fakeWindows{onDayFn: func(context.Context, uint, time.Time) ([]models.Availability, error) {
			return nil, nil
		}}
		busy := &fakeBusy{listFn: func(context.Context, uint, time.Time, time.Time) ([]models.Appointment, error) {
			t.Fatal("appointments must not be queried")
			return nil, nil
		}}

		got, err := availability.NewGenerateSlots(windows, busy, true).Execute(ctx, in)
		require.NoError(t, err)
		assert.NotNil(t, got.Slots)
		assert.Empty(t, got.Slots)
		assert.Zero(t, busy.calls)
	})

	t.Run("overnight window is clipped to the day", func(t *testing.T) {
		windows := &fakeWindows{onDayFn: func(context.Context, uint, time.Time) ([]models.Availability, error) {
			return []models.Availability{window(1, at(0, 0).Add(-time.Hour), at(1, 0))}, nil
		}}
		busy := &fakeBusy{listFn: func(context.Context, uint, time.Time, time.Time) ([]models.Appointment, error) {
			return nil, nil
		}}

		got, err := availability.NewGenerateSlots(windows, busy, true).Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, []domain.Slot{
			{Start: "00:00", End: "00:30", Available: true},
			{Start: "00:30", End: "01:00", Available: true},
		}, got.Slots)
	})

	t.Run("overlapping windows merge by default", func(t *testing.T) {
		windows := &fakeWindows{onDayFn: func(context.Context, uint, time.Time) ([]models.Availability, error) {
			return []models.Availability{
				window(1, at(9, 0), at(10, 0)),
				window(2, at(9, 30), at(10, 30)),
			}, nil
		}}
		busy := &fakeBusy{listFn: func(context.Context, uint, time.Time, time.Time) ([]models.Appointment, error) {
			return nil, nil
		}}

		merged, err := availability.NewGenerateSlots(windows, busy, true).Execute(ctx, in)
		require.NoError(t, err)
		assert.Len(t, merged.Slots, 3)

		legacy, err := availability.NewGenerateSlots(windows, busy, false).Execute(ctx, in)
		require.NoError(t, err)
		assert.Len(t, legacy.Slots, 4)
	})

	t.Run("remainder shorter than interval is dropped", func(t *testing.T) {
		windows := &fakeWindows{onDayFn: func(context.Context, uint, time.Time) ([]models.Availability, error) {
			return []models.Availability{window(1, at(9, 0), at(9, 50))}, nil
		}}
		busy := &fakeBusy{listFn: func(context.Context, uint, time.Time, time.Time) ([]models.Appointment, error) {
			return nil, nil
		}}

		got, err := availability.NewGenerateSlots(windows, busy, true).Execute(ctx, in)
		require.NoError(t, err)
		assert.Len(t, got.Slots, 1)
	})

	t.Run("interval defaults and floor", func(t *testing.T) {
		windows := &fakeWindows{onDayFn: func(context.Context, uint, time.Time) ([]models.Availability, error) {
			return nil, nil
		}}
		uc := availability.NewGenerateSlots(windows, &fakeBusy{}, true)

		got, err := uc.Execute(ctx, domain.SlotInput{ProfessionalID: 7, Date: "2025-09-01"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultIntervalMinutes, got.Interval)

		got, err = uc.Execute(ctx, domain.SlotInput{ProfessionalID: 7, Date: "2025-09-01", IntervalMinutes: 2})
		require.NoError(t, err)
		assert.Equal(t, domain.MinIntervalMinutes, got.Interval)
	})

	t.Run("interval capped at one day", func(t *testing.T) {
		windows := &fakeWindows{onDayFn: func(context.Context, uint, time.Time) ([]models.Availability, error) {
			return []models.Availability{window(1, at(0, 0), at(0, 0).Add(24*time.Hour))}, nil
		}}
		busy := &fakeBusy{listFn: func(context.Context, uint, time.Time, time.Time) ([]models.Appointment, error) {
			return nil, nil
		}}
		uc := availability.NewGenerateSlots(windows, busy, true)

		for _, minutes := range []int{1441, 200000000, 3749353613647811} {
			got, err := uc.Execute(ctx, domain.SlotInput{ProfessionalID: 7, Date: "2025-09-01", IntervalMinutes: minutes})
			require.NoError(t, err)
			assert.Equal(t, domain.MaxIntervalMinutes, got.Interval)
			assert.Equal(t, []domain.Slot{{Start: "00:00", End: "00:00", Available: true}}, got.Slots)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		uc := availability.NewGenerateSlots(&fakeWindows{}, &fakeBusy{}, true)
		_, err := uc.Execute(ctx, domain.SlotInput{ProfessionalID: 7, Date: "01/09/2025"})
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	})
}

// --------------------------------------------------
// Windows
// --------------------------------------------------

func TestCreateAvailability(t *testing.T) {
	ctx := context.Background()
	users := fakeUsers{7: {ID: 7, Role: "professional"}}

	t.Run("persists active window", func(t *testing.T) {
		rec := &recorder{}
		windows := &fakeWindows{createFn: func(_ context.Context, w *models.Availability) error {
			w.ID = 3
			return nil
		}}

		got, err := availability.NewCreateAvailability(windows, users, rec).Execute(ctx, availability.CreateAvailabilityInput{
			ActorID: 7, ProfessionalID: 7, From: at(9, 0), To: at(12, 0),
		})
		require.NoError(t, err)
		assert.True(t, got.Active)
		assert.Equal(t, uint(3), got.ID)
		require.Len(t, rec.events, 1)
		assert.Equal(t, audit.ActionAvailabilityCreated, rec.events[0].Action)
	})

	t.Run("end before start", func(t *testing.T) {
		uc := availability.NewCreateAvailability(&fakeWindows{}, users, audit.Discard)
		_, err := uc.Execute(ctx, availability.CreateAvailabilityInput{
			ProfessionalID: 7, From: at(12, 0), To: at(12, 0),
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_range"))
	})

	t.Run("unknown professional", func(t *testing.T) {
		uc := availability.NewCreateAvailability(&fakeWindows{}, users, audit.Discard)
		_, err := uc.Execute(ctx, availability.CreateAvailabilityInput{
			ProfessionalID: 99, From: at(9, 0), To: at(10, 0),
		})
		assert.True(t, httperr.IsBusiness(err, "professional_not_found"))
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	})
}

func TestDeactivateAvailability(t *testing.T) {
	ctx := context.Background()

	newRepo := func(w models.Availability, updates *int) *fakeWindows {
		return &fakeWindows{
			findFn: func(_ context.Context, id uint) (*models.Availability, error) {
				if id != w.ID {
					return nil, domain.ErrNotFound
				}
				cp := w
				return &cp, nil
			},
			updateFn: func(context.Context, *models.Availability) error {
				*updates++
				return nil
			},
		}
	}

	t.Run("owner deactivates", func(t *testing.T) {
		var updates int
		uc := availability.NewDeactivateAvailability(newRepo(window(1, at(9, 0), at(10, 0)), &updates), audit.Discard)

		got, err := uc.Execute(ctx, actor.Actor{ID: 7, Role: actor.RoleProfessional}, 1)
		require.NoError(t, err)
		assert.False(t, got.Active)
		assert.Equal(t, 1, updates)
	})

	t.Run("admin deactivates any window", func(t *testing.T) {
		var updates int
		uc := availability.NewDeactivateAvailability(newRepo(window(1, at(9, 0), at(10, 0)), &updates), audit.Discard)

		_, err := uc.Execute(ctx, actor.Actor{ID: 1, Role: actor.RoleAdmin}, 1)
		require.NoError(t, err)
	})

	t.Run("other professional is forbidden", func(t *testing.T) {
		var updates int
		uc := availability.NewDeactivateAvailability(newRepo(window(1, at(9, 0), at(10, 0)), &updates), audit.Discard)

		_, err := uc.Execute(ctx, actor.Actor{ID: 8, Role: actor.RoleProfessional}, 1)
		assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
		assert.Zero(t, updates)
	})

	t.Run("already inactive is a no-op", func(t *testing.T) {
		var updates int
		w := window(1, at(9, 0), at(10, 0))
		w.Active = false
		uc := availability.NewDeactivateAvailability(newRepo(w, &updates), audit.Discard)

		got, err := uc.Execute(ctx, actor.Actor{ID: 7, Role: actor.RoleProfessional}, 1)
		require.NoError(t, err)
		assert.False(t, got.Active)
		assert.Zero(t, updates)
	})

	t.Run("missing window", func(t *testing.T) {
		var updates int
		uc := availability.NewDeactivateAvailability(newRepo(window(1, at(9, 0), at(10, 0)), &updates), audit.Discard)

		_, err := uc.Execute(ctx, actor.Actor{ID: 7, Role: actor.RoleProfessional}, 2)
		assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	})
}
