package availability

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// BusyPeriods is the slice of the appointment store the generator reads.
type BusyPeriods interface {
	ListForProfessionalOverlapping(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

type GenerateSlots struct {
	windows      domain.Repository
	appointments BusyPeriods
	mergeWindows bool
}

// NewGenerateSlots builds the generator. With mergeWindows false every
// window is stepped on its own and overlapping windows yield repeated slots.
func NewGenerateSlots(
	windows domain.Repository,
	appointments BusyPeriods,
	mergeWindows bool,
) *GenerateSlots {
	return &GenerateSlots{
		windows:      windows,
		appointments: appointments,
		mergeWindows: mergeWindows,
	}
}

func (uc *GenerateSlots) Execute(
	ctx context.Context,
	in domain.SlotInput,
) (*domain.SlotDay, error) {

	date := in.Date
	if date == "" {
		date = timezone.Today()
	}

	day, err := timezone.ParseDayBounds(date)
	if err != nil {
		return nil, err
	}

	minutes := domain.ClampInterval(in.IntervalMinutes)
	out := &domain.SlotDay{
		ProfessionalID: in.ProfessionalID,
		Date:           date,
		Interval:       minutes,
		Slots:          []domain.Slot{},
	}

	// --------------------------------------------------
	// Windows
	// --------------------------------------------------
	windows, err := uc.windows.ListActiveForProfessionalOnDay(ctx, in.ProfessionalID, day.Start)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return out, nil
	}

	open := make([]interval.Interval, 0, len(windows))
	for _, w := range windows {
		if clipped, ok := interval.Clip(domain.Window(w), day); ok {
			open = append(open, clipped)
		}
	}
	if uc.mergeWindows {
		open = interval.Merge(open)
	}

	// --------------------------------------------------
	// Bookings
	// --------------------------------------------------
	booked, err := uc.appointments.ListForProfessionalOverlapping(ctx, in.ProfessionalID, day.Start, day.End)
	if err != nil {
		return nil, err
	}

	busy := make([]interval.Interval, 0, len(booked))
	for _, ap := range booked {
		busy = append(busy, interval.New(ap.StartsAt, ap.EndsAt))
	}

	// --------------------------------------------------
	// Walk
	// --------------------------------------------------
	step := time.Duration(minutes) * time.Minute
	for _, w := range open {
		for _, candidate := range interval.Steps(w, step) {
			out.Slots = append(out.Slots, domain.NewSlot(candidate, !interval.AnyOverlaps(candidate, busy)))
		}
	}

	return out, nil
}
