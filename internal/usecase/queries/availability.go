package queries

import (
	"context"
	"time"

	"courtbook/internal/domain/slot"

	"github.com/google/uuid"
)

// The slot grid exposed to clients: hourly slots between opening and closing.
const (
	gridOpenMinutes  = 6 * 60
	gridCloseMinutes = 22 * 60
	gridSlotMinutes  = 60
)

type CourtAvailability struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Available bool      `json:"available"`
}

type EquipmentAvailability struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	TotalQuantity     int       `json:"total_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
}

type CoachAvailability struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	HourlyFeeCents int64     `json:"hourly_fee_cents"`
	Available      bool      `json:"available"`
}

type AvailabilityView struct {
	Date      string                  `json:"date"`
	StartTime string                  `json:"start_time"`
	EndTime   string                  `json:"end_time"`
	Courts    []CourtAvailability     `json:"courts"`
	Equipment []EquipmentAvailability `json:"equipment"`
	Coaches   []CoachAvailability     `json:"coaches"`
}

type GridCourt struct {
	CourtID   uuid.UUID `json:"court_id"`
	Name      string    `json:"name"`
	Available bool      `json:"available"`
}

type GridSlot struct {
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
	Courts    []GridCourt `json:"courts"`
}

type SlotGridView struct {
	Date  string     `json:"date"`
	Slots []GridSlot `json:"slots"`
}

type AvailabilityQueries interface {
	// CheckWindow reports per-court, per-equipment and per-coach availability
	// for one window. Purely advisory: the authoritative check runs again
	// under the court lock at booking time.
	CheckWindow(ctx context.Context, date time.Time, w slot.Window) (*AvailabilityView, error)
	// SlotGrid returns the hourly availability grid for one day.
	SlotGrid(ctx context.Context, date time.Time) (*SlotGridView, error)
	ListCourts(ctx context.Context) ([]*CourtView, error)
	ListEquipment(ctx context.Context) ([]*EquipmentView, error)
	ListCoaches(ctx context.Context) ([]*CoachView, error)
}

type availabilityQueriesImpl struct {
	courtRepo     CourtViewRepo
	equipmentRepo EquipmentViewRepo
	coachRepo     CoachViewRepo
	bookingRepo   BookingViewRepo
}

func NewAvailabilityQueries(
	courtRepo CourtViewRepo,
	equipmentRepo EquipmentViewRepo,
	coachRepo CoachViewRepo,
	bookingRepo BookingViewRepo,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		courtRepo:     courtRepo,
		equipmentRepo: equipmentRepo,
		coachRepo:     coachRepo,
		bookingRepo:   bookingRepo,
	}
}

func (q *availabilityQueriesImpl) CheckWindow(ctx context.Context, date time.Time, w slot.Window) (*AvailabilityView, error) {
	date = slot.NormalizeDate(date)

	booked, err := q.bookingRepo.FindConfirmedByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	courts, err := q.courtRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	equipment, err := q.equipmentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	coaches, err := q.coachRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	view := &AvailabilityView{
		Date:      date.Format("2006-01-02"),
		StartTime: w.Start().String(),
		EndTime:   w.End().String(),
		Courts:    make([]CourtAvailability, 0, len(courts)),
		Equipment: make([]EquipmentAvailability, 0, len(equipment)),
		Coaches:   make([]CoachAvailability, 0, len(coaches)),
	}

	for _, c := range courts {
		if !c.Active {
			continue
		}
		view.Courts = append(view.Courts, CourtAvailability{
			ID:        c.ID,
			Name:      c.Name,
			Type:      c.Type,
			Available: !courtBooked(booked, c.ID, w),
		})
	}

	for _, e := range equipment {
		used := equipmentUsed(booked, e.ID, w)
		available := e.TotalQuantity - used
		if available < 0 {
			available = 0
		}
		view.Equipment = append(view.Equipment, EquipmentAvailability{
			ID:                e.ID,
			Name:              e.Name,
			Type:              e.Type,
			TotalQuantity:     e.TotalQuantity,
			AvailableQuantity: available,
		})
	}

	weekday := slot.WeekdayOf(date)
	for _, c := range coaches {
		if !c.Active {
			continue
		}
		view.Coaches = append(view.Coaches, CoachAvailability{
			ID:             c.ID,
			Name:           c.Name,
			HourlyFeeCents: c.HourlyFeeCents,
			Available:      coachCovers(c, weekday, w) && !coachBooked(booked, c.ID, w),
		})
	}

	return view, nil
}

func (q *availabilityQueriesImpl) SlotGrid(ctx context.Context, date time.Time) (*SlotGridView, error) {
	date = slot.NormalizeDate(date)

	booked, err := q.bookingRepo.FindConfirmedByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	courts, err := q.courtRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	grid := &SlotGridView{Date: date.Format("2006-01-02")}
	for start := gridOpenMinutes; start < gridCloseMinutes; start += gridSlotMinutes {
		w, err := slot.NewWindow(slot.TimeOfDay(start), slot.TimeOfDay(start+gridSlotMinutes))
		if err != nil {
			return nil, err
		}

		gs := GridSlot{
			StartTime: w.Start().String(),
			EndTime:   w.End().String(),
			Courts:    make([]GridCourt, 0, len(courts)),
		}
		for _, c := range courts {
			if !c.Active {
				continue
			}
			gs.Courts = append(gs.Courts, GridCourt{
				CourtID:   c.ID,
				Name:      c.Name,
				Available: !courtBooked(booked, c.ID, w),
			})
		}
		grid.Slots = append(grid.Slots, gs)
	}

	return grid, nil
}

func (q *availabilityQueriesImpl) ListCourts(ctx context.Context) ([]*CourtView, error) {
	return q.courtRepo.FindAll(ctx)
}

func (q *availabilityQueriesImpl) ListEquipment(ctx context.Context) ([]*EquipmentView, error) {
	return q.equipmentRepo.FindAll(ctx)
}

func (q *availabilityQueriesImpl) ListCoaches(ctx context.Context) ([]*CoachView, error) {
	return q.coachRepo.FindAll(ctx)
}

func rowOverlaps(row *BookedSlotView, w slot.Window) bool {
	return slot.TimeOfDay(row.StartMinutes) < w.End() && slot.TimeOfDay(row.EndMinutes) > w.Start()
}

func courtBooked(booked []*BookedSlotView, courtID uuid.UUID, w slot.Window) bool {
	for _, row := range booked {
		if row.CourtID == courtID && rowOverlaps(row, w) {
			return true
		}
	}
	return false
}

func coachBooked(booked []*BookedSlotView, coachID uuid.UUID, w slot.Window) bool {
	for _, row := range booked {
		if row.CoachID != nil && *row.CoachID == coachID && rowOverlaps(row, w) {
			return true
		}
	}
	return false
}

func equipmentUsed(booked []*BookedSlotView, equipmentID uuid.UUID, w slot.Window) int {
	used := 0
	for _, row := range booked {
		if !rowOverlaps(row, w) {
			continue
		}
		for _, item := range row.Equipment {
			if item.EquipmentID == equipmentID {
				used += item.Quantity
			}
		}
	}
	return used
}

func coachCovers(c *CoachView, weekday int, w slot.Window) bool {
	for _, av := range c.Availability {
		covers := av.Weekday == weekday &&
			slot.TimeOfDay(av.StartMinutes) <= w.Start() &&
			slot.TimeOfDay(av.EndMinutes) >= w.End()
		if covers {
			return true
		}
	}
	return false
}
