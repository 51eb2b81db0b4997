//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"courtbook/internal/domain/booking"
	"courtbook/internal/domain/slot"
	"courtbook/internal/domain/waitlist"
	"courtbook/internal/infra"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/queries"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for Postgres that keeps the locking
// semantics the commands rely on: LockByID blocks until the holding
// transaction finishes, so two racing writers for the same court serialize
// exactly like they would on the court row lock.
type fakeStore struct {
	mu         sync.Mutex
	courtLocks map[uuid.UUID]*sync.Mutex

	courts    map[uuid.UUID]shared.CourtSnapshot
	coaches   map[uuid.UUID]shared.CoachSnapshot
	equipment map[uuid.UUID]shared.EquipmentSnapshot
	rules     []shared.PricingRuleSnapshot

	bookings map[uuid.UUID]*booking.Booking
	entries  []*queueEntry
	seq      int
}

// queueEntry pairs the aggregate with an insertion sequence standing in for
// the (created_at, id) ordering of the real table.
type queueEntry struct {
	entry *waitlist.Entry
	seq   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courtLocks: make(map[uuid.UUID]*sync.Mutex),
		courts:     make(map[uuid.UUID]shared.CourtSnapshot),
		coaches:    make(map[uuid.UUID]shared.CoachSnapshot),
		equipment:  make(map[uuid.UUID]shared.EquipmentSnapshot),
		bookings:   make(map[uuid.UUID]*booking.Booking),
	}
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func sameKey(a, b slot.Key) bool {
	return a.CourtID == b.CourtID && a.Date.Equal(b.Date) && a.Window == b.Window
}

// ---- unit of work ----

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &fakeTx{store: u.store}
	defer tx.releaseLocks()
	return fn(ctx, tx)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
	held  []*sync.Mutex
}

func (t *fakeTx) Courts() shared.CourtLockRepository { return &fakeCourtRepo{tx: t} }
func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{store: t.store} }
func (t *fakeTx) Waitlist() shared.WaitlistRepository {
	return &fakeWaitlistRepo{store: t.store}
}
func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{store: t.store} }

func (t *fakeTx) releaseLocks() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
	t.held = nil
}

type fakeCourtRepo struct {
	tx *fakeTx
}

func (r *fakeCourtRepo) LockByID(_ context.Context, courtID uuid.UUID) error {
	s := r.tx.store
	s.mu.Lock()
	if _, ok := s.courts[courtID]; !ok {
		s.mu.Unlock()
		return notFoundErr("court not found")
	}
	lock, ok := s.courtLocks[courtID]
	if !ok {
		lock = &sync.Mutex{}
		s.courtLocks[courtID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	r.tx.held = append(r.tx.held, lock)
	return nil
}

// ---- booking repository ----

type fakeBookingRepo struct {
	store *fakeStore
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, notFoundErr("booking not found")
	}
	return b, nil
}

func (r *fakeBookingRepo) MarkCancelled(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[id]; !ok {
		return notFoundErr("booking not found")
	}
	return nil
}

func (r *fakeBookingRepo) HasCourtOverlap(_ context.Context, courtID uuid.UUID, date time.Time, w slot.Window) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if b.IsConfirmed() && b.CourtID() == courtID && b.Date().Equal(date) && b.Window().Overlaps(w) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) HasCoachOverlap(_ context.Context, coachID uuid.UUID, date time.Time, w slot.Window) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bookings {
		if b.IsConfirmed() && b.CoachID() != nil && *b.CoachID() == coachID && b.Date().Equal(date) && b.Window().Overlaps(w) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) EquipmentBookedQuantity(_ context.Context, equipmentID uuid.UUID, date time.Time, w slot.Window) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var total int
	for _, b := range r.store.bookings {
		if !b.IsConfirmed() || !b.Date().Equal(date) || !b.Window().Overlaps(w) {
			continue
		}
		for _, line := range b.Equipment() {
			if line.EquipmentID == equipmentID {
				total += line.Quantity
			}
		}
	}
	return total, nil
}

// ---- waitlist repository ----

type fakeWaitlistRepo struct {
	store *fakeStore
}

func (r *fakeWaitlistRepo) Insert(_ context.Context, e *waitlist.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq++
	r.store.entries = append(r.store.entries, &queueEntry{entry: e, seq: r.store.seq})
	return nil
}

func (r *fakeWaitlistRepo) ExistsWaiting(_ context.Context, userID uuid.UUID, key slot.Key) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, qe := range r.store.entries {
		if qe.entry.UserID() == userID && qe.entry.IsWaiting() && sameKey(qe.entry.Key(), key) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWaitlistRepo) OldestWaitingForUpdate(_ context.Context, key slot.Key) (*waitlist.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var head *queueEntry
	for _, qe := range r.store.entries {
		if !qe.entry.IsWaiting() || !sameKey(qe.entry.Key(), key) {
			continue
		}
		if head == nil || qe.seq < head.seq {
			head = qe
		}
	}
	if head == nil {
		return nil, nil
	}
	return head.entry, nil
}

func (r *fakeWaitlistRepo) MarkNotified(_ context.Context, id uuid.UUID, _ time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, qe := range r.store.entries {
		if qe.entry.ID() == id {
			return nil
		}
	}
	return notFoundErr("waitlist entry not found")
}

func (r *fakeWaitlistRepo) DeleteOwned(_ context.Context, id, userID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, qe := range r.store.entries {
		if qe.entry.ID() != id || qe.entry.UserID() != userID {
			continue
		}
		if qe.entry.Status() == waitlist.StatusExpired {
			return false, nil
		}
		r.store.entries = append(r.store.entries[:i], r.store.entries[i+1:]...)
		return true, nil
	}
	return false, nil
}

func (r *fakeWaitlistRepo) ExpireStale(_ context.Context, cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var expired int64
	for _, qe := range r.store.entries {
		e := qe.entry
		if e.Status() != waitlist.StatusNotified || e.NotifiedAt() == nil || !e.NotifiedAt().Before(cutoff) {
			continue
		}
		qe.entry = waitlist.Reconstruct(
			e.ID(), e.UserID(), e.Key(), waitlist.StatusExpired, e.CreatedAt(), e.NotifiedAt())
		expired++
	}
	return expired, nil
}

// ---- command reads ----

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) CourtByID(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.courts[id]
	if !ok {
		return nil, notFoundErr("court not found")
	}
	return &c, nil
}

func (r *fakeReads) CoachByID(_ context.Context, id uuid.UUID) (*shared.CoachSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.coaches[id]
	if !ok {
		return nil, notFoundErr("coach not found")
	}
	return &c, nil
}

func (r *fakeReads) EquipmentByID(_ context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.equipment[id]
	if !ok {
		return nil, notFoundErr("equipment not found")
	}
	return &e, nil
}

func (r *fakeReads) EnabledPricingRules(_ context.Context) ([]shared.PricingRuleSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var enabled []shared.PricingRuleSnapshot
	for _, rule := range r.store.rules {
		if rule.Enabled {
			enabled = append(enabled, rule)
		}
	}
	return enabled, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, notFoundErr("booking not found")
	}
	return &shared.BookingSnapshot{
		ID:      b.ID(),
		UserID:  b.UserID(),
		CourtID: b.CourtID(),
		Date:    b.Date(),
		Status:  string(b.Status()),
	}, nil
}

// ---- view repositories feeding the real query services ----

type fakeBookingViews struct {
	store *fakeStore
}

func (r *fakeBookingViews) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, notFoundErr("booking not found")
	}

	view := &queries.BookingView{
		ID:              b.ID(),
		UserID:          b.UserID(),
		CourtID:         b.CourtID(),
		CourtName:       r.store.courts[b.CourtID()].Name,
		CoachID:         b.CoachID(),
		Date:            b.Date().Format("2006-01-02"),
		StartTime:       b.Window().Start().String(),
		EndTime:         b.Window().End().String(),
		BasePriceCents:  b.BasePriceCents(),
		TotalPriceCents: b.TotalPriceCents(),
		Breakdown:       b.Breakdown(),
		Status:          string(b.Status()),
	}
	for _, line := range b.Equipment() {
		view.Equipment = append(view.Equipment, queries.BookingEquipmentView{
			EquipmentID: line.EquipmentID,
			Name:        r.store.equipment[line.EquipmentID].Name,
			Quantity:    line.Quantity,
		})
	}
	return view, nil
}

func (r *fakeBookingViews) FindByUserID(_ context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var items []*queries.BookingListItem
	for _, b := range r.store.bookings {
		if b.UserID() != userID {
			continue
		}
		items = append(items, &queries.BookingListItem{
			ID:              b.ID(),
			CourtID:         b.CourtID(),
			CourtName:       r.store.courts[b.CourtID()].Name,
			Date:            b.Date().Format("2006-01-02"),
			StartTime:       b.Window().Start().String(),
			EndTime:         b.Window().End().String(),
			TotalPriceCents: b.TotalPriceCents(),
			Status:          string(b.Status()),
		})
	}
	return items, nil
}

func (r *fakeBookingViews) FindConfirmedByDate(_ context.Context, date time.Time) ([]*queries.BookedSlotView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var views []*queries.BookedSlotView
	for _, b := range r.store.bookings {
		if !b.IsConfirmed() || !b.Date().Equal(date) {
			continue
		}
		v := &queries.BookedSlotView{
			CourtID:      b.CourtID(),
			CoachID:      b.CoachID(),
			StartMinutes: b.Window().Start().Minutes(),
			EndMinutes:   b.Window().End().Minutes(),
		}
		for _, line := range b.Equipment() {
			v.Equipment = append(v.Equipment, queries.EquipmentQty{
				EquipmentID: line.EquipmentID,
				Quantity:    line.Quantity,
			})
		}
		views = append(views, v)
	}
	return views, nil
}

type fakeWaitlistViews struct {
	store *fakeStore
}

func (r *fakeWaitlistViews) FindByUserID(_ context.Context, userID uuid.UUID) ([]*queries.WaitlistEntryView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var views []*queries.WaitlistEntryView
	for _, qe := range r.store.entries {
		e := qe.entry
		if e.UserID() != userID {
			continue
		}

		position := 0
		if e.IsWaiting() {
			for _, peer := range r.store.entries {
				if peer.entry.IsWaiting() && sameKey(peer.entry.Key(), e.Key()) && peer.seq <= qe.seq {
					position++
				}
			}
		}

		views = append(views, &queries.WaitlistEntryView{
			ID:         e.ID(),
			CourtID:    e.Key().CourtID,
			CourtName:  r.store.courts[e.Key().CourtID].Name,
			Date:       e.Key().Date.Format("2006-01-02"),
			StartTime:  e.Key().Window.Start().String(),
			EndTime:    e.Key().Window.End().String(),
			Status:     string(e.Status()),
			Position:   position,
			NotifiedAt: e.NotifiedAt(),
		})
	}
	return views, nil
}

// ---- notifier ----

type fakeNotifier struct {
	mu      sync.Mutex
	notices []commands.SlotAvailableNotice
	failErr error
}

func (n *fakeNotifier) SlotAvailable(_ context.Context, notice commands.SlotAvailableNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failErr != nil {
		return n.failErr
	}
	n.notices = append(n.notices, notice)
	return nil
}

func (n *fakeNotifier) all() []commands.SlotAvailableNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]commands.SlotAvailableNotice, len(n.notices))
	copy(out, n.notices)
	return out
}
