package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"courtbook/internal/domain/slot"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/infra/readstore"
	"courtbook/internal/infra/repository"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; the
// court row lock does the per-slot serialization.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	courtRepo    shared.CourtLockRepository
	bookingRepo  shared.BookingRepository
	waitlistRepo shared.WaitlistRepository
	commandReads shared.CommandReads
}

func (t *pgTx) Courts() shared.CourtLockRepository {
	if t.courtRepo == nil {
		t.courtRepo = repository.NewCourtRepository(t.dbtx)
	}
	return t.courtRepo
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Waitlist() shared.WaitlistRepository {
	if t.waitlistRepo == nil {
		t.waitlistRepo = repository.NewWaitlistRepository(t.dbtx)
	}
	return t.waitlistRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	courtStore     *readstore.CourtReadStore
	coachStore     *readstore.CoachReadStore
	equipmentStore *readstore.EquipmentReadStore
	ruleStore      *readstore.PricingRuleReadStore
	bookingStore   *readstore.BookingReadStore
}

func (r *commandReads) CourtByID(ctx context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	if r.courtStore == nil {
		r.courtStore = readstore.NewCourtReadStore(r.dbtx)
	}

	court, err := r.courtStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &shared.CourtSnapshot{
		ID:     court.ID,
		Name:   court.Name,
		Type:   court.Type,
		Active: court.Active,
	}, nil
}

func (r *commandReads) CoachByID(ctx context.Context, id uuid.UUID) (*shared.CoachSnapshot, error) {
	if r.coachStore == nil {
		r.coachStore = readstore.NewCoachReadStore(r.dbtx)
	}

	coach, err := r.coachStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.CoachSnapshot{
		ID:             coach.ID,
		Name:           coach.Name,
		HourlyFeeCents: coach.HourlyFeeCents,
		Active:         coach.Active,
	}
	for _, w := range coach.Availability {
		snapshot.Availability = append(snapshot.Availability, shared.CoachWindowSnapshot{
			Weekday:      w.Weekday,
			StartMinutes: w.StartMinutes,
			EndMinutes:   w.EndMinutes,
		})
	}
	return snapshot, nil
}

func (r *commandReads) EquipmentByID(ctx context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	if r.equipmentStore == nil {
		r.equipmentStore = readstore.NewEquipmentReadStore(r.dbtx)
	}

	item, err := r.equipmentStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &shared.EquipmentSnapshot{
		ID:            item.ID,
		Name:          item.Name,
		Type:          item.Type,
		TotalQuantity: item.TotalQuantity,
	}, nil
}

func (r *commandReads) EnabledPricingRules(ctx context.Context) ([]shared.PricingRuleSnapshot, error) {
	if r.ruleStore == nil {
		r.ruleStore = readstore.NewPricingRuleReadStore(r.dbtx)
	}

	rules, err := r.ruleStore.FindEnabled(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]shared.PricingRuleSnapshot, len(rules))
	for i, rule := range rules {
		snapshots[i] = shared.PricingRuleSnapshot{
			ID:           rule.ID,
			Name:         rule.Name,
			Type:         rule.Type,
			Enabled:      rule.Enabled,
			Priority:     rule.Priority,
			IsPercentage: rule.IsPercentage,
			Multiplier:   rule.Multiplier,
			FlatFeeCents: rule.FlatFeeCents,
			StartMinutes: rule.StartMinutes,
			EndMinutes:   rule.EndMinutes,
			Weekdays:     rule.Weekdays,
		}
	}
	return snapshots, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.dbtx)
	}

	b, err := r.bookingStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	date, err := slot.ParseDate(b.Date)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking date is invalid", err)
	}

	return &shared.BookingSnapshot{
		ID:      b.ID,
		UserID:  b.UserID,
		CourtID: b.CourtID,
		Date:    date,
		Status:  b.Status,
	}, nil
}
