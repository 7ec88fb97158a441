package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rpawar/slotbook/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ListSlots(ctx context.Context, day time.Time) ([]domain.SlotRef, error)
	ListDetailed(ctx context.Context, day time.Time) ([]domain.Booking, error)
	SectionCounts(ctx context.Context, day time.Time) (map[int]int, error)
	ArchiveBefore(ctx context.Context, day, archivedAt time.Time) (int64, error)
	Ping(ctx context.Context) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id           BIGSERIAL PRIMARY KEY,
	section_id   INT NOT NULL,
	slot_number  INT NOT NULL,
	full_name    TEXT NOT NULL,
	place        TEXT NOT NULL,
	mobile       TEXT NOT NULL,
	booking_date DATE NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	UNIQUE (section_id, slot_number, booking_date)
);
CREATE INDEX IF NOT EXISTS idx_bookings_booking_date ON bookings (booking_date);
CREATE TABLE IF NOT EXISTS archived_bookings (
	id           BIGSERIAL PRIMARY KEY,
	section_id   INT NOT NULL,
	slot_number  INT NOT NULL,
	full_name    TEXT NOT NULL,
	place        TEXT NOT NULL,
	mobile       TEXT NOT NULL,
	booking_date DATE NOT NULL,
	archived_at  TIMESTAMPTZ NOT NULL
);`

// EnsureSchema creates the bookings tables and the unique constraint the
// slot allocation relies on.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}

// Create inserts one booking row. The unique index on
// (section_id, slot_number, booking_date) is what resolves two racing
// inserts for the same slot: the loser gets ErrSlotTaken.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (section_id, slot_number, full_name, place, mobile, booking_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		booking.SectionID, booking.SlotNumber, booking.FullName, booking.Place, booking.Mobile, booking.BookingDate, booking.CreatedAt).
		Scan(&booking.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) ListSlots(ctx context.Context, day time.Time) ([]domain.SlotRef, error) {
	rows, err := r.db.Query(ctx, `SELECT section_id, slot_number FROM bookings WHERE booking_date=$1 ORDER BY section_id, slot_number`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.SlotRef
	for rows.Next() {
		var s domain.SlotRef
		if err := rows.Scan(&s.SectionID, &s.SlotNumber); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *PGBookingRepository) ListDetailed(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, section_id, slot_number, full_name, place, mobile, booking_date, created_at
		FROM bookings WHERE booking_date=$1 ORDER BY section_id, slot_number`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.SectionID, &b.SlotNumber, &b.FullName, &b.Place, &b.Mobile, &b.BookingDate, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) SectionCounts(ctx context.Context, day time.Time) (map[int]int, error) {
	rows, err := r.db.Query(ctx, `SELECT section_id, COUNT(*) FROM bookings WHERE booking_date=$1 GROUP BY section_id`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var section, n int
		if err := rows.Scan(&section, &n); err != nil {
			return nil, err
		}
		counts[section] = n
	}
	return counts, rows.Err()
}

// ArchiveBefore copies every booking dated before day into archived_bookings
// and deletes it from the active table. Both statements run in one
// transaction so a crash between them cannot lose or duplicate rows.
func (r *PGBookingRepository) ArchiveBefore(ctx context.Context, day, archivedAt time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO archived_bookings (section_id, slot_number, full_name, place, mobile, booking_date, archived_at)
		SELECT section_id, slot_number, full_name, place, mobile, booking_date, $2
		FROM bookings WHERE booking_date < $1`, day, archivedAt); err != nil {
		return 0, err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM bookings WHERE booking_date < $1`, day)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *PGBookingRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Postgres unique_violation, SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ BookingRepository = (*PGBookingRepository)(nil)
