package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/cabinbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const seatBookingsSchema = `CREATE TABLE IF NOT EXISTS seat_bookings (
	seat            TEXT PRIMARY KEY,
	reference       CHAR(8) NOT NULL UNIQUE,
	passport_number TEXT NOT NULL,
	first_name      TEXT NOT NULL,
	last_name       TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PGRecordRepository struct {
	db *pgxpool.Pool
}

func NewPGRecordRepository(db *pgxpool.Pool) *PGRecordRepository {
	return &PGRecordRepository{db: db}
}

func (r *PGRecordRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, seatBookingsSchema); err != nil {
		return fmt.Errorf("create seat_bookings: %w", err)
	}
	return nil
}

func (r *PGRecordRepository) Append(ctx context.Context, record domain.Record) error {
	_, err := r.db.Exec(ctx, `INSERT INTO seat_bookings (seat, reference, passport_number, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)`, record.Seat, record.Reference, record.PassportNumber, record.FirstName, record.LastName)
	return err
}

// Remove deletes the row for seat. A missing row is not an error.
func (r *PGRecordRepository) Remove(ctx context.Context, seat string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM seat_bookings WHERE seat = $1`, seat)
	return err
}

func (r *PGRecordRepository) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.db.Query(ctx, `SELECT seat, reference, passport_number, first_name, last_name FROM seat_bookings ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(&rec.Seat, &rec.Reference, &rec.PassportNumber, &rec.FirstName, &rec.LastName); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
