package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Rule Repository ===========

type ruleRepoPG struct{ pool *pgxpool.Pool }

func NewRuleRepoPG(pool *pgxpool.Pool) RuleRepository { return &ruleRepoPG{pool: pool} }

func (r *ruleRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const ruleCols = `id, doctor_id, day_of_week, start_time, end_time,
	break_start, break_end, max_appointments, is_available, created_at, updated_at`

func (r *ruleRepoPG) scanRule(row pgx.Row) (*Rule, error) {
	var rl Rule
	err := row.Scan(&rl.ID, &rl.DoctorID, &rl.DayOfWeek, &rl.StartTime, &rl.EndTime,
		&rl.BreakStart, &rl.BreakEnd, &rl.MaxAppointments, &rl.IsAvailable,
		&rl.CreatedAt, &rl.UpdatedAt)
	return &rl, err
}

func (r *ruleRepoPG) GetByDoctorDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*Rule, error) {
	return r.scanRule(r.conn(ctx).QueryRow(ctx,
		`SELECT `+ruleCols+` FROM doctor_availability WHERE doctor_id = $1 AND day_of_week = $2`,
		doctorID, dayOfWeek))
}

func (r *ruleRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Rule, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+ruleCols+` FROM doctor_availability WHERE doctor_id = $1 ORDER BY day_of_week ASC`,
		doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Rule
	for rows.Next() {
		rl, err := r.scanRule(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rl)
	}
	return items, rows.Err()
}

// ReplaceForDoctor swaps a doctor's full weekly rule set in one transaction.
func (r *ruleRepoPG) ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, rules []*Rule) error {
	run := func(ctx context.Context) error {
		c := r.conn(ctx)
		if _, err := c.Exec(ctx, `DELETE FROM doctor_availability WHERE doctor_id = $1`, doctorID); err != nil {
			return err
		}
		for _, rl := range rules {
			rl.ID = uuid.New()
			rl.DoctorID = doctorID
			if _, err := c.Exec(ctx, `
				INSERT INTO doctor_availability (id, doctor_id, day_of_week, start_time, end_time,
					break_start, break_end, max_appointments, is_available)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
				rl.ID, rl.DoctorID, rl.DayOfWeek, rl.StartTime, rl.EndTime,
				rl.BreakStart, rl.BreakEnd, rl.Capacity(), rl.IsAvailable); err != nil {
				return err
			}
		}
		return nil
	}
	if db.ConnFromContext(ctx) != nil {
		return run(ctx)
	}
	return db.WithSerializableTx(ctx, r.pool, run)
}

// =========== Time Off Repository ===========

type timeOffRepoPG struct{ pool *pgxpool.Pool }

func NewTimeOffRepoPG(pool *pgxpool.Pool) TimeOffRepository { return &timeOffRepoPG{pool: pool} }

func (r *timeOffRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const timeOffCols = `id, doctor_id, start_date, end_date, reason, created_at`

func (r *timeOffRepoPG) scanTimeOff(row pgx.Row) (*TimeOff, error) {
	var t TimeOff
	err := row.Scan(&t.ID, &t.DoctorID, &t.StartDate, &t.EndDate, &t.Reason, &t.CreatedAt)
	return &t, err
}

// Covering returns the time-off row whose inclusive date range contains date,
// or nil when the doctor is working.
func (r *timeOffRepoPG) Covering(ctx context.Context, doctorID uuid.UUID, date time.Time) (*TimeOff, error) {
	t, err := r.scanTimeOff(r.conn(ctx).QueryRow(ctx,
		`SELECT `+timeOffCols+` FROM doctor_time_off
		 WHERE doctor_id = $1 AND $2::date BETWEEN start_date AND end_date
		 LIMIT 1`,
		doctorID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *timeOffRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*TimeOff, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+timeOffCols+` FROM doctor_time_off WHERE doctor_id = $1 ORDER BY start_date ASC`,
		doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TimeOff
	for rows.Next() {
		t, err := r.scanTimeOff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *timeOffRepoPG) Create(ctx context.Context, t *TimeOff) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor_time_off (id, doctor_id, start_date, end_date, reason)
		VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.DoctorID, t.StartDate, t.EndDate, t.Reason)
	return err
}

func (r *timeOffRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor_time_off WHERE id = $1`, id)
	return err
}
