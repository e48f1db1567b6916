package scheduling

import (
	"context"
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

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const apptCols = `a.id, a.patient_id, a.doctor_id, a.appointment_date, a.appointment_time,
	a.appointment_type, a.status, a.notes, a.duration_minutes, a.created_at, a.updated_at`

const detailCols = apptCols + `,
	p.name, p.phone, p.email,
	b.amount, b.insurance_coverage, b.status`

func (r *appointmentRepoPG) scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time,
		&a.Type, &a.Status, &a.Notes, &a.DurationMinutes, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *appointmentRepoPG) scanDetail(row pgx.Row) (*AppointmentDetail, error) {
	var d AppointmentDetail
	var billing BillingInfo
	err := row.Scan(&d.ID, &d.PatientID, &d.DoctorID, &d.Date, &d.Time,
		&d.Type, &d.Status, &d.Notes, &d.DurationMinutes, &d.CreatedAt, &d.UpdatedAt,
		&d.PatientName, &d.PatientPhone, &d.PatientEmail,
		&billing.Amount, &billing.InsuranceCoverage, &billing.Status)
	if err != nil {
		return nil, err
	}
	if billing.Amount != nil || billing.InsuranceCoverage != nil || billing.Status != nil {
		billing.PatientResponsibility = billing.Responsibility()
		d.Billing = &billing
	}
	return &d, nil
}

const detailFrom = ` FROM appointment a
	LEFT JOIN patient p ON a.patient_id = p.id
	LEFT JOIN billing_record b ON b.appointment_id = a.id`

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, appointment_date, appointment_time,
			appointment_type, status, notes, duration_minutes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Time,
		a.Type, a.Status, a.Notes, a.DurationMinutes)
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppt(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment a WHERE a.id = $1`, id))
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepoPG) ListAll(ctx context.Context, limit, offset int) ([]*AppointmentDetail, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+detailCols+detailFrom+`
		 ORDER BY a.appointment_date ASC, a.appointment_time ASC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*AppointmentDetail
	for rows.Next() {
		d, err := r.scanDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentDetail, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+detailCols+detailFrom+`
		 WHERE a.patient_id = $1
		 ORDER BY a.appointment_date ASC, a.appointment_time ASC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AppointmentDetail
	for rows.Next() {
		d, err := r.scanDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) ListByDoctorRange(ctx context.Context, doctorID uuid.UUID, start, end time.Time) ([]*AppointmentDetail, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+detailCols+detailFrom+`
		 WHERE a.doctor_id = $1 AND a.appointment_date BETWEEN $2::date AND $3::date
		 ORDER BY a.appointment_date ASC, a.appointment_time ASC`, doctorID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AppointmentDetail
	for rows.Next() {
		d, err := r.scanDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// CountActiveAt counts non-cancelled appointments holding a slot. Date and
// time components are compared separately; cancelled rows never consume
// capacity.
func (r *appointmentRepoPG) CountActiveAt(ctx context.Context, doctorID uuid.UUID, date time.Time, timeLabel string) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2::date
		  AND appointment_time = $3 AND status <> 'Cancelled'`,
		doctorID, date, timeLabel).Scan(&count)
	return count, err
}

func (r *appointmentRepoPG) CountActiveByTime(ctx context.Context, doctorID uuid.UUID, date time.Time) (map[string]int, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT appointment_time, COUNT(*) FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2::date AND status <> 'Cancelled'
		GROUP BY appointment_time`, doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		counts[label] = count
	}
	return counts, rows.Err()
}
