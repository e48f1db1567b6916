package intake

import (
	"context"
	"fmt"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const submissionCols = `id, name, email, phone, date_of_birth, address,
	medical_history, status, created_at`

func (r *repoPG) scanSubmission(row pgx.Row) (*Submission, error) {
	var s Submission
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.DateOfBirth, &s.Address,
		&s.MedicalHistory, &s.Status, &s.CreatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *Submission) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO intake_submission (id, name, email, phone, date_of_birth, address,
			medical_history, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.Name, s.Email, s.Phone, s.DateOfBirth, s.Address,
		s.MedicalHistory, s.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Submission, error) {
	return r.scanSubmission(r.conn(ctx).QueryRow(ctx,
		`SELECT `+submissionCols+` FROM intake_submission WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*Submission, int, error) {
	query := `SELECT ` + submissionCols + ` FROM intake_submission WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM intake_submission WHERE 1=1`
	var args []interface{}
	idx := 1

	if status != "" {
		query += ` AND status = $1`
		countQuery += ` AND status = $1`
		args = append(args, status)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Submission
	for rows.Next() {
		s, err := r.scanSubmission(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE intake_submission SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
