package persistence

import (
	"context"
	"database/sql"
	"time"

	"creedava-api/domain/model"
)

// LeadRepository is the PostgreSQL lead store.
type LeadRepository struct{ db *sql.DB }

func NewLeadRepository(db *sql.DB) *LeadRepository { return &LeadRepository{db: db} }

func (r *LeadRepository) Create(ctx context.Context, l *model.Lead) error {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = model.LeadStatusNew
	}
	q := `INSERT INTO leads (name, email, phone, company, message, source, status, created_at, updated_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		l.Name, l.Email, l.Phone, l.Company, l.Message, l.Source, l.Status, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*model.Lead, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, company, message, source, status, created_at, updated_at FROM leads WHERE id=$1`, id)
	return scanLead(row)
}

func (r *LeadRepository) List(ctx context.Context, status string, limit, offset int) ([]model.Lead, int64, error) {
	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	var rows *sql.Rows
	var err error
	if status != "" {
		if err = r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM leads WHERE status=$1`, status).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, name, email, phone, company, message, source, status, created_at, updated_at
			 FROM leads WHERE status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	} else {
		if err = r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM leads`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, name, email, phone, company, message, source, status, created_at, updated_at
			 FROM leads ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Lead, 0, limit)
	for rows.Next() {
		var l model.Lead
		var phone, company, message, source sql.NullString
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &phone, &company, &message, &source, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, err
		}
		l.Phone = phone.String
		l.Company = company.String
		l.Message = message.String
		l.Source = source.String
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *LeadRepository) Update(ctx context.Context, l *model.Lead) error {
	l.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE leads SET status=$1, phone=$2, company=$3, updated_at=$4 WHERE id=$5`,
		l.Status, l.Phone, l.Company, l.UpdatedAt, l.ID)
	return err
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id=$1`, id)
	return err
}

func scanLead(row *sql.Row) (*model.Lead, error) {
	var l model.Lead
	var phone, company, message, source sql.NullString
	if err := row.Scan(&l.ID, &l.Name, &l.Email, &phone, &company, &message, &source, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	l.Phone = phone.String
	l.Company = company.String
	l.Message = message.String
	l.Source = source.String
	return &l, nil
}
