package persistence

import (
	"context"
	"database/sql"
	"time"

	"creedava-api/domain/model"
)

// LeadRepositoryMssql is the Azure SQL variant of the lead store.
type LeadRepositoryMssql struct{ db *sql.DB }

func NewLeadRepositoryMssql(db *sql.DB) *LeadRepositoryMssql { return &LeadRepositoryMssql{db: db} }

func (r *LeadRepositoryMssql) Create(ctx context.Context, l *model.Lead) error {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = model.LeadStatusNew
	}
	q := `INSERT INTO leads (name, email, phone, company, message, source, status, created_at, updated_at)
		  VALUES (@p1,@p2,@p3,@p4,@p5,@p6,@p7,@p8,@p9); SELECT SCOPE_IDENTITY()`
	return r.db.QueryRowContext(ctx, q,
		l.Name, l.Email, l.Phone, l.Company, l.Message, l.Source, l.Status, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
}

func (r *LeadRepositoryMssql) GetByID(ctx context.Context, id int64) (*model.Lead, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, company, message, source, status, created_at, updated_at FROM leads WHERE id=@p1`, id)
	return scanLead(row)
}

func (r *LeadRepositoryMssql) List(ctx context.Context, status string, limit, offset int) ([]model.Lead, int64, error) {
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
		if err = r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM leads WHERE status=@p1`, status).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, name, email, phone, company, message, source, status, created_at, updated_at
			 FROM leads WHERE status=@p1 ORDER BY created_at DESC OFFSET @p2 ROWS FETCH NEXT @p3 ROWS ONLY`,
			status, offset, limit)
	} else {
		if err = r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM leads`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, name, email, phone, company, message, source, status, created_at, updated_at
			 FROM leads ORDER BY created_at DESC OFFSET @p1 ROWS FETCH NEXT @p2 ROWS ONLY`,
			offset, limit)
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

func (r *LeadRepositoryMssql) Update(ctx context.Context, l *model.Lead) error {
	l.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE leads SET status=@p1, phone=@p2, company=@p3, updated_at=@p4 WHERE id=@p5`,
		l.Status, l.Phone, l.Company, l.UpdatedAt, l.ID)
	return err
}

func (r *LeadRepositoryMssql) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id=@p1`, id)
	return err
}
