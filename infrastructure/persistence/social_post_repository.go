package persistence

import (
	"context"
	"database/sql"
	"time"

	"creedava-api/domain/model"
)

// SocialPostRepository is the PostgreSQL store for scheduled LinkedIn posts.
type SocialPostRepository struct{ db *sql.DB }

func NewSocialPostRepository(db *sql.DB) *SocialPostRepository {
	return &SocialPostRepository{db: db}
}

func (r *SocialPostRepository) Create(ctx context.Context, p *model.SocialPost) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = model.SocialPostStatusScheduled
	}
	q := `INSERT INTO social_posts (organization_id, body, scheduled_at, status, attempt_count, created_at, updated_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		p.OrganizationID, p.Body, p.ScheduledAt, p.Status, p.AttemptCount, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *SocialPostRepository) List(ctx context.Context, limit, offset int) ([]model.SocialPost, int64, error) {
	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM social_posts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, organization_id, body, scheduled_at, status, external_ref, error_message, attempt_count, published_at, created_at, updated_at
		 FROM social_posts ORDER BY scheduled_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.SocialPost, 0, limit)
	for rows.Next() {
		p, err := scanSocialPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

// FetchDue returns scheduled posts whose time has come, oldest first.
func (r *SocialPostRepository) FetchDue(ctx context.Context, now time.Time, limit int) ([]model.SocialPost, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, organization_id, body, scheduled_at, status, external_ref, error_message, attempt_count, published_at, created_at, updated_at
		 FROM social_posts WHERE status=$1 AND scheduled_at<=$2 ORDER BY scheduled_at ASC LIMIT $3`,
		model.SocialPostStatusScheduled, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SocialPost, 0, limit)
	for rows.Next() {
		p, err := scanSocialPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *SocialPostRepository) MarkPublished(ctx context.Context, id int64, externalRef string, publishedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE social_posts SET status=$1, external_ref=$2, published_at=$3, error_message=NULL, updated_at=$4 WHERE id=$5`,
		model.SocialPostStatusPublished, externalRef, publishedAt, time.Now().UTC(), id)
	return err
}

func (r *SocialPostRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE social_posts SET status=$1, error_message=$2, attempt_count=attempt_count+1, updated_at=$3 WHERE id=$4`,
		model.SocialPostStatusFailed, errMsg, time.Now().UTC(), id)
	return err
}

func scanSocialPost(rows *sql.Rows) (*model.SocialPost, error) {
	var p model.SocialPost
	var externalRef, errorMessage sql.NullString
	var publishedAt sql.NullTime
	if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Body, &p.ScheduledAt, &p.Status,
		&externalRef, &errorMessage, &p.AttemptCount, &publishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if externalRef.Valid {
		p.ExternalRef = &externalRef.String
	}
	if errorMessage.Valid {
		p.ErrorMessage = &errorMessage.String
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	return &p, nil
}
