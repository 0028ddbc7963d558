package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	Upsert(ctx context.Context, p user.Profile) (user.Profile, error)
	UpdateResume(ctx context.Context, userID uuid.UUID, resumeURL string) (user.Profile, error)
	// ListCandidates returns every profile joined with its user.
	ListCandidates(ctx context.Context) ([]user.Candidate, error)
}

const profileColumns = `id, user_id, headline, experience, skills, resume_url`

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if isNoRows(err) {
			return user.Profile{}, ErrProfileNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p user.Profile) (user.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (id, user_id, headline, experience, skills)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET headline = EXCLUDED.headline, experience = EXCLUDED.experience, skills = EXCLUDED.skills
		 RETURNING `+profileColumns,
		p.ID, p.UserID, p.Headline, p.Experience, p.Skills,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) UpdateResume(ctx context.Context, userID uuid.UUID, resumeURL string) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (id, user_id, resume_url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET resume_url = EXCLUDED.resume_url
		 RETURNING `+profileColumns,
		uuid.New(), userID, resumeURL,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) ListCandidates(ctx context.Context) ([]user.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.user_id, p.headline, p.experience, p.skills, p.resume_url, u.name, u.email, u.role
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Candidate, 0)
	for rows.Next() {
		var c user.Candidate
		var role string
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Headline, &c.Experience, &c.Skills, &c.ResumeURL, &c.Name, &c.Email, &role,
		); err != nil {
			return nil, err
		}
		c.Role = user.Role(role)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row database.Row) (user.Profile, error) {
	var p user.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Headline, &p.Experience, &p.Skills, &p.ResumeURL); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}
