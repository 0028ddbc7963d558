package seeder

import (
	"context"

	"jobboard/internal/database"
)

// ProfilesSeeder gives the demo jobseeker a skill set and a résumé so the
// apply and recommend flows work out of the box.
type ProfilesSeeder struct{}

func (ProfilesSeeder) Name() string { return "profiles" }

func (ProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "profiles", "user_id", "headline", "experience", "skills", "resume_url"); err != nil {
		return err
	}

	_, err := db.Exec(ctx, `
INSERT INTO profiles (user_id, headline, experience, skills, resume_url)
SELECT id, 'Backend developer', 3, 'Go, PostgreSQL, Redis, Docker', 'https://files.jobboard.local/resume/joko.pdf'
FROM users WHERE email = $1
ON CONFLICT (user_id) DO NOTHING`, "jobseeker@jobboard.local")
	return err
}
