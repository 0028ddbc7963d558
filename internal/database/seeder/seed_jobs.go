package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

// JobsSeeder posts a few open jobs for the demo recruiter when they have none.
type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "title", "company", "skills", "location", "description",
		"salary_min", "salary_max", "experience_required", "job_type", "posted_by", "status",
	); err != nil {
		return err
	}

	var recruiterID string
	if err := db.QueryRow(ctx, `SELECT id::text FROM users WHERE email = $1`, "recruiter@jobboard.local").Scan(&recruiterID); err != nil {
		return fmt.Errorf("find demo recruiter: %w", err)
	}

	var existing int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE posted_by = $1`, recruiterID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	items := []struct {
		Title       string
		Company     string
		Skills      string
		Location    string
		Description string
		SalaryMin   int
		SalaryMax   int
		Experience  int
		JobType     string
	}{
		{
			Title:       "Backend Engineer (Go)",
			Company:     "JobBoard Labs",
			Skills:      "Go, PostgreSQL, Redis",
			Location:    "Jakarta, ID",
			Description: "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
			SalaryMin:   15000000,
			SalaryMax:   25000000,
			Experience:  2,
			JobType:     "full-time",
		},
		{
			Title:       "Fullstack Engineer (React + Go)",
			Company:     "JobBoard Labs",
			Skills:      "React, TypeScript, Go",
			Location:    "Bandung, ID",
			Description: "Develop web apps with React/TypeScript and backend services in Go.",
			SalaryMin:   12000000,
			SalaryMax:   20000000,
			Experience:  1,
			JobType:     "hybrid",
		},
		{
			Title:       "DevOps Engineer",
			Company:     "CloudKita",
			Skills:      "Docker, Kubernetes, AWS",
			Location:    "Remote",
			Description: "Operate CI/CD, Docker, Kubernetes, and cloud infrastructure for production workloads.",
			SalaryMin:   18000000,
			SalaryMax:   30000000,
			Experience:  3,
			JobType:     "remote",
		},
	}

	for _, it := range items {
		if _, err := db.Exec(
			ctx,
			`INSERT INTO jobs (title, company, skills, location, description, salary_min, salary_max, experience_required, job_type, posted_by, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'open')`,
			it.Title, it.Company, it.Skills, it.Location, it.Description,
			it.SalaryMin, it.SalaryMax, it.Experience, it.JobType, recruiterID,
		); err != nil {
			return err
		}
	}
	return nil
}
