package seeder

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/database"

	"golang.org/x/crypto/bcrypt"
)

type DemoAccount struct {
	Name  string
	Email string
	Role  string
}

var DemoAccounts = []DemoAccount{
	{Name: "Admin", Email: "admin@jobboard.local", Role: "admin"},
	{Name: "Rina Recruiter", Email: "recruiter@jobboard.local", Role: "recruiter"},
	{Name: "Joko Seeker", Email: "jobseeker@jobboard.local", Role: "jobseeker"},
}

// AccountsSeeder inserts the demo accounts once. Existing emails are left alone.
type AccountsSeeder struct {
	Password string
}

func (AccountsSeeder) Name() string { return "accounts" }

func (s AccountsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "name", "email", "password_hash", "role", "status"); err != nil {
		return err
	}
	password := strings.TrimSpace(s.Password)
	if password == "" {
		return fmt.Errorf("empty demo password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, a := range DemoAccounts {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO users (name, email, password_hash, role, status) VALUES ($1, $2, $3, $4, 'active') ON CONFLICT (email) DO NOTHING`,
			a.Name, a.Email, string(hash), a.Role,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
