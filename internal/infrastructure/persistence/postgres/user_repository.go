package postgres

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, name, email, password_hash, role, status, created_at`

type UserRepository struct {
	db *PostgresDB

	stmtCreate       *sql.Stmt
	stmtGetByID      *sql.Stmt
	stmtGetByEmail   *sql.Stmt
	stmtList         *sql.Stmt
	stmtUpdateStatus *sql.Stmt
}

func NewUserRepository(db *PostgresDB) (*UserRepository, error) {
	r := &UserRepository{db: db}

	prepare := func(dst **sql.Stmt, query string) error {
		s, err := db.sqlDB().PrepareContext(context.Background(), query)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	steps := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate, `INSERT INTO users (id, name, email, password_hash, role, status) VALUES ($1, $2, $3, $4, $5, $6)`},
		{&r.stmtGetByID, `SELECT ` + userColumns + ` FROM users WHERE id = $1`},
		{&r.stmtGetByEmail, `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`},
		{&r.stmtList, `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`},
		{&r.stmtUpdateStatus, `UPDATE users SET status = $2 WHERE id = $1`},
	}
	for _, s := range steps {
		if err := prepare(s.dst, s.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtList)
	closeStmt(r.stmtUpdateStatus)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	if u.Status == "" {
		u.Status = user.StatusActive
	}
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), string(u.Status))
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.stmtGetByID.QueryRowContext(ctx, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.stmtGetByEmail.QueryRowContext(ctx, email)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status user.Status) error {
	res, err := r.stmtUpdateStatus.ExecContext(ctx, id, string(status))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	var role, status string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &status, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	u.Status = user.Status(status)
	return u, nil
}
