package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/user/app"
	"github.com/dwikikusuma/shop-backoffice/internal/user/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/google/uuid"
)

const userColumns = `id, name, email, password_hash, role, active, created_at, updated_at`

type UserRepo struct {
	db database.DBTX
}

func NewUserRepo(db database.DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	now := database.Now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.Active,
		database.FormatTime(u.CreatedAt), database.FormatTime(u.UpdatedAt))
	if database.IsUniqueViolation(err) {
		return domain.User{}, app.ErrEmailInUse
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u.UpdatedAt = database.Now()

	res, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, email = ?, password_hash = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		u.Name, u.Email, u.PasswordHash, u.Active, database.FormatTime(u.UpdatedAt), u.ID)
	if database.IsUniqueViolation(err) {
		return domain.User{}, app.ErrEmailInUse
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.User{}, app.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if database.IsForeignKeyViolation(err) {
		return app.ErrUserInUse
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrUserNotFound.Withf("user %s not found", id)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrUserNotFound.Withf("user %s not found", id)
	}
	return u, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(email))
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, app.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepo) List(ctx context.Context, f domain.ListFilter) ([]domain.User, error) {
	var (
		where []string
		args  []any
	)
	if f.Role != "" {
		where = append(where, "role = ?")
		args = append(args, string(f.Role))
	}
	if f.Active != nil {
		where = append(where, "active = ?")
		args = append(args, *f.Active)
	}

	q := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY active DESC, name ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u                domain.User
		role             string
		created, updated database.Timestamp
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Active, &created, &updated); err != nil {
		return domain.User{}, err
	}
	u.Role = auth.Role(role)
	u.CreatedAt = created.Time
	u.UpdatedAt = updated.Time
	return u, nil
}
