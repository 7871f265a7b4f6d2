package postgres

import (
	"context"
	"fmt"

	"github.com/shopadmin/shopadmin/internal/core/storage"
)

func (a *Adapter) FindUsers(ctx context.Context, f storage.UserFilter) ([]storage.User, error) {
	w := userWhere(f)
	rows, err := a.db.QueryContext(ctx, querySelectUsers+w.String()+" ORDER BY created_at ASC, id ASC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]storage.User, 0)
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (a *Adapter) CountUsers(ctx context.Context, f storage.UserFilter) (int64, error) {
	return a.count(ctx, queryCountUsers, userWhere(f))
}

func (a *Adapter) GetUser(ctx context.Context, id string) (*storage.User, error) {
	u, err := scanUserRow(a.db.QueryRowContext(ctx, queryGetUser, id))
	if err != nil {
		return nil, notFound("user", id, err)
	}
	return u, nil
}

func (a *Adapter) CreateUser(ctx context.Context, u *storage.User) error {
	_, err := a.db.ExecContext(ctx, queryInsertUser,
		u.ID, u.Name, u.Email, u.Photo, u.Role, u.Gender, u.DOB, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (a *Adapter) DeleteUser(ctx context.Context, id string) error {
	res, err := a.db.ExecContext(ctx, queryDeleteUser, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(res, "user", id)
}
