package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/violethawk/server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `u.id, u.screen_name, u.email, u.phone, u.admin, u.disabled, u.banned,
			  u.salt, u.salt_pos, u.password_hash, u.join_date, u.last_seen`

func (r *UserRepository) scanUser(ctx context.Context, row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.ScreenName, &user.Email, &user.Phone, &user.Admin, &user.Disabled, &user.Banned,
		&user.Credential.Salt, &user.Credential.SaltPos, &user.Credential.PasswordHash,
		&user.JoinDate, &user.LastSeen,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, storeErr(err)
	}

	rows, err := r.db.Query(ctx, `SELECT blocked_id FROM blocks WHERE user_id = $1`, user.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to load block list: %w", storeErr(err))
	}
	defer rows.Close()

	for rows.Next() {
		var blocked uuid.UUID
		if err := rows.Scan(&blocked); err != nil {
			return model.User{}, storeErr(err)
		}
		user.Blocked = append(user.Blocked, blocked)
	}
	if err := rows.Err(); err != nil {
		return model.User{}, storeErr(err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1`
	return r.scanUser(ctx, r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	return r.scanUser(ctx, r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, screen_name, email, phone, admin, disabled, banned, salt, salt_pos, password_hash, join_date, last_seen)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.ScreenName, user.Email, user.Phone, user.Admin, user.Disabled, user.Banned,
		user.Credential.Salt, user.Credential.SaltPos, user.Credential.PasswordHash,
		user.JoinDate, user.LastSeen,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, fmt.Errorf("%w: user with email %s", model.ErrDuplicate, user.Email)
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", storeErr(err))
	}

	return user, nil
}

func (r *UserRepository) Block(ctx context.Context, userID, blockedID uuid.UUID) error {
	query := `INSERT INTO blocks (user_id, blocked_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.Exec(ctx, query, userID, blockedID); err != nil {
		return fmt.Errorf("failed to record block: %w", storeErr(err))
	}
	return nil
}

func (r *UserRepository) SetStatus(ctx context.Context, id uuid.UUID, disabled, banned bool) error {
	query := `UPDATE users SET disabled = $2, banned = $3 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, disabled, banned)
	if err != nil {
		return fmt.Errorf("failed to set account status: %w", storeErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ReplaceCredential(ctx context.Context, id uuid.UUID, cred model.Credential) error {
	query := `UPDATE users SET salt = $2, salt_pos = $3, password_hash = $4 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, cred.Salt, cred.SaltPos, cred.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to replace credential: %w", storeErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, id uuid.UUID, when time.Time) error {
	query := `UPDATE users SET last_seen = $2 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, when)
	if err != nil {
		return fmt.Errorf("failed to update last seen: %w", storeErr(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
