package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"newsdigest/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var ErrDuplicateUsername = errors.New("username already exists")

const userColumns = "id, username, password_hash, COALESCE(news_api_key, ''), COALESCE(ai_api_key, ''), created_at"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users(username, password_hash)
		VALUES($1, $2)
		RETURNING `+userColumns,
		username, passwordHash,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.NewsAPIKey, &u.AIAPIKey, &u.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, ErrDuplicateUsername
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.NewsAPIKey, &u.AIAPIKey, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

// UpdateAPIKeys changes only the keys present in upd and returns the updated user.
func (r *UserRepository) UpdateAPIKeys(ctx context.Context, id int64, upd model.APIKeyUpdate) (*model.User, error) {
	if upd.Empty() {
		return r.GetUserByID(ctx, id)
	}

	query, args, err := buildAPIKeyUpdate(id, upd)
	if err != nil {
		return nil, err
	}

	var u model.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.NewsAPIKey, &u.AIAPIKey, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func buildAPIKeyUpdate(id int64, upd model.APIKeyUpdate) (string, []interface{}, error) {
	q := sq.Update("users").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(sq.Dollar)

	if upd.NewsAPIKey != nil {
		q = q.Set("news_api_key", nullIfBlank(*upd.NewsAPIKey))
	}
	if upd.AIAPIKey != nil {
		q = q.Set("ai_api_key", nullIfBlank(*upd.AIAPIKey))
	}

	return q.ToSql()
}

func nullIfBlank(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
