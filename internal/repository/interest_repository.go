package repository

import (
	"context"
	"database/sql"

	"newsdigest/internal/model"
)

type InterestRepository struct {
	db *sql.DB
}

func NewInterestRepository(db *sql.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

func (r *InterestRepository) GetInterests(ctx context.Context, userID int64) ([]model.Interest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, active, created_at
		FROM interests
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []model.Interest
	for rows.Next() {
		var i model.Interest
		err := rows.Scan(&i.ID, &i.UserID, &i.Name, &i.Active, &i.CreatedAt)
		if err != nil {
			return nil, err
		}
		interests = append(interests, i)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return interests, nil
}

func (r *InterestRepository) CreateInterest(ctx context.Context, interest *model.Interest) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO interests(user_id, name)
		VALUES($1, $2)
		RETURNING id, active, created_at
	`, interest.UserID, interest.Name).Scan(&interest.ID, &interest.Active, &interest.CreatedAt)
}

// DeleteInterest is scoped to the owner; deleting another user's row is a no-op.
func (r *InterestRepository) DeleteInterest(ctx context.Context, id, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM interests WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}
