package repository

import (
	"context"
	"database/sql"

	"newsdigest/internal/model"
)

type SavedArticleRepository struct {
	db *sql.DB
}

func NewSavedArticleRepository(db *sql.DB) *SavedArticleRepository {
	return &SavedArticleRepository{db: db}
}

func (r *SavedArticleRepository) GetSavedArticles(ctx context.Context, userID int64) ([]model.SavedArticle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, COALESCE(description, ''), url, COALESCE(image_url, ''),
		       COALESCE(source, ''), COALESCE(category, ''), published_at, saved_at
		FROM saved_articles
		WHERE user_id = $1
		ORDER BY saved_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.SavedArticle
	for rows.Next() {
		var a model.SavedArticle
		var publishedAt sql.NullTime
		err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.URL, &a.ImageURL,
			&a.Source, &a.Category, &publishedAt, &a.SavedAt)
		if err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			a.PublishedAt = &publishedAt.Time
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *SavedArticleRepository) SaveArticle(ctx context.Context, article *model.SavedArticle) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO saved_articles(user_id, title, description, url, image_url, source, category, published_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, saved_at
	`, article.UserID, article.Title, article.Description, article.URL, article.ImageURL,
		article.Source, article.Category, article.PublishedAt,
	).Scan(&article.ID, &article.SavedAt)
}

func (r *SavedArticleRepository) DeleteSavedArticle(ctx context.Context, id, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM saved_articles WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}
