package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"newsapi/internal/model"
	"newsapi/internal/repository"
)

// NewsPostgres is a PostgreSQL implementation of repository.NewsRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type NewsPostgres struct {
	db *sql.DB
}

// NewNewsPostgres creates a new NewsPostgres repository.
func NewNewsPostgres(db *sql.DB) *NewsPostgres {
	return &NewsPostgres{db: db}
}

var _ repository.NewsRepository = (*NewsPostgres)(nil)

const newsColumns = `id, title, content, author, category, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanNews(s scanner) (*model.NewsItem, error) {
	var n model.NewsItem
	if err := s.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.Author,
		&n.Category,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns news items newest first using LIMIT/OFFSET pagination and a total count.
func (r *NewsPostgres) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.NewsItem], error) {
	where := ""
	var args []any
	if lq.Search != "" {
		where = ` WHERE title ILIKE $1 OR author ILIKE $1 OR category ILIKE $1 OR content ILIKE $1`
		args = append(args, repository.LikePattern(lq.Search))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	qList := `SELECT ` + newsColumns + ` FROM news` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, lq.Limit, lq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.NewsItem, 0)
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.NewsItem]{
		Items: items,
		Total: total,
	}, nil
}

// FindByID fetches a single news item by its ID.
func (r *NewsPostgres) FindByID(ctx context.Context, id int64) (*model.NewsItem, error) {
	const q = `SELECT ` + newsColumns + ` FROM news WHERE id = $1`
	return scanNews(r.db.QueryRowContext(ctx, q, id))
}

// FindImage fetches the image columns of a news item.
func (r *NewsPostgres) FindImage(ctx context.Context, id int64) (*model.Image, error) {
	const q = `SELECT image_data, image_mime, image_key FROM news WHERE id = $1`
	var (
		data []byte
		mime sql.NullString
		key  sql.NullString
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&data, &mime, &key); err != nil {
		return nil, err
	}
	if !mime.Valid {
		return nil, sql.ErrNoRows
	}
	return &model.Image{Data: data, MimeType: mime.String, Key: key.String}, nil
}

// Create inserts a new news row and returns the stored record.
func (r *NewsPostgres) Create(ctx context.Context, in model.NewsInput, img *model.Image, now time.Time) (*model.NewsItem, error) {
	const q = `
		INSERT INTO news (title, content, author, category, image_data, image_mime, image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + newsColumns
	data, mime, key := repository.ImageArgs(img)
	return scanNews(r.db.QueryRowContext(ctx, q,
		in.Title,
		in.Content,
		in.Author,
		in.Category,
		data,
		mime,
		key,
		now,
	))
}

// Update applies COALESCE semantics: a NULL argument keeps the current column value.
func (r *NewsPostgres) Update(ctx context.Context, id int64, patch model.NewsPatch, img *model.Image, now time.Time) (*model.NewsItem, error) {
	sets := []string{
		"title = COALESCE($2, title)",
		"content = COALESCE($3, content)",
		"author = COALESCE($4, author)",
		"category = COALESCE($5, category)",
		"updated_at = $6",
	}
	args := []any{
		id,
		repository.NullString(patch.Title),
		repository.NullString(patch.Content),
		repository.NullString(patch.Author),
		repository.NullString(patch.Category),
		now,
	}
	if img != nil {
		data, mime, key := repository.ImageArgs(img)
		sets = append(sets, "image_data = $7", "image_mime = $8", "image_key = $9")
		args = append(args, data, mime, key)
	}

	q := `UPDATE news SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + newsColumns
	return scanNews(r.db.QueryRowContext(ctx, q, args...))
}

// UpdateImage replaces the image columns of a news item.
func (r *NewsPostgres) UpdateImage(ctx context.Context, id int64, img *model.Image, now time.Time) (*model.NewsItem, error) {
	const q = `
		UPDATE news SET image_data = $2, image_mime = $3, image_key = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + newsColumns
	data, mime, key := repository.ImageArgs(img)
	return scanNews(r.db.QueryRowContext(ctx, q, id, data, mime, key, now))
}

// DeleteImage clears the image columns of a news item.
func (r *NewsPostgres) DeleteImage(ctx context.Context, id int64, now time.Time) error {
	const q = `UPDATE news SET image_data = NULL, image_mime = NULL, image_key = NULL, updated_at = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, now)
	if err != nil {
		return err
	}
	return repository.RequireAffected(res)
}

// Delete removes a news row by ID.
func (r *NewsPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM news WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return repository.RequireAffected(res)
}
