package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"newsapi/internal/model"
	"newsapi/internal/repository"
)

// NewsSQLite is a SQLite implementation of repository.NewsRepository used for local development.
// The database must be opened with database.SQLiteDriverName.
type NewsSQLite struct {
	db *sql.DB
}

// NewNewsSQLite creates a new NewsSQLite repository.
func NewNewsSQLite(db *sql.DB) *NewsSQLite {
	return &NewsSQLite{db: db}
}

var _ repository.NewsRepository = (*NewsSQLite)(nil)

const newsColumns = `id, title, content, author, category, created_at, updated_at`

// unicode_lower is registered by database.SQLiteDriverName; the pattern is lower-cased in Go.
const searchClause = ` WHERE unicode_lower(title) LIKE ? ESCAPE '\' OR unicode_lower(author) LIKE ? ESCAPE '\'` +
	` OR unicode_lower(category) LIKE ? ESCAPE '\' OR unicode_lower(content) LIKE ? ESCAPE '\'`

type scanner interface {
	Scan(dest ...any) error
}

func scanNews(s scanner) (*model.NewsItem, error) {
	var n model.NewsItem
	if err := s.Scan(&n.ID, &n.Title, &n.Content, &n.Author, &n.Category, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return &n, nil
}

// List returns news items newest first using LIMIT/OFFSET pagination and a total count.
func (r *NewsSQLite) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.NewsItem], error) {
	where := ""
	var args []any
	if lq.Search != "" {
		p := repository.LikePattern(strings.ToLower(lq.Search))
		where = searchClause
		args = append(args, p, p, p, p)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + newsColumns + ` FROM news` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, lq.Limit, lq.Offset)...)
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
	return &repository.PageResult[model.NewsItem]{Items: items, Total: total}, nil
}

func (r *NewsSQLite) FindByID(ctx context.Context, id int64) (*model.NewsItem, error) {
	return scanNews(r.db.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news WHERE id = ?`, id))
}

func (r *NewsSQLite) FindImage(ctx context.Context, id int64) (*model.Image, error) {
	var (
		data []byte
		mime sql.NullString
		key  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT image_data, image_mime, image_key FROM news WHERE id = ?`, id).
		Scan(&data, &mime, &key)
	if err != nil {
		return nil, err
	}
	if !mime.Valid {
		return nil, sql.ErrNoRows
	}
	return &model.Image{Data: data, MimeType: mime.String, Key: key.String}, nil
}

func (r *NewsSQLite) Create(ctx context.Context, in model.NewsInput, img *model.Image, now time.Time) (*model.NewsItem, error) {
	const q = `
		INSERT INTO news (title, content, author, category, image_data, image_mime, image_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	data, mime, key := repository.ImageArgs(img)
	res, err := r.db.ExecContext(ctx, q,
		in.Title, in.Content, in.Author, in.Category, data, mime, key, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *NewsSQLite) Update(ctx context.Context, id int64, patch model.NewsPatch, img *model.Image, now time.Time) (*model.NewsItem, error) {
	sets := []string{
		"title = COALESCE(?, title)",
		"content = COALESCE(?, content)",
		"author = COALESCE(?, author)",
		"category = COALESCE(?, category)",
		"updated_at = ?",
	}
	args := []any{
		repository.NullString(patch.Title),
		repository.NullString(patch.Content),
		repository.NullString(patch.Author),
		repository.NullString(patch.Category),
		now,
	}
	if img != nil {
		data, mime, key := repository.ImageArgs(img)
		sets = append(sets, "image_data = ?", "image_mime = ?", "image_key = ?")
		args = append(args, data, mime, key)
	}
	args = append(args, id)

	return r.execAndFind(ctx, id, `UPDATE news SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
}

func (r *NewsSQLite) UpdateImage(ctx context.Context, id int64, img *model.Image, now time.Time) (*model.NewsItem, error) {
	const q = `UPDATE news SET image_data = ?, image_mime = ?, image_key = ?, updated_at = ? WHERE id = ?`
	data, mime, key := repository.ImageArgs(img)
	return r.execAndFind(ctx, id, q, data, mime, key, now, id)
}

// execAndFind runs a single-row mutation and reads the row back.
// The read is a separate statement; a concurrent delete in between surfaces as sql.ErrNoRows.
func (r *NewsSQLite) execAndFind(ctx context.Context, id int64, q string, args ...any) (*model.NewsItem, error) {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if err := repository.RequireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *NewsSQLite) DeleteImage(ctx context.Context, id int64, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE news SET image_data = NULL, image_mime = NULL, image_key = NULL, updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return err
	}
	return repository.RequireAffected(res)
}

func (r *NewsSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return repository.RequireAffected(res)
}
