package repository

import (
	"database/sql"

	"newsapi/internal/model"
)

// NullString maps an optional patch field to a COALESCE argument:
// NULL keeps the stored value.
func NullString(o model.Optional[string]) sql.NullString {
	return sql.NullString{String: o.Value, Valid: o.Set}
}

// ImageArgs maps an image to its image_data, image_mime and image_key columns.
// Bytes and key are mutually exclusive; the MIME type is present with either.
func ImageArgs(img *model.Image) (data any, mime, key sql.NullString) {
	if img == nil {
		return nil, mime, key
	}
	mime = sql.NullString{String: img.MimeType, Valid: true}
	if img.Key != "" || img.Data == nil {
		return nil, mime, sql.NullString{String: img.Key, Valid: img.Key != ""}
	}
	return img.Data, mime, key
}

// RequireAffected turns a statement that touched no row into sql.ErrNoRows.
func RequireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
