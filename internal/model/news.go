package model

import "time"

// NewsItem is a single news entry as exposed by the API.
// Image bytes are never part of it; they are fetched separately by id.
type NewsItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Image is the binary attachment of a news item.
// Data holds the bytes when they live in the news table; Key is set instead
// when the bytes were offloaded to object storage.
type Image struct {
	Data     []byte
	MimeType string
	Key      string
}

// Size returns the payload length in bytes.
func (i *Image) Size() int64 {
	return int64(len(i.Data))
}

// NewsInput carries the fields of a news item to be created.
// Lengths are counted in characters after trimming.
type NewsInput struct {
	Title    string `json:"title" validate:"min=3,max=120"`
	Content  string `json:"content" validate:"min=10"`
	Author   string `json:"author" validate:"min=2,max=60"`
	Category string `json:"category" validate:"min=2,max=40"`
}

// NewsPatch carries a partial update. Unset fields keep their stored value.
type NewsPatch struct {
	Title    Optional[string]
	Content  Optional[string]
	Author   Optional[string]
	Category Optional[string]
}

// Empty reports whether no field is set.
func (p NewsPatch) Empty() bool {
	return !p.Title.Set && !p.Content.Set && !p.Author.Set && !p.Category.Set
}
