package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"newsapi/internal/model"
)

// DefaultMaxImageBytes is the upload ceiling for images (5 MiB).
const DefaultMaxImageBytes int64 = 5 * 1024 * 1024

// AllowedImageTypes lists the MIME types accepted for news images.
var AllowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// ValidationError reports which constraint an input violated.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrImageRequired is returned when an image-only update carries no file.
var ErrImageRequired = &ValidationError{Field: "image", Code: "FILE_REQUIRED", Message: "image file is required"}

var (
	validate = newValidator()

	// fieldTags holds the validate tag of every NewsInput field, keyed by JSON name,
	// so patches are checked against the same rules as creates.
	fieldTags = tagsOf(reflect.TypeOf(model.NewsInput{}))
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func tagsOf(t reflect.Type) map[string]string {
	tags := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		tags[name] = f.Tag.Get("validate")
	}
	return tags
}

// fieldError turns the first validator failure into a ValidationError
// with an INVALID_<FIELD> code.
func fieldError(field string, err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	if field == "" {
		field = fe.Field()
	}

	var msg string
	switch fe.Tag() {
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return &ValidationError{Field: field, Code: "INVALID_" + strings.ToUpper(field), Message: msg}
}

// normalizeInput trims every field and validates the result.
func normalizeInput(in model.NewsInput) (model.NewsInput, error) {
	in = model.NewsInput{
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		Author:   strings.TrimSpace(in.Author),
		Category: strings.TrimSpace(in.Category),
	}
	if err := validate.Struct(in); err != nil {
		return in, fieldError("", err)
	}
	return in, nil
}

// normalizePatch trims and validates the fields present in a patch.
// A present field that is blank after trimming fails its length rule
// instead of silently keeping the stored value.
func normalizePatch(p model.NewsPatch) (model.NewsPatch, error) {
	fields := []struct {
		name string
		opt  *model.Optional[string]
	}{
		{"title", &p.Title},
		{"content", &p.Content},
		{"author", &p.Author},
		{"category", &p.Category},
	}
	for _, f := range fields {
		if !f.opt.Set {
			continue
		}
		f.opt.Value = strings.TrimSpace(f.opt.Value)
		if err := validate.Var(f.opt.Value, fieldTags[f.name]); err != nil {
			return p, fieldError(f.name, err)
		}
	}
	return p, nil
}

// ValidateImage checks MIME type and size of an upload.
func ValidateImage(img *model.Image, maxBytes int64) error {
	if img == nil || len(img.Data) == 0 {
		return ErrImageRequired
	}
	if !AllowedImageTypes[strings.ToLower(img.MimeType)] {
		return &ValidationError{
			Field:   "image",
			Code:    "INVALID_IMAGE_TYPE",
			Message: "image must be one of image/png, image/jpeg, image/jpg, image/webp",
		}
	}
	if img.Size() > maxBytes {
		return &ValidationError{
			Field:   "image",
			Code:    "IMAGE_TOO_LARGE",
			Message: fmt.Sprintf("image must not exceed %d bytes", maxBytes),
		}
	}
	return nil
}
