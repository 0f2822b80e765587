package handler

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"newsapi/internal/model"
)

// ImageField is the multipart part name carrying the image file.
const ImageField = "image"

var (
	errInvalidBody      = errors.New("malformed request body")
	errUnsupportedMedia = errors.New("unsupported content type")
	errImageUnreadable  = errors.New("cannot read uploaded image")
	newsFieldNames      = [...]string{"title", "content", "author", "category"}
)

// newsFields holds the text fields of a create or update request. A nil
// pointer means the field was not sent.
type newsFields struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
}

func (f *newsFields) ref(name string) **string {
	switch name {
	case "title":
		return &f.Title
	case "content":
		return &f.Content
	case "author":
		return &f.Author
	default:
		return &f.Category
	}
}

func (f newsFields) input() model.NewsInput {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return model.NewsInput{
		Title:    deref(f.Title),
		Content:  deref(f.Content),
		Author:   deref(f.Author),
		Category: deref(f.Category),
	}
}

func (f newsFields) patch() model.NewsPatch {
	return model.NewsPatch{
		Title:    model.OptionalFromPtr(f.Title),
		Content:  model.OptionalFromPtr(f.Content),
		Author:   model.OptionalFromPtr(f.Author),
		Category: model.OptionalFromPtr(f.Category),
	}
}

// parseNewsRequest reads the text fields and the optional image from a
// multipart, urlencoded or JSON body. JSON bodies never carry an image.
func parseNewsRequest(c *fiber.Ctx) (newsFields, *model.Image, error) {
	var f newsFields

	switch mediaType(c) {
	case fiber.MIMEMultipartForm:
		form, err := c.MultipartForm()
		if err != nil {
			return f, nil, errInvalidBody
		}
		for _, name := range newsFieldNames {
			if v, ok := form.Value[name]; ok && len(v) > 0 {
				s := v[0]
				*f.ref(name) = &s
			}
		}
		img, err := readImagePart(form)
		return f, img, err

	case fiber.MIMEApplicationForm:
		args := c.Request().PostArgs()
		for _, name := range newsFieldNames {
			if args.Has(name) {
				s := string(args.Peek(name))
				*f.ref(name) = &s
			}
		}
		return f, nil, nil

	case fiber.MIMEApplicationJSON:
		if len(c.Body()) == 0 {
			return f, nil, nil
		}
		if err := c.BodyParser(&f); err != nil {
			return f, nil, errInvalidBody
		}
		return f, nil, nil

	case "":
		if len(c.Body()) == 0 {
			return f, nil, nil
		}
		return f, nil, errUnsupportedMedia

	default:
		return f, nil, errUnsupportedMedia
	}
}

// parseImageRequest reads only the image part of a multipart body.
func parseImageRequest(c *fiber.Ctx) (*model.Image, error) {
	if mediaType(c) != fiber.MIMEMultipartForm {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errInvalidBody
	}
	return readImagePart(form)
}

// readImagePart returns nil when no file was attached. Browsers submit an
// empty part with no filename for an untouched file input.
func readImagePart(form *multipart.Form) (*model.Image, error) {
	files := form.File[ImageField]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	if fh.Size == 0 && fh.Filename == "" {
		return nil, nil
	}

	fd, err := fh.Open()
	if err != nil {
		return nil, errImageUnreadable
	}
	defer fd.Close()

	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, errImageUnreadable
	}

	ct, _, err := mime.ParseMediaType(fh.Header.Get(fiber.HeaderContentType))
	if err != nil {
		ct = ""
	}
	return &model.Image{Data: data, MimeType: ct}, nil
}

func mediaType(c *fiber.Ctx) string {
	ct := string(c.Request().Header.ContentType())
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mt
}

// writeRequestError maps parse failures to client errors.
func writeRequestError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errUnsupportedMedia):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
			"use multipart/form-data, application/x-www-form-urlencoded or application/json")
	case errors.Is(err, errImageUnreadable):
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	default:
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
	}
}

// parseID reads the :id route parameter; ok is false after an error
// response has been written.
func parseID(c *fiber.Ctx) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
	}
	return id, true, nil
}

// queryInt parses an optional integer query parameter; absent yields 0.
func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
