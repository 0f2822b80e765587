package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"newsapi/internal/http/middleware"
	"newsapi/internal/model"
	"newsapi/internal/service"
	serviceMocks "newsapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func sampleItem(id int64) *model.NewsItem {
	return &model.NewsItem{
		ID: id, Title: "Test Headline A", Content: "0123456789", Author: "Al", Category: "TV",
		CreatedAt: testTime, UpdatedAt: testTime,
	}
}

type formFile struct {
	name        string
	contentType string
	data        []byte
}

// multipartBody builds a form with the given fields and an optional image part.
func multipartBody(t *testing.T, fields map[string]string, file *formFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decodeError(t *testing.T, r io.Reader) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(r).Decode(&res))
	return res
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestLiveness(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", Liveness())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListNews(t *testing.T) {
	mockSvc := new(serviceMocks.MockNewsService)
	app := fiber.New()
	app.Get("/api/news", ListNews(mockSvc))

	t.Run("success with pagination headers", func(t *testing.T) {
		res := &service.NewsListResult{
			Items:      []model.NewsItem{{ID: 1, Title: "Alpha News"}},
			Total:      1,
			Page:       1,
			PageSize:   10,
			TotalPages: 1,
		}
		mockSvc.On("List", mock.Anything, service.ListParams{Query: "alpha", Page: 1, PageSize: 10}).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/news?q=alpha&page=1&pageSize=10", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "1", resp.Header.Get(HeaderTotalCount))
		assert.Equal(t, "1", resp.Header.Get(HeaderPage))
		assert.Equal(t, "10", resp.Header.Get(HeaderPageSize))
		assert.Equal(t, "1", resp.Header.Get(HeaderTotalPages))

		var items []model.NewsItem
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		require.Len(t, items, 1)
		assert.Equal(t, "Alpha News", items[0].Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty result is a json array", func(t *testing.T) {
		res := &service.NewsListResult{Page: 1, PageSize: 10, TotalPages: 1}
		mockSvc.On("List", mock.Anything, service.ListParams{}).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "0", resp.Header.Get(HeaderTotalCount))
		assert.Equal(t, "1", resp.Header.Get(HeaderTotalPages))
		raw, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[]`, string(raw))
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/news?page=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_PAGE", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("invalid page size", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/news?pageSize=1.5", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_PAGE_SIZE", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetNews(t *testing.T) {
	mockSvc := new(serviceMocks.MockNewsService)
	app := fiber.New()
	app.Get("/api/news/:id", GetNews(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(7)).Return(sampleItem(7), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/news/7", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(7), body["id"])
		assert.Equal(t, "Test Headline A", body["title"])
		assert.Equal(t, "2024-01-15T12:00:00Z", body["createdAt"])
		assert.Equal(t, "2024-01-15T12:00:00Z", body["updatedAt"])
		assert.NotContains(t, body, "image")
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(404)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/news/404", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	for _, raw := range []string{"abc", "0", "-3", "99999999999999999999"} {
		t.Run("invalid id "+raw, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/news/"+raw, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_ID", decodeError(t, resp.Body).Error.Code)
		})
	}

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(8)).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/news/8", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetNewsImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockNewsService)
	app := fiber.New()
	app.Get("/api/news/:id/image", GetNewsImage(mockSvc))

	t.Run("success", func(t *testing.T) {
		data := []byte{0x89, 'P', 'N', 'G'}
		mockSvc.On("GetImage", mock.Anything, int64(1)).Return(&model.Image{Data: data, MimeType: "image/png"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/news/1/image", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
		got, _ := io.ReadAll(resp.Body)
		assert.Equal(t, data, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no image", func(t *testing.T) {
		mockSvc.On("GetImage", mock.Anything, int64(2)).Return(nil, service.ErrImageNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/news/2/image", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "IMAGE_NOT_FOUND", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateNews(t *testing.T) {
	mockSvc := new(serviceMocks.MockNewsService)
	app := fiber.New()
	app.Post("/api/news", CreateNews(mockSvc))

	fields := map[string]string{"title": "Test Headline A", "content": "0123456789", "author": "Al", "category": "TV"}
	want := model.NewsInput{Title: "Test Headline A", Content: "0123456789", Author: "Al", Category: "TV"}

	t.Run("multipart with image", func(t *testing.T) {
		body, ct := multipartBody(t, fields, &formFile{name: "a.png", contentType: "image/png", data: []byte("pngdata")})
		mockSvc.On("Create", mock.Anything, want, &model.Image{Data: []byte("pngdata"), MimeType: "image/png"}).
			Return(sampleItem(1), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/news", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.NewsItem
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, int64(1), result.ID)
		assert.Equal(t, result.CreatedAt, result.UpdatedAt)
		mockSvc.AssertExpectations(t)
	})

	t.Run("multipart with untouched file input", func(t *testing.T) {
		body, ct := multipartBody(t, fields, &formFile{name: "", contentType: "application/octet-stream"})
		mockSvc.On("Create", mock.Anything, want, (*model.Image)(nil)).Return(sampleItem(2), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/news", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("json body", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, want, (*model.Image)(nil)).Return(sampleItem(3), nil).Once()

		payload, _ := json.Marshal(fields)
		req := httptest.NewRequest(http.MethodPost, "/api/news", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("urlencoded body", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, want, (*model.Image)(nil)).Return(sampleItem(4), nil).Once()

		form := url.Values{}
		for k, v := range fields {
			form.Set(k, v)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/news", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		body, ct := multipartBody(t, fields, &formFile{name: "a.gif", contentType: "image/gif", data: []byte("gif")})
		mockSvc.On("Create", mock.Anything, want, mock.Anything).
			Return(nil, &service.ValidationError{Field: "image", Code: "INVALID_IMAGE_TYPE", Message: "bad type"}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/news", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_IMAGE_TYPE", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/news", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/news", strings.NewReader("title=x"))
		req.Header.Set("Content-Type", "text/plain")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		body, ct := multipartBody(t, fields, nil)
		mockSvc.On("Create", mock.Anything, want, (*model.Image)(nil)).Return(nil, errors.New("insert failed")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/news", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateNews(t *testing.T) {
	mockSvc := new(serviceMocks.MockNewsService)
	app := fiber.New()
	app.Put("/api/news/:id", UpdateNews(mockSvc))

	t.Run("only sent fields are set", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"title": "New title"}, nil)
		patch := model.NewsPatch{Title: model.Some("New title")}
		mockSvc.On("Update", mock.Anything, int64(5), patch, (*model.Image)(nil)).Return(sampleItem(5), nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/news/5", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty string is sent as present", func(t *testing.T) {
		payload := `{"author":""}`
		patch := model.NewsPatch{Author: model.Some("")}
		mockSvc.On("Update", mock.Anything, int64(5), patch, (*model.Image)(nil)).
			Return(nil, &service.ValidationError{Field: "author", Code: "INVALID_AUTHOR", Message: "author"}).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/news/5", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_AUTHOR", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("image replaces stored one", func(t *testing.T) {
		body, ct := multipartBody(t, nil, &formFile{name: "b.webp", contentType: "image/webp", data: []byte("webp")})
		mockSvc.On("Update", mock.Anything, int64(6), model.NewsPatch{}, &model.Image{Data: []byte("webp"), MimeType: "image/webp"}).
			Return(sampleItem(6), nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/news/6", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"category": "Deportes"}, nil)
		mockSvc.On("Update", mock.Anything, int64(404), mock.Anything, mock.Anything).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/news/404", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/news/x", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp.Body).Error.Code)
	})
}

func TestUpdateNewsImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockNewsService)
	app := fiber.New()
	app.Put("/api/news/:id/image", UpdateNewsImage(mockSvc))

	t.Run("success", func(t *testing.T) {
		body, ct := multipartBody(t, nil, &formFile{name: "c.jpg", contentType: "image/jpeg", data: []byte("jpg")})
		mockSvc.On("UpdateImage", mock.Anything, int64(1), &model.Image{Data: []byte("jpg"), MimeType: "image/jpeg"}).
			Return(sampleItem(1), nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/news/1/image", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		mockSvc.On("UpdateImage", mock.Anything, int64(1), (*model.Image)(nil)).Return(nil, service.ErrImageRequired).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/news/1/image", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		body, ct := multipartBody(t, nil, &formFile{name: "c.png", contentType: "image/png", data: []byte("png")})
		mockSvc.On("UpdateImage", mock.Anything, int64(9), mock.Anything).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/news/9/image", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteNewsImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockNewsService)
	app := fiber.New()
	app.Delete("/api/news/:id/image", DeleteNewsImage(mockSvc))

	mockSvc.On("DeleteImage", mock.Anything, int64(1)).Return(nil).Once()
	mockSvc.On("DeleteImage", mock.Anything, int64(2)).Return(service.ErrNotFound).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/news/1/image", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, "/api/news/2/image", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDeleteNews(t *testing.T) {
	mockSvc := new(serviceMocks.MockNewsService)
	app := fiber.New()
	app.Delete("/api/news/:id", DeleteNews(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/news/1", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(2)).Return(service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/news/2", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(3)).Return(errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/news/3", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.RequestID())

	mockSvc := new(serviceMocks.MockNewsService)
	RegisterRoutes(app, nil, mockSvc)
	app.Get("/too-large", func(c *fiber.Ctx) error {
		return fiber.ErrRequestEntityTooLarge
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		res := decodeError(t, resp.Body)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		assert.Equal(t, "rid-1", res.RequestID)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("payload too large", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/too-large", nil))

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("health without database", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("news routes are mounted", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(1)).Return(sampleItem(1), nil).Once()
		mockSvc.On("GetImage", mock.Anything, int64(1)).Return(nil, service.ErrImageNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/news/1", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/news/1/image", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
