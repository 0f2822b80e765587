package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"newsapi/internal/model"
	"newsapi/internal/service"
)

// Pagination response headers.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPageSize   = "X-Page-Size"
	HeaderTotalPages = "X-Total-Pages"
)

// PaginationHeaders lists the headers browsers must be allowed to read.
var PaginationHeaders = []string{HeaderTotalCount, HeaderPage, HeaderPageSize, HeaderTotalPages}

// ListNews searches and paginates news items.
//
// @Summary  List news
// @Tags     news
// @Produce  json
// @Param    q         query  string  false  "case-insensitive substring of title, author, category or content"
// @Param    page      query  int     false  "page number (default 1)"
// @Param    pageSize  query  int     false  "page size (default 10, max 50)"
// @Success  200  {array}   model.NewsItem
// @Header   200  {integer} X-Total-Count  "matching items"
// @Header   200  {integer} X-Page         "current page"
// @Header   200  {integer} X-Page-Size    "page size"
// @Header   200  {integer} X-Total-Pages  "total pages"
// @Failure  400  {object}  errorPayload
// @Failure  500  {object}  errorPayload
// @Router   /api/news [get]
func ListNews(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := queryInt(c, "page")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "page must be an integer")
		}
		pageSize, err := queryInt(c, "pageSize")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE_SIZE", "pageSize must be an integer")
		}

		res, err := svc.List(c.UserContext(), service.ListParams{
			Query:    c.Query("q"),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(HeaderTotalCount, strconv.Itoa(res.Total))
		c.Set(HeaderPage, strconv.Itoa(res.Page))
		c.Set(HeaderPageSize, strconv.Itoa(res.PageSize))
		c.Set(HeaderTotalPages, strconv.Itoa(res.TotalPages))

		items := res.Items
		if items == nil {
			items = []model.NewsItem{}
		}
		return c.JSON(items)
	}
}

// GetNews returns one item.
//
// @Summary  Get news item
// @Tags     news
// @Produce  json
// @Param    id   path  int  true  "news id"
// @Success  200  {object}  model.NewsItem
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/news/{id} [get]
func GetNews(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		item, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// GetNewsImage streams the stored image bytes.
//
// @Summary  Get news image
// @Tags     news
// @Produce  png,jpeg,webp
// @Param    id   path  int  true  "news id"
// @Success  200  {file}    binary
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/news/{id}/image [get]
func GetNewsImage(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		img, err := svc.GetImage(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, img.MimeType)
		c.Set(fiber.HeaderCacheControl, "no-cache")
		return c.Send(img.Data)
	}
}

// CreateNews stores a new item.
//
// @Summary  Create news item
// @Tags     news
// @Accept   mpfd,x-www-form-urlencoded,json
// @Produce  json
// @Param    title     formData  string  true   "3-120 characters"
// @Param    content   formData  string  true   "at least 10 characters"
// @Param    author    formData  string  true   "2-60 characters"
// @Param    category  formData  string  true   "2-40 characters"
// @Param    image     formData  file    false  "png, jpeg, jpg or webp, at most 5 MiB"
// @Success  201  {object}  model.NewsItem
// @Failure  400  {object}  errorPayload
// @Failure  500  {object}  errorPayload
// @Router   /api/news [post]
func CreateNews(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fields, img, err := parseNewsRequest(c)
		if err != nil {
			return writeRequestError(c, err)
		}
		item, err := svc.Create(c.UserContext(), fields.input(), img)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// UpdateNews applies a partial update. Omitted fields keep their values.
//
// @Summary  Update news item
// @Tags     news
// @Accept   mpfd,x-www-form-urlencoded,json
// @Produce  json
// @Param    id        path      int     true   "news id"
// @Param    title     formData  string  false  "3-120 characters"
// @Param    content   formData  string  false  "at least 10 characters"
// @Param    author    formData  string  false  "2-60 characters"
// @Param    category  formData  string  false  "2-40 characters"
// @Param    image     formData  file    false  "replaces the stored image"
// @Success  200  {object}  model.NewsItem
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/news/{id} [put]
func UpdateNews(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		fields, img, err := parseNewsRequest(c)
		if err != nil {
			return writeRequestError(c, err)
		}
		item, err := svc.Update(c.UserContext(), id, fields.patch(), img)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// UpdateNewsImage replaces only the image.
//
// @Summary  Replace news image
// @Tags     news
// @Accept   mpfd
// @Produce  json
// @Param    id     path      int   true  "news id"
// @Param    image  formData  file  true  "png, jpeg, jpg or webp, at most 5 MiB"
// @Success  200  {object}  model.NewsItem
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/news/{id}/image [put]
func UpdateNewsImage(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		img, err := parseImageRequest(c)
		if err != nil {
			return writeRequestError(c, err)
		}
		item, err := svc.UpdateImage(c.UserContext(), id, img)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(item)
	}
}

// DeleteNewsImage clears the image.
//
// @Summary  Delete news image
// @Tags     news
// @Param    id   path  int  true  "news id"
// @Success  204
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/news/{id}/image [delete]
func DeleteNewsImage(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		if err := svc.DeleteImage(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteNews removes an item.
//
// @Summary  Delete news item
// @Tags     news
// @Param    id   path  int  true  "news id"
// @Success  204
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/news/{id} [delete]
func DeleteNews(svc service.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := parseID(c)
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
