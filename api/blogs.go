package api

import (
	"net/http"
	"time"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type blogBody struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// BlogsList returns published posts, newest first, with a trimmed-down
// author.
func (a *API) BlogsList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var blogs []model.Blog

	err := a.DB.
		Preload("Author").
		Where("published = ?", true).
		Order("created_at desc").
		Find(&blogs).
		Error
	if err != nil {
		dbError(c, requestID, "Failed to fetch blogs", err)
		return
	}

	for i := range blogs {
		if blogs[i].Author != nil {
			blogs[i].Author = &model.User{
				ID:   blogs[i].Author.ID,
				Name: blogs[i].Author.Name,
			}
		}
	}

	response.Success(c, gin.H{
		"blogs": blogs,
	})
}

// BlogCreate stores a new post authored by the caller. Slugs are
// unique, a duplicate is a validation-level conflict.
func (a *API) BlogCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := currentUser(c)

	var data blogBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var missing []string
	if data.Title == "" {
		missing = append(missing, "title is required")
	}
	if data.Slug == "" {
		missing = append(missing, "slug is required")
	}
	if len(missing) > 0 {
		response.Validation(c, missing)
		return
	}

	var exists bool

	r := a.DB.Model(model.Blog{}).
		Select("count(*) > 0").
		Where("slug = ?", data.Slug).
		Find(&exists)
	if r.Error != nil {
		dbError(c, requestID, "Failed to check slug uniqueness", r.Error)
		return
	}

	if exists {
		response.Conflict(c, "This slug is already in use")
		return
	}

	blogID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		response.ServerError(c, "Internal server error")

		zap.L().Error("Failed to generate blog ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	blog := model.Blog{
		ID:        blogID,
		Slug:      data.Slug,
		Title:     data.Title,
		Content:   data.Content,
		Published: data.Published,
		AuthorID:  &user.ID,
	}

	if data.Published {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := a.DB.Create(&blog).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			response.Conflict(c, "This slug is already in use")
			return
		}

		dbError(c, requestID, "Failed to create blog", err)
		return
	}

	response.Created(c, blog)
}
