package api

import (
	"net/http"
	"time"

	"unischool/site-api/internal/model"
	"unischool/site-api/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) BlogFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var blog model.Blog

	err := a.DB.Where("slug = ?", c.Param("slug")).First(&blog).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "Blog not found")
			return
		}

		dbError(c, requestID, "Failed to fetch blog", err)
		return
	}

	response.Success(c, blog)
}

func (a *API) BlogUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	slug := c.Param("slug")

	var data blogBody
	if err := c.ShouldBind(&data); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var blog model.Blog

	err := a.DB.Where("slug = ?", slug).First(&blog).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "Blog not found")
			return
		}

		dbError(c, requestID, "Failed to fetch blog", err)
		return
	}

	updates := map[string]any{
		"title":     data.Title,
		"content":   data.Content,
		"published": data.Published,
	}

	if data.Slug != "" {
		updates["slug"] = data.Slug
	}

	// First publish stamps the date, unpublishing keeps it
	if data.Published && blog.PublishedAt == nil {
		updates["published_at"] = time.Now()
	}

	if err := a.DB.Model(&blog).Updates(updates).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			response.Conflict(c, "This slug is already in use")
			return
		}

		dbError(c, requestID, "Failed to update blog", err)
		return
	}

	response.Success(c, blog)
}

// BlogDelete removes a post. Only the author can delete their own
// posts, for anyone else the post simply isn't there.
func (a *API) BlogDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := currentUser(c)

	r := a.DB.Where("slug = ? AND author_id = ?", c.Param("slug"), user.ID).Delete(&model.Blog{})
	if r.Error != nil {
		dbError(c, requestID, "Failed to delete blog", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		response.NotFound(c, "Blog not found or not yours")
		return
	}

	response.Success(c, gin.H{
		"message": "Blog deleted",
	})
}
