package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/common"
)

func registerPostRoutes(e *echo.Echo, mw []echo.MiddlewareFunc) {
	e.POST("/post/add", addPost, mw...)
	e.POST("/post/edit/:id", editPost, mw...)
	e.POST("/post/delete/:id", deletePost, mw...)
}

type postPayload struct {
	Title     string `form:"title" json:"title"`
	Subtitle  string `form:"subtitle" json:"subtitle"`
	Body      string `form:"body" json:"body"`
	Author    string `form:"author" json:"author"`
	Published string `form:"published" json:"published"`
	Image     string `form:"image" json:"image"`
}

func addPost(c echo.Context) error {
	var payload postPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse post", nil)
	}
	if strings.TrimSpace(payload.Title) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_TITLE", "Post title is required", nil)
	}

	post := domain.Post{
		ID:        common.UUIDint64(),
		Title:     strings.TrimSpace(payload.Title),
		Subtitle:  payload.Subtitle,
		Body:      payload.Body,
		Author:    payload.Author,
		Published: payload.Published,
		Image:     payload.Image,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&post).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create post", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "post/add "+post.Title)
	return backToAdmin(c)
}

func editPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return backToAdmin(c)
	}
	var post domain.Post
	if err := GetDB(c).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backToAdmin(c)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query post", err.Error())
	}

	var payload postPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse post", nil)
	}

	post.Title = strings.TrimSpace(payload.Title)
	post.Subtitle = payload.Subtitle
	post.Body = payload.Body
	post.Author = payload.Author
	post.Published = payload.Published
	post.Image = payload.Image
	post.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&post).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update post", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "post/edit "+post.Title)
	return backToAdmin(c)
}

func deletePost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return backToAdmin(c)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Post{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete post", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "post/delete")
	return backToAdmin(c)
}
