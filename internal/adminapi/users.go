package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/common"
)

func registerUserRoutes(e *echo.Echo, mw []echo.MiddlewareFunc) {
	e.POST("/usuario/add", addUser, mw...)
	e.POST("/usuario/edit/:id", editUser, mw...)
	e.POST("/usuario/delete/:id", deleteUser, mw...)
}

type userPayload struct {
	Name      string `form:"name" json:"name"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	BirthDate string `form:"birth_date" json:"birth_date"`
	Phone     string `form:"phone" json:"phone"`
}

func (p userPayload) birth() time.Time {
	if p.BirthDate == "" {
		return time.Time{}
	}
	parsed, err := dateparse.ParseAny(p.BirthDate)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func addUser(c echo.Context) error {
	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", nil)
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Email == "" {
		return fail(c, http.StatusBadRequest, "MISSING_EMAIL", "Email is required", nil)
	}

	var dup domain.User
	if err := GetDB(c).Where("email = ?", payload.Email).First(&dup).Error; err == nil {
		return fail(c, http.StatusConflict, "DUPLICATE_EMAIL", "Email already registered", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", err.Error())
	}

	user := domain.User{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  string(hashed),
		BirthDate: payload.birth(),
		Phone:     payload.Phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "usuario/add "+user.Email)
	return backToAdmin(c)
}

func editUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return backToAdmin(c)
	}
	var user domain.User
	if err := GetDB(c).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// missing id is a silent no-op for admin edits
			return backToAdmin(c)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}

	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", nil)
	}

	user.Name = payload.Name
	user.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	user.BirthDate = payload.birth()
	user.Phone = payload.Phone
	if payload.Password != "" {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if herr != nil {
			return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", herr.Error())
		}
		user.Password = string(hashed)
	}
	user.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "usuario/edit "+user.Email)
	return backToAdmin(c)
}

func deleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return backToAdmin(c)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.User{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "usuario/delete")
	return backToAdmin(c)
}
