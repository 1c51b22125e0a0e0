package webserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/internal/websession"
	"github.com/anasouza/boutique/pkg/common"
)

type registerPayload struct {
	Name      string `form:"name" json:"name"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	BirthDate string `form:"birth_date" json:"birth_date"`
	Phone     string `form:"phone" json:"phone"`
}

func (s *WebServer) registerForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", echo.Map{})
}

func (s *WebServer) register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return c.Render(http.StatusBadRequest, "register.html", echo.Map{"Error": "Dados inválidos"})
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		return c.Render(http.StatusBadRequest, "register.html", echo.Map{"Error": "Email e senha são obrigatórios"})
	}

	var existing domain.User
	err := s.app.DB().Where("email = ?", payload.Email).First(&existing).Error
	if err == nil {
		return c.Render(http.StatusConflict, "register.html", echo.Map{"Error": "Email já cadastrado"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var birth time.Time
	if payload.BirthDate != "" {
		// accepts 02/01/2006, 2006-01-02 and friends
		if parsed, perr := dateparse.ParseAny(payload.BirthDate); perr == nil {
			birth = parsed
		}
	}

	user := domain.User{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  string(hashed),
		BirthDate: birth,
		Phone:     payload.Phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.app.DB().Create(&user).Error; err != nil {
		return err
	}

	s.app.Bus().Publish(app.EvtUserRegister, user.Email, "account created")
	zap.L().Info("user registered", zap.String("email", user.Email))
	return redirect(c, "/login")
}

type loginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (s *WebServer) loginForm(c echo.Context) error {
	if _, ok := s.currentUser(c); ok {
		return redirect(c, "/user")
	}
	return c.Render(http.StatusOK, "login.html", echo.Map{})
}

func (s *WebServer) login(c echo.Context) error {
	if _, ok := s.currentUser(c); ok {
		return redirect(c, "/user")
	}
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", echo.Map{"Error": "Dados inválidos"})
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))

	var user domain.User
	err := s.app.DB().Where("email = ?", payload.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Render(http.StatusUnauthorized, "login.html", echo.Map{"Error": "Email ou senha incorretos"})
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)) != nil {
		return c.Render(http.StatusUnauthorized, "login.html", echo.Map{"Error": "Email ou senha incorretos"})
	}

	if err := websession.SetUserEmail(c, user.Email); err != nil {
		return err
	}
	s.app.Bus().Publish(app.EvtUserLogin, user.Email, "login")
	return redirect(c, "/user")
}

func (s *WebServer) logout(c echo.Context) error {
	_ = websession.ClearUser(c)
	return redirect(c, "/")
}

// currentUser resolves the session marker to a row. A stale marker for
// a deleted account is cleared so the session behaves like being logged
// out everywhere, not just on the page that noticed.
func (s *WebServer) currentUser(c echo.Context) (*domain.User, bool) {
	email := websession.UserEmail(c)
	if email == "" {
		return nil, false
	}
	var user domain.User
	if err := s.app.DB().Where("email = ?", email).First(&user).Error; err != nil {
		_ = websession.ClearUser(c)
		return nil, false
	}
	return &user, true
}
