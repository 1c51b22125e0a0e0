package adminapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anasouza/boutique/internal/websession"
)

type adminLoginPayload struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func adminLoginForm(c echo.Context) error {
	if websession.Operator(c) {
		return c.Redirect(http.StatusFound, "/admin")
	}
	return c.Render(http.StatusOK, "admin_login.html", echo.Map{})
}

func adminLogin(c echo.Context) error {
	var payload adminLoginPayload
	if err := c.Bind(&payload); err != nil {
		return c.Render(http.StatusBadRequest, "admin_login.html", echo.Map{"Error": "Dados inválidos"})
	}
	cfg := GetApp(c).Config().Web
	userOK := subtle.ConstantTimeCompare([]byte(payload.Username), []byte(cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(payload.Password), []byte(cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		zap.L().Warn("admin login rejected", zap.String("username", payload.Username))
		return c.Render(http.StatusUnauthorized, "admin_login.html", echo.Map{"Error": "Usuário ou senha incorretos"})
	}
	if err := websession.SetOperator(c, true); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/admin")
}

func adminLogout(c echo.Context) error {
	_ = websession.SetOperator(c, false)
	return c.Redirect(http.StatusFound, "/")
}
