// Package adminapi hosts the admin panel: dashboard, entity CRUD and
// catalog import/export. Routes mutate and redirect back to /admin the
// way the storefront's forms expect.
package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/websession"
)

const appContextKey = "adminapi.app"

// Register wires all admin routes onto the root router. Every route
// except the admin login sits behind the operator check.
func Register(e *echo.Echo, appCtx app.AppContext) {
	inject := withApp(appCtx)

	e.GET("/admin/login", adminLoginForm, inject)
	e.POST("/admin/login", adminLogin, inject)
	e.GET("/admin/logout", adminLogout, inject)

	guarded := []echo.MiddlewareFunc{inject, requireOperator(appCtx)}

	e.GET("/admin", dashboard, guarded...)

	registerUserRoutes(e, guarded)
	registerProductRoutes(e, guarded)
	registerPostRoutes(e, guarded)
	registerOrderRoutes(e, guarded)
	registerAPIRoutes(e, guarded)
}

func withApp(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	}
}

// requireOperator redirects to the admin login unless the session
// carries the operator flag. web.open_admin disables the check for
// parity with the original unprotected panel.
func requireOperator(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if appCtx.Config().Web.OpenAdmin || websession.Operator(c) {
				return next(c)
			}
			return c.Redirect(http.StatusFound, "/admin/login")
		}
	}
}

// GetApp returns the application context injected by Register.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

// GetDB returns the request database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":      0,
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("pageSize"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return cast.ToInt64E(c.Param(name))
}

// actor names the operator for audit events.
func actor(c echo.Context) string {
	if websession.Operator(c) {
		return GetApp(c).Config().Web.AdminUsername
	}
	return "anonymous"
}

func backToAdmin(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/admin")
}
