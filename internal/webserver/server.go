// Package webserver hosts the public storefront: catalog and blog pages,
// account registration and login, and the session-backed cart and
// wishlist. Admin routes are registered by the adminapi package.
package webserver

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/anasouza/boutique/internal/adminapi"
	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/pkg/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

type WebServer struct {
	app  app.AppContext
	root *echo.Echo
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	s := &WebServer{app: appCtx, root: echo.New()}
	s.root.Pre(middleware.RemoveTrailingSlash())
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.Debug = appCtx.Config().System.Debug
	s.root.JSONSerializer = &JSONSerializer{}

	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		panic(err)
	}
	s.root.Renderer = &TemplateRenderer{templates: t}

	secret := appCtx.Config().Web.Secret
	if secret == "" {
		secret = random.String(32)
		zap.L().Warn("web secret unset, sessions will not survive restarts")
	}
	s.root.Use(session.Middleware(sessions.NewCookieStore([]byte(secret))))
	s.root.Use(ZapLogger())
	s.root.Use(middleware.Recover())

	s.initRouter()
	adminapi.Register(s.root, appCtx)
	return s
}

// Echo exposes the underlying router, mainly for tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) initRouter() {
	s.root.GET("/", s.index)
	s.root.GET("/home", s.home)

	s.root.GET("/register", s.registerForm)
	s.root.POST("/register", s.register)
	s.root.GET("/login", s.loginForm)
	s.root.POST("/login", s.login)
	s.root.GET("/logout", s.logout)

	s.root.GET("/todos_produtos", s.listProducts)
	s.root.GET("/produto/:id", s.productDetail)

	s.root.GET("/add_to_cart/:id", s.addToCart)
	s.root.GET("/carrinho", s.viewCart)
	s.root.GET("/remover_do_carrinho/:id", s.removeFromCart)
	s.root.POST("/update_cart/:id/:quantity", s.updateCart)

	s.root.GET("/add_to_wishlist/:id", s.addToWishlist)
	s.root.GET("/wishlist", s.viewWishlist)
	s.root.GET("/toggle_wishlist/:id", s.toggleWishlist)
	s.root.GET("/remover_da_wishlist/:id", s.removeFromWishlist)

	s.root.GET("/blog", s.listPosts)
	s.root.GET("/post_blog/:id", s.postDetail)

	s.root.GET("/user", s.profile)
	s.root.GET("/order/:id", s.orderDetail)
}

// Start blocks serving HTTP until the context is canceled.
func (s *WebServer) Start(ctx context.Context) error {
	cfg := s.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.root.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	}
}

// TemplateRenderer adapts html/template to echo's Renderer contract.
type TemplateRenderer struct {
	templates *template.Template
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

// ZapLogger logs each request through the global zap logger and counts
// it into the metrics store.
func ZapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			metrics.IncrCounter("http_requests", 1)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return nil
		}
	}
}

func redirect(c echo.Context, location string) error {
	return c.Redirect(http.StatusFound, location)
}
