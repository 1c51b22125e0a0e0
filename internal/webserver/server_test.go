package webserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/config"
	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/common"
)

func newTestServer(t *testing.T) (*WebServer, *gorm.DB) {
	t.Helper()
	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Debug = false
	cfg.Logger.FileEnable = false

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	a := app.NewApplication(cfg)
	a.OverrideDB(db)
	require.NoError(t, a.MigrateDB(false))

	return NewWebServer(a), db
}

// browser keeps the session cookie across requests, like a real client.
type browser struct {
	t      *testing.T
	server *WebServer
	cookie string
}

func (b *browser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echoHeaderContentType, echoMIMEForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if b.cookie != "" {
		req.Header.Set("Cookie", b.cookie)
	}
	rec := httptest.NewRecorder()
	b.server.Echo().ServeHTTP(rec, req)
	if set := rec.Header().Get("Set-Cookie"); set != "" {
		b.cookie = strings.SplitN(set, ";", 2)[0]
	}
	return rec
}

const (
	echoHeaderContentType = "Content-Type"
	echoMIMEForm          = "application/x-www-form-urlencoded"
)

func TestRegisterCreatesHashedUser(t *testing.T) {
	server, db := newTestServer(t)
	b := &browser{t: t, server: server}

	rec := b.do(http.MethodPost, "/register", url.Values{
		"name":       {"Maria"},
		"email":      {"Maria@Example.com"},
		"password":   {"segredo"},
		"birth_date": {"1990-05-01"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	var user domain.User
	require.NoError(t, db.Where("email = ?", "maria@example.com").First(&user).Error)
	assert.NotEqual(t, "segredo", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("segredo")))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	server, _ := newTestServer(t)
	b := &browser{t: t, server: server}

	form := url.Values{"email": {"maria@example.com"}, "password": {"x"}}
	rec := b.do(http.MethodPost, "/register", form)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = b.do(http.MethodPost, "/register", form)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email já cadastrado")
}

func TestLoginFlow(t *testing.T) {
	server, _ := newTestServer(t)
	b := &browser{t: t, server: server}

	b.do(http.MethodPost, "/register", url.Values{
		"email": {"joao@example.com"}, "password": {"senha123"},
	})

	// anonymous profile access bounces to login
	rec := b.do(http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = b.do(http.MethodPost, "/login", url.Values{
		"email": {"joao@example.com"}, "password": {"errada"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = b.do(http.MethodPost, "/login", url.Values{
		"email": {"joao@example.com"}, "password": {"senha123"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/user", rec.Header().Get("Location"))

	rec = b.do(http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = b.do(http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	rec = b.do(http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestCartFlow(t *testing.T) {
	server, db := newTestServer(t)
	b := &browser{t: t, server: server}

	product := domain.Product{ID: 3, Name: "Colar", Price: 10.0, Stock: 5,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&product).Error)

	rec := b.do(http.MethodGet, "/add_to_cart/3", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/carrinho", rec.Header().Get("Location"))

	rec = b.do(http.MethodGet, "/carrinho", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Colar")

	rec = b.do(http.MethodPost, "/update_cart/3/2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	}
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 20.0, body.Subtotal)
	assert.Equal(t, 20.0, body.Total)

	// setting quantity to zero removes the line
	rec = b.do(http.MethodPost, "/update_cart/3/0", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0.0, body.Subtotal)
	assert.Equal(t, 0.0, body.Total)
}

func TestUpdateCartRejectsBadInput(t *testing.T) {
	server, db := newTestServer(t)
	b := &browser{t: t, server: server}

	require.NoError(t, db.Create(&domain.Product{ID: 3, Name: "Colar", Price: 10.0,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}).Error)

	rec := b.do(http.MethodPost, "/update_cart/3/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.do(http.MethodPost, "/update_cart/999/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Produto não encontrado")
}

func TestWishlistToggle(t *testing.T) {
	server, db := newTestServer(t)
	b := &browser{t: t, server: server}

	require.NoError(t, db.Create(&domain.Product{ID: 7, Name: "Anel", Price: 30.0,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}).Error)

	rec := b.do(http.MethodGet, "/toggle_wishlist/7", nil)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = b.do(http.MethodGet, "/wishlist", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Anel")

	rec = b.do(http.MethodGet, "/toggle_wishlist/7", nil)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = b.do(http.MethodGet, "/wishlist", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Anel")
}

func TestProductDetailNotFound(t *testing.T) {
	server, _ := newTestServer(t)
	b := &browser{t: t, server: server}

	rec := b.do(http.MethodGet, "/produto/12345", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Produto não encontrado")
}

func TestOrderOwnership(t *testing.T) {
	server, db := newTestServer(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("senha"), bcrypt.DefaultCost)
	owner := domain.User{ID: common.UUIDint64(), Email: "dona@example.com",
		Password: string(hashed), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	other := domain.User{ID: common.UUIDint64(), Email: "outra@example.com",
		Password: string(hashed), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&other).Error)

	mine := domain.Order{ID: 100, UserId: owner.ID, Status: "pago",
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	theirs := domain.Order{ID: 200, UserId: other.ID, Status: "pago",
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&theirs).Error)

	b := &browser{t: t, server: server}
	rec := b.do(http.MethodPost, "/login", url.Values{
		"email": {"dona@example.com"}, "password": {"senha"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = b.do(http.MethodGet, "/order/100", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// someone else's order must look exactly like a missing one
	rec = b.do(http.MethodGet, "/order/200", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pedido não encontrado")
}

func TestDeletedAccountSessionLandsOnLogin(t *testing.T) {
	server, db := newTestServer(t)
	b := &browser{t: t, server: server}

	b.do(http.MethodPost, "/register", url.Values{
		"email": {"efemera@example.com"}, "password": {"senha"},
	})
	rec := b.do(http.MethodPost, "/login", url.Values{
		"email": {"efemera@example.com"}, "password": {"senha"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)

	require.NoError(t, db.Where("email = ?", "efemera@example.com").
		Delete(&domain.User{}).Error)

	// the stale session must bounce to the login form, never back to /user
	rec = b.do(http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = b.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
