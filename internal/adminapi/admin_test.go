package adminapi_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/config"
	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/internal/webserver"
	"github.com/anasouza/boutique/pkg/common"
)

func newAdminTestServer(t *testing.T, openAdmin bool) (*webserver.WebServer, *gorm.DB) {
	t.Helper()
	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Debug = false
	cfg.Logger.FileEnable = false
	cfg.Web.OpenAdmin = openAdmin

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	a := app.NewApplication(cfg)
	a.OverrideDB(db)
	require.NoError(t, a.MigrateDB(false))

	return webserver.NewWebServer(a), db
}

type adminClient struct {
	t      *testing.T
	server *webserver.WebServer
	cookie string
}

func (b *adminClient) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
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

func TestAdminRequiresLogin(t *testing.T) {
	server, _ := newAdminTestServer(t, false)
	b := &adminClient{t: t, server: server}

	rec := b.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	rec = b.do(http.MethodPost, "/admin/login", url.Values{
		"username": {"admin"}, "password": {"errada"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = b.do(http.MethodPost, "/admin/login", url.Values{
		"username": {"admin"}, "password": {"boutique"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = b.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = b.do(http.MethodGet, "/admin/logout", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	rec = b.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestOpenAdminBypassesLogin(t *testing.T) {
	server, _ := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	rec := b.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductCRUD(t *testing.T) {
	server, db := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	rec := b.do(http.MethodPost, "/produto/add", url.Values{
		"name": {"Pulseira"}, "price": {"49.90"}, "stock": {"3"}, "color": {"dourado"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	var product domain.Product
	require.NoError(t, db.Where("name = ?", "Pulseira").First(&product).Error)
	assert.Equal(t, 49.90, product.Price)
	assert.Equal(t, 3, product.Stock)

	rec = b.do(http.MethodPost, fmt.Sprintf("/produto/edit/%d", product.ID), url.Values{
		"name": {"Pulseira"}, "price": {"59.90"}, "stock": {"2"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	require.NoError(t, db.First(&product, product.ID).Error)
	assert.Equal(t, 59.90, product.Price)

	rec = b.do(http.MethodPost, fmt.Sprintf("/produto/delete/%d", product.ID), nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	err := db.First(&domain.Product{}, product.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductAddRejectsMalformedPrice(t *testing.T) {
	server, db := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	rec := b.do(http.MethodPost, "/produto/add", url.Values{
		"name": {"Broche"}, "price": {"caro"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_NUMBER")

	var count int64
	db.Model(&domain.Product{}).Where("name = ?", "Broche").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAdminEditMissingIDIsNoop(t *testing.T) {
	server, _ := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	rec := b.do(http.MethodPost, "/produto/edit/987654", url.Values{
		"name": {"Fantasma"}, "price": {"1"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestUserAddDuplicateEmail(t *testing.T) {
	server, db := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	form := url.Values{"name": {"Clara"}, "email": {"clara@example.com"}, "password": {"x"}}
	rec := b.do(http.MethodPost, "/usuario/add", form)
	assert.Equal(t, http.StatusFound, rec.Code)

	var user domain.User
	require.NoError(t, db.Where("email = ?", "clara@example.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("x")))

	rec = b.do(http.MethodPost, "/usuario/add", form)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_EMAIL")
}

func TestOrderDeleteCascades(t *testing.T) {
	server, db := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	user := domain.User{ID: common.UUIDint64(), Email: "pedidos@example.com",
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&user).Error)

	order := domain.Order{ID: 500, UserId: user.ID, Status: "pago",
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&order).Error)
	for i := 0; i < 3; i++ {
		item := domain.OrderItem{ID: common.UUIDint64(), OrderId: order.ID,
			ProductId: int64(i + 1), Quantity: 1, UnitPrice: 10}
		require.NoError(t, db.Create(&item).Error)
	}

	rec := b.do(http.MethodPost, "/pedido/delete/500", nil)
	assert.Equal(t, http.StatusFound, rec.Code)

	var orders, items int64
	db.Model(&domain.Order{}).Where("id = ?", order.ID).Count(&orders)
	db.Model(&domain.OrderItem{}).Where("order_id = ?", order.ID).Count(&items)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
}

func TestOrderItemAddFreezesPrice(t *testing.T) {
	server, db := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	product := domain.Product{ID: 42, Name: "Gargantilha", Price: 80.0,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&product).Error)
	order := domain.Order{ID: 600, UserId: 1, Status: "aberto",
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, db.Create(&order).Error)

	rec := b.do(http.MethodPost, "/pedido/item/add", url.Values{
		"order_id": {"600"}, "product_id": {"42"}, "quantity": {"2"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)

	var item domain.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, 80.0, item.UnitPrice)
	assert.Equal(t, 2, item.Quantity)

	// later price changes must not rewrite the captured line price
	require.NoError(t, db.Model(&product).Update("price", 120.0).Error)
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, 80.0, item.UnitPrice)
}

func TestProductExportXlsx(t *testing.T) {
	server, db := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	require.NoError(t, db.Create(&domain.Product{ID: 1, Name: "Colar", Price: 10,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}).Error)

	rec := b.do(http.MethodGet, "/admin/products/export", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "produtos.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestProductImportCSV(t *testing.T) {
	server, db := newAdminTestServer(t, true)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "produtos.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,description,price,stock,color,image\n" +
		"Tiara,Tiara de strass,25.5,10,prata,tiara.jpg\n" +
		",linha sem nome,1,1,,\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)

	var products []domain.Product
	require.NoError(t, db.Find(&products).Error)
	require.Len(t, products, 1)
	assert.Equal(t, "Tiara", products[0].Name)
	assert.Equal(t, 25.5, products[0].Price)
	assert.Equal(t, 10, products[0].Stock)
}

func TestAdminListAPIs(t *testing.T) {
	server, db := newAdminTestServer(t, true)
	b := &adminClient{t: t, server: server}

	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&domain.Product{
			ID: int64(i + 1), Name: fmt.Sprintf("Produto %02d", i),
			Price: float64(i), CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}).Error)
	}

	rec := b.do(http.MethodGet, "/admin/api/produtos?page=2&pageSize=20", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":25`)

	rec = b.do(http.MethodGet, "/admin/api/produtos?keyword=Produto+03", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}
