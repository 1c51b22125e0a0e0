package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/common"
)

func registerProductRoutes(e *echo.Echo, mw []echo.MiddlewareFunc) {
	e.POST("/produto/add", addProduct, mw...)
	e.POST("/produto/edit/:id", editProduct, mw...)
	e.POST("/produto/delete/:id", deleteProduct, mw...)
	e.GET("/admin/products/export", exportProductsXlsx, mw...)
	e.POST("/admin/products/import", importProductsCSV, mw...)
}

// Numeric fields arrive as strings and are converted strictly: the
// original blew up at runtime on malformed input, here it is a 400.
type productPayload struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	Stock       string `form:"stock" json:"stock"`
	Color       string `form:"color" json:"color"`
	Image       string `form:"image" json:"image"`
}

func (p productPayload) numbers() (price float64, stock int, err error) {
	if p.Price != "" {
		price, err = cast.ToFloat64E(p.Price)
		if err != nil {
			return 0, 0, err
		}
	}
	if p.Stock != "" {
		stock, err = cast.ToIntE(p.Stock)
		if err != nil {
			return 0, 0, err
		}
	}
	return price, stock, nil
}

func addProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Product name is required", nil)
	}
	price, stock, err := payload.numbers()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_NUMBER", "Malformed price or stock", err.Error())
	}

	product := domain.Product{
		ID:          common.UUIDint64(),
		Name:        strings.TrimSpace(payload.Name),
		Description: payload.Description,
		Price:       price,
		Stock:       stock,
		Color:       payload.Color,
		Image:       payload.Image,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := GetDB(c).Create(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "produto/add "+product.Name)
	return backToAdmin(c)
}

func editProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return backToAdmin(c)
	}
	var product domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backToAdmin(c)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	price, stock, err := payload.numbers()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_NUMBER", "Malformed price or stock", err.Error())
	}

	product.Name = strings.TrimSpace(payload.Name)
	product.Description = payload.Description
	product.Price = price
	product.Stock = stock
	product.Color = payload.Color
	product.Image = payload.Image
	product.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "produto/edit "+product.Name)
	return backToAdmin(c)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return backToAdmin(c)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), "produto/delete")
	return backToAdmin(c)
}
