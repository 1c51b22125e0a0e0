package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/metrics"
)

// JSON listing endpoints for the admin panel's tables. They page and
// filter server side so the dashboard can grow past what fits in one
// rendered page.
func registerAPIRoutes(e *echo.Echo, mw []echo.MiddlewareFunc) {
	e.GET("/admin/api/usuarios", listUsersAPI, mw...)
	e.GET("/admin/api/produtos", listProductsAPI, mw...)
	e.GET("/admin/api/posts", listPostsAPI, mw...)
	e.GET("/admin/api/pedidos", listOrdersAPI, mw...)
	e.GET("/admin/api/stats", statsAPI, mw...)
}

func listUsersAPI(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.User{})
	if keyword := c.QueryParam("keyword"); keyword != "" {
		query = query.Where("email LIKE ? OR name LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	var total int64
	query.Count(&total)
	var users []domain.User
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}
	return paged(c, users, total, page, pageSize)
}

func listProductsAPI(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.Product{})
	if keyword := c.QueryParam("keyword"); keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	var total int64
	query.Count(&total)
	var products []domain.Product
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, products, total, page, pageSize)
}

func listPostsAPI(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.Post{})
	if keyword := c.QueryParam("keyword"); keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}
	var total int64
	query.Count(&total)
	var posts []domain.Post
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&posts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query posts", err.Error())
	}
	return paged(c, posts, total, page, pageSize)
}

func listOrdersAPI(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.Order{}).Preload("Items")
	if userID := c.QueryParam("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	var total int64
	query.Count(&total)
	var orders []domain.Order
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, orders, total, page, pageSize)
}

func statsAPI(c echo.Context) error {
	return ok(c, echo.Map{
		"cpuuse":        metrics.LatestGauge("boutique_cpuuse"),
		"memuse":        metrics.LatestGauge("boutique_memuse"),
		"http_requests": metrics.SumCounter("http_requests", time.Hour),
		"cart_adds":     metrics.SumCounter("cart_add", time.Hour),
	})
}
