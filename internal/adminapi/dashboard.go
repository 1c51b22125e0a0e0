package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/metrics"
)

// dashboard lists one entity collection per tab (aba) plus catalog price
// statistics and process gauges.
func dashboard(c echo.Context) error {
	tab := c.QueryParam("aba")
	switch tab {
	case "usuarios", "produtos", "posts", "pedidos":
	default:
		tab = "produtos"
	}

	db := GetDB(c)
	data := echo.Map{"Tab": tab}

	switch tab {
	case "usuarios":
		var users []domain.User
		if err := db.Find(&users).Error; err != nil {
			return err
		}
		data["Users"] = users
	case "posts":
		var posts []domain.Post
		if err := db.Find(&posts).Error; err != nil {
			return err
		}
		data["Posts"] = posts
	case "pedidos":
		var orders []domain.Order
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			return err
		}
		data["Orders"] = orders
	default:
		var products []domain.Product
		if err := db.Find(&products).Error; err != nil {
			return err
		}
		data["Products"] = products
	}

	var prices []float64
	db.Model(&domain.Product{}).Pluck("price", &prices)
	mean, _ := stats.Mean(prices)
	median, _ := stats.Median(prices)
	data["PriceMean"] = mean
	data["PriceMedian"] = median
	data["CPU"] = metrics.LatestGauge("boutique_cpuuse") / 100
	data["Mem"] = metrics.LatestGauge("boutique_memuse")

	return c.Render(http.StatusOK, "admin.html", data)
}
