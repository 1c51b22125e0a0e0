package webserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/domain"
)

func (s *WebServer) profile(c echo.Context) error {
	user, ok := s.currentUser(c)
	if !ok {
		return redirect(c, "/login")
	}

	var orders []domain.Order
	if err := s.app.DB().Preload("Items").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return err
	}

	type orderRow struct {
		Order domain.Order
		Total float64
	}
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{Order: o, Total: o.Total()})
	}

	return c.Render(http.StatusOK, "profile.html", echo.Map{
		"User":   user,
		"Orders": rows,
	})
}

// orderDetail matches order id and owner in a single query so a foreign
// order is indistinguishable from a missing one.
func (s *WebServer) orderDetail(c echo.Context) error {
	user, ok := s.currentUser(c)
	if !ok {
		return redirect(c, "/login")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.String(http.StatusNotFound, "Pedido não encontrado")
	}

	var order domain.Order
	if err := s.app.DB().Preload("Items").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.String(http.StatusNotFound, "Pedido não encontrado")
		}
		return err
	}

	return c.Render(http.StatusOK, "order.html", echo.Map{
		"Order": order,
		"Total": order.Total(),
	})
}
