package webserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/internal/websession"
	"github.com/anasouza/boutique/pkg/metrics"
)

func (s *WebServer) addToCart(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.String(http.StatusNotFound, "Produto não encontrado")
	}
	cart := websession.Cart(c)
	cart.Add(id)
	if err := websession.SaveCart(c, cart); err != nil {
		return err
	}
	metrics.IncrCounter("cart_add", 1)
	return redirect(c, "/carrinho")
}

func (s *WebServer) viewCart(c echo.Context) error {
	cart := websession.Cart(c)
	var products []domain.Product
	if cart.Len() > 0 {
		if err := s.app.DB().Where("id IN ?", cart.ProductIDs()).Find(&products).Error; err != nil {
			return err
		}
	}
	view := cart.View(products)
	return c.Render(http.StatusOK, "cart.html", echo.Map{
		"Lines": view.Lines,
		"Total": view.Total,
	})
}

func (s *WebServer) removeFromCart(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return redirect(c, "/carrinho")
	}
	cart := websession.Cart(c)
	cart.Remove(id)
	if err := websession.SaveCart(c, cart); err != nil {
		return err
	}
	return redirect(c, "/carrinho")
}

// updateCart rewrites one entry's quantity and answers with the line
// subtotal and the new grand total so the cart page can update in place.
func (s *WebServer) updateCart(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Produto não encontrado"})
	}
	quantity, err := cast.ToIntE(c.Param("quantity"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Quantidade inválida"})
	}

	var product domain.Product
	if err := s.app.DB().First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Produto não encontrado"})
		}
		return err
	}

	cart := websession.Cart(c)
	cart.SetQuantity(id, quantity)
	if err := websession.SaveCart(c, cart); err != nil {
		return err
	}

	var products []domain.Product
	if cart.Len() > 0 {
		if err := s.app.DB().Where("id IN ?", cart.ProductIDs()).Find(&products).Error; err != nil {
			return err
		}
	}
	view := cart.View(products)

	subtotal := product.Price * float64(cart.Quantity(id))
	return c.JSON(http.StatusOK, echo.Map{
		"subtotal": subtotal,
		"total":    view.Total,
	})
}
