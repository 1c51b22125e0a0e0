package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/internal/websession"
)

func (s *WebServer) addToWishlist(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.String(http.StatusNotFound, "Produto não encontrado")
	}
	w := websession.Wishlist(c).Add(id)
	if err := websession.SaveWishlist(c, w); err != nil {
		return err
	}
	return redirect(c, "/wishlist")
}

func (s *WebServer) toggleWishlist(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.String(http.StatusNotFound, "Produto não encontrado")
	}
	w := websession.Wishlist(c).Toggle(id)
	if err := websession.SaveWishlist(c, w); err != nil {
		return err
	}
	return redirect(c, "/wishlist")
}

func (s *WebServer) removeFromWishlist(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return redirect(c, "/wishlist")
	}
	w := websession.Wishlist(c).Remove(id)
	if err := websession.SaveWishlist(c, w); err != nil {
		return err
	}
	return redirect(c, "/wishlist")
}

func (s *WebServer) viewWishlist(c echo.Context) error {
	w := websession.Wishlist(c)
	var products []domain.Product
	if len(w) > 0 {
		if err := s.app.DB().Where("id IN ?", []int64(w)).Find(&products).Error; err != nil {
			return err
		}
	}
	return c.Render(http.StatusOK, "wishlist.html", echo.Map{
		"Products": w.View(products),
	})
}
