package webserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/internal/websession"
)

func parseIDParam(c echo.Context, name string) (int64, error) {
	return cast.ToInt64E(c.Param(name))
}

func (s *WebServer) index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", echo.Map{
		"LoggedIn": websession.UserEmail(c) != "",
	})
}

func (s *WebServer) home(c echo.Context) error {
	var products []domain.Product
	if err := s.app.DB().Order("created_at DESC").Limit(8).Find(&products).Error; err != nil {
		return err
	}
	var posts []domain.Post
	if err := s.app.DB().Order("created_at DESC").Limit(3).Find(&posts).Error; err != nil {
		return err
	}
	return c.Render(http.StatusOK, "home.html", echo.Map{
		"Products": products,
		"Posts":    posts,
		"LoggedIn": websession.UserEmail(c) != "",
	})
}

func (s *WebServer) listProducts(c echo.Context) error {
	var products []domain.Product
	if err := s.app.DB().Find(&products).Error; err != nil {
		return err
	}
	return c.Render(http.StatusOK, "products.html", echo.Map{
		"Products": products,
		"Wishlist": websession.Wishlist(c),
	})
}

func (s *WebServer) productDetail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.String(http.StatusNotFound, "Produto não encontrado")
	}
	var product domain.Product
	if err := s.app.DB().First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.String(http.StatusNotFound, "Produto não encontrado")
		}
		return err
	}
	// full list rides along for the related-products sidebar
	var products []domain.Product
	if err := s.app.DB().Find(&products).Error; err != nil {
		return err
	}
	return c.Render(http.StatusOK, "product.html", echo.Map{
		"Product":  product,
		"Products": products,
	})
}

func (s *WebServer) listPosts(c echo.Context) error {
	var posts []domain.Post
	if err := s.app.DB().Order("created_at DESC").Find(&posts).Error; err != nil {
		return err
	}
	return c.Render(http.StatusOK, "blog.html", echo.Map{"Posts": posts})
}

func (s *WebServer) postDetail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.String(http.StatusNotFound, "Post não encontrado")
	}
	var post domain.Post
	if err := s.app.DB().First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.String(http.StatusNotFound, "Post não encontrado")
		}
		return err
	}
	return c.Render(http.StatusOK, "post.html", echo.Map{"Post": post})
}
