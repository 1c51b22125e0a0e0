// Package websession is the session boundary: typed accessors over the
// cookie session shared by the storefront and the admin panel.
package websession

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/anasouza/boutique/internal/shopping"
)

const (
	Name = "boutique_session"

	keyCart     = "cart"
	keyWishlist = "wishlist"
	keyUser     = "user_email"
	keyOperator = "operator"
)

// Cart returns the visitor's cart, creating an empty one lazily. The
// session is not written until Save is called after a mutation.
func Cart(c echo.Context) shopping.Cart {
	sess, _ := session.Get(Name, c)
	if cart, ok := sess.Values[keyCart].(shopping.Cart); ok {
		return cart
	}
	return shopping.NewCart()
}

func SaveCart(c echo.Context, cart shopping.Cart) error {
	sess, _ := session.Get(Name, c)
	sess.Values[keyCart] = cart
	return sess.Save(c.Request(), c.Response())
}

// Wishlist returns the visitor's wishlist, empty when never touched.
func Wishlist(c echo.Context) shopping.Wishlist {
	sess, _ := session.Get(Name, c)
	if w, ok := sess.Values[keyWishlist].(shopping.Wishlist); ok {
		return w
	}
	return shopping.NewWishlist()
}

func SaveWishlist(c echo.Context, w shopping.Wishlist) error {
	sess, _ := session.Get(Name, c)
	sess.Values[keyWishlist] = w
	return sess.Save(c.Request(), c.Response())
}

// UserEmail returns the authentication marker, empty when anonymous.
func UserEmail(c echo.Context) string {
	sess, _ := session.Get(Name, c)
	if email, ok := sess.Values[keyUser].(string); ok {
		return email
	}
	return ""
}

func SetUserEmail(c echo.Context, email string) error {
	sess, _ := session.Get(Name, c)
	sess.Values[keyUser] = email
	return sess.Save(c.Request(), c.Response())
}

func ClearUser(c echo.Context) error {
	sess, _ := session.Get(Name, c)
	delete(sess.Values, keyUser)
	return sess.Save(c.Request(), c.Response())
}

// Operator reports whether this session passed the admin login.
func Operator(c echo.Context) bool {
	sess, _ := session.Get(Name, c)
	ok, _ := sess.Values[keyOperator].(bool)
	return ok
}

func SetOperator(c echo.Context, ok bool) error {
	sess, _ := session.Get(Name, c)
	if ok {
		sess.Values[keyOperator] = true
	} else {
		delete(sess.Values, keyOperator)
	}
	return sess.Save(c.Request(), c.Response())
}
