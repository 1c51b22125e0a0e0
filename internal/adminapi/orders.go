package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/anasouza/boutique/internal/app"
	"github.com/anasouza/boutique/internal/domain"
	"github.com/anasouza/boutique/pkg/common"
)

func registerOrderRoutes(e *echo.Echo, mw []echo.MiddlewareFunc) {
	e.POST("/pedido/add", addOrder, mw...)
	e.POST("/pedido/edit/:id", editOrder, mw...)
	e.POST("/pedido/delete/:id", deleteOrder, mw...)
	e.POST("/pedido/item/add", addOrderItem, mw...)
}

type orderPayload struct {
	UserId string `form:"user_id" json:"user_id"`
	Status string `form:"status" json:"status"`
}

func addOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}
	userID, err := cast.ToInt64E(payload.UserId)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_NUMBER", "Malformed user id", err.Error())
	}

	order := domain.Order{
		ID:        common.UUIDint64(),
		UserId:    userID,
		Status:    payload.Status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&order).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), fmt.Sprintf("pedido/add %d", order.ID))
	return backToAdmin(c)
}

func editOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return backToAdmin(c)
	}
	var order domain.Order
	if err := GetDB(c).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backToAdmin(c)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", err.Error())
	}

	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}
	if payload.UserId != "" {
		userID, uerr := cast.ToInt64E(payload.UserId)
		if uerr != nil {
			return fail(c, http.StatusBadRequest, "INVALID_NUMBER", "Malformed user id", uerr.Error())
		}
		order.UserId = userID
	}
	order.Status = payload.Status
	order.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&order).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), fmt.Sprintf("pedido/edit %d", order.ID))
	return backToAdmin(c)
}

// deleteOrder removes line items first: there is no FK cascade in the
// schema.
func deleteOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return backToAdmin(c)
	}
	db := GetDB(c)
	if err := db.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order items", err.Error())
	}
	if err := db.Where("id = ?", id).Delete(&domain.Order{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtOrderDelete, actor(c), fmt.Sprintf("pedido/delete %d", id))
	return backToAdmin(c)
}

type orderItemPayload struct {
	OrderId   string `form:"order_id" json:"order_id"`
	ProductId string `form:"product_id" json:"product_id"`
	Quantity  string `form:"quantity" json:"quantity"`
}

// addOrderItem attaches a line to an existing order, freezing the
// product's current price as the unit price.
func addOrderItem(c echo.Context) error {
	var payload orderItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order item", nil)
	}
	orderID, err := cast.ToInt64E(payload.OrderId)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_NUMBER", "Malformed order id", err.Error())
	}
	productID, err := cast.ToInt64E(payload.ProductId)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_NUMBER", "Malformed product id", err.Error())
	}
	quantity := 1
	if payload.Quantity != "" {
		quantity, err = cast.ToIntE(payload.Quantity)
		if err != nil || quantity < 1 {
			return fail(c, http.StatusBadRequest, "INVALID_NUMBER", "Malformed quantity", nil)
		}
	}

	db := GetDB(c)
	var order domain.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backToAdmin(c)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", err.Error())
	}
	var product domain.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backToAdmin(c)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	item := domain.OrderItem{
		ID:        common.UUIDint64(),
		OrderId:   order.ID,
		ProductId: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	if err := db.Create(&item).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order item", err.Error())
	}
	GetApp(c).Bus().Publish(app.EvtAdminMutation, actor(c), fmt.Sprintf("pedido/item/add %d", order.ID))
	return backToAdmin(c)
}
