package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHTTP) identity(c echo.Context) (string, error) {
	v := c.Get("user_email")
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.New("unauthorized")
	}
	return s, nil
}

// publish is best effort: a dead broker must not fail a cart request.
func (h *CartHTTP) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", event["email"].(string), event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_error", "error", err)
	}
}

func (h *CartHTTP) resolveCart(c echo.Context) (*models.Cart, string, error) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.resolve")

	email, err := h.identity(c)
	if err != nil {
		l.Warn("cart_error", "status", 401, "error", err)
		return nil, "", c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: "Unauthorized"})
	}

	cart, err := h.Svc.ResolveCart(ctx, email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			l.Warn("cart_error", "status", 404, "error", err)
			return nil, "", c.JSON(http.StatusNotFound, transport.ErrorResponse{Error: "User not found"})
		}
		l.Error("cart_error", "status", 500, "error", err)
		return nil, "", c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "Internal server error"})
	}
	return cart, email, nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	cart, _, err := h.resolveCart(c)
	if cart == nil {
		return err
	}

	snap, err := h.Svc.GetCart(ctx, cart.ID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "Internal server error"})
	}

	l.Info("get_cart_success", "items", len(snap.Items))
	return c.JSON(http.StatusOK, snap)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	cart, email, err := h.resolveCart(c)
	if cart == nil {
		return err
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.Svc.AddItem(ctx, cart.ID, req.ProductID, quantity)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			l.Warn("add_to_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, transport.ValidationErrorResponse{
				Error:   "Validation failed",
				Details: ve.Fields,
			})
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "Internal server error"})
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"email":     email,
		"cartID":    cart.ID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	l.Info("add_to_cart_success", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	cart, email, err := h.resolveCart(c)
	if cart == nil {
		return err
	}

	var req transport.RemoveItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "invalid body"})
	}

	if err := h.Svc.RemoveItem(ctx, cart.ID, req.ProductID); err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			l.Warn("remove_from_cart_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, transport.ValidationErrorResponse{
				Error:   "Validation failed",
				Details: ve.Fields,
			})
		case errors.Is(err, service.ErrItemNotFound):
			l.Warn("remove_from_cart_error", "status", 404, "error", err)
			return c.JSON(http.StatusNotFound, transport.ErrorResponse{Error: "Item not found in cart"})
		default:
			l.Error("remove_from_cart_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "Internal server error"})
		}
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_removed",
		"email":     email,
		"cartID":    cart.ID,
		"productID": req.ProductID,
	})

	l.Info("remove_from_cart_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Item removed"})
}
