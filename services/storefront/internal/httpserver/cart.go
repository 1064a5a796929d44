package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/service"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/transport"
)

type CartHTTP struct {
	Svc   *service.CartService
	Carts *Carts
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	items := h.Svc.Get(ctx, h.Carts.Open(c), SessionID(c))

	l.Debug("get_cart_success", "count", items.TotalCount())
	return c.JSON(http.StatusOK, transport.NewCartResponse(items))
}

func (h *CartHTTP) GetCount(c echo.Context) error {
	ctx := c.Request().Context()

	items := h.Svc.Get(ctx, h.Carts.Open(c), SessionID(c))
	return c.JSON(http.StatusOK, transport.CountResponse{Count: items.TotalCount()})
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID < 1 {
		l.Warn("add_to_cart_error", "status", 400, "reason", "product_id required")
		return echo.NewHTTPError(http.StatusBadRequest, "product_id must be a positive integer")
	}

	items, err := h.Svc.Add(ctx, h.Carts.Open(c), SessionID(c), req.ProductID)
	if err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}

	l.Info("add_to_cart_success", "product_id", req.ProductID, "count", items.TotalCount())
	return c.JSON(http.StatusOK, transport.NewCartResponse(items))
}

func (h *CartHTTP) ChangeQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.change_quantity")

	id, err := parseProductID(c.Param("id"))
	if err != nil {
		l.Warn("change_quantity_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req transport.QuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_quantity_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, err := h.Svc.ChangeQuantity(ctx, h.Carts.Open(c), SessionID(c), id, req.Delta)
	if err != nil {
		l.Error("change_quantity_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}

	l.Info("change_quantity_success", "product_id", id, "delta", req.Delta)
	return c.JSON(http.StatusOK, transport.NewCartResponse(items))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	id, err := parseProductID(c.Param("id"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items, err := h.Svc.Remove(ctx, h.Carts.Open(c), SessionID(c), id)
	if err != nil {
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}

	l.Info("remove_from_cart_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.NewCartResponse(items))
}

// The form variants follow post/redirect/get so a reload never repeats the change.

func (h *CartHTTP) AddForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_form")

	id, err := parseProductID(c.FormValue("product_id"))
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.Svc.Add(ctx, h.Carts.Open(c), SessionID(c), id); err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}
	return c.Redirect(http.StatusSeeOther, backTo(c, "/shop"))
}

func (h *CartHTTP) RemoveForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_form")

	id, err := parseProductID(c.FormValue("product_id"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.Svc.Remove(ctx, h.Carts.Open(c), SessionID(c), id); err != nil {
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *CartHTTP) QuantityForm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.quantity_form")

	id, err := parseProductID(c.FormValue("product_id"))
	if err != nil {
		l.Warn("change_quantity_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	delta, err := strconv.Atoi(c.FormValue("delta"))
	if err != nil {
		l.Warn("change_quantity_error", "status", 400, "reason", "delta is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "delta must be an integer")
	}

	if _, err := h.Svc.ChangeQuantity(ctx, h.Carts.Open(c), SessionID(c), id, delta); err != nil {
		l.Error("change_quantity_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save cart")
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}
