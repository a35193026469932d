package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tastycorner/internal/services"
	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
)

// MainHandler serves the customer-facing pages.
type MainHandler struct {
	menuService     services.MenuService
	orderService    services.OrderService
	wishlistService services.WishlistService
	log             *logger.Logger
}

func NewMainHandler(
	menuService services.MenuService,
	orderService services.OrderService,
	wishlistService services.WishlistService,
	log *logger.Logger,
) *MainHandler {
	return &MainHandler{
		menuService:     menuService,
		orderService:    orderService,
		wishlistService: wishlistService,
		log:             log,
	}
}

func (h *MainHandler) Home(c *gin.Context) {
	featured, err := h.menuService.Featured()
	if err != nil {
		serverError(c, h.log, "home", err)
		return
	}
	render(c, h.log, http.StatusOK, "index.html", gin.H{"Title": "Home", "Featured": featured})
}

func (h *MainHandler) Menu(c *gin.Context) {
	var userID *uint
	if id, ok := customerID(c); ok {
		userID = &id
	}
	page, err := h.menuService.Browse(c.Query("search"), c.Query("category"), userID)
	if err != nil {
		serverError(c, h.log, "menu", err)
		return
	}
	render(c, h.log, http.StatusOK, "menu.html", gin.H{"Title": "Menu", "Page": page})
}

type addToCartForm struct {
	ItemID    string `form:"item_id"`
	Quantity  string `form:"quantity"`
	Allergies string `form:"allergies"`
}

func (h *MainHandler) AddToCart(c *gin.Context) {
	var form addToCartForm
	_ = c.ShouldBind(&form)

	itemID, ok := parseUint(form.ItemID)
	if !ok {
		flash(c, session.FlashError, "Item not found")
		redirect(c, h.log, "/menu")
		return
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	item, err := h.menuService.GetItem(itemID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			flash(c, session.FlashError, "Item not found")
			redirect(c, h.log, "/menu")
			return
		}
		serverError(c, h.log, "add_to_cart", err)
		return
	}

	session.Get(c).Cart.Add(item.ItemID, item.Name, item.Price, quantity, strings.TrimSpace(form.Allergies))
	flash(c, session.FlashSuccess, fmt.Sprintf("%s added to cart!", item.Name))
	redirect(c, h.log, "/menu")
}

func (h *MainHandler) Cart(c *gin.Context) {
	cart := &session.Get(c).Cart
	render(c, h.log, http.StatusOK, "cart.html", gin.H{
		"Title":    "Cart",
		"Lines":    cart.Items(),
		"Subtotal": cart.Subtotal(),
	})
}

func (h *MainHandler) UpdateCartQuantity(c *gin.Context) {
	itemID, ok := parseUint(c.PostForm("item_id"))
	quantity, err := strconv.Atoi(strings.TrimSpace(c.PostForm("quantity")))
	if ok && err == nil {
		session.Get(c).Cart.SetQuantity(itemID, quantity)
	}
	redirect(c, h.log, "/cart")
}

func (h *MainHandler) RemoveFromCart(c *gin.Context) {
	if itemID, ok := parseUintParam(c, "item_id"); ok {
		session.Get(c).Cart.Remove(itemID)
	}
	redirect(c, h.log, "/cart")
}

func (h *MainHandler) CheckoutPage(c *gin.Context) {
	cart := &session.Get(c).Cart
	if cart.IsEmpty() {
		flash(c, session.FlashError, "Your cart is empty")
		redirect(c, h.log, "/menu")
		return
	}

	lines := cart.Items()
	couponCode := strings.TrimSpace(c.Query("coupon_code"))
	data := gin.H{"Title": "Checkout", "Lines": lines, "CouponCode": couponCode}

	totals, err := h.orderService.Quote(lines, couponCode)
	if errors.Is(err, services.ErrCouponInvalid) {
		data["CouponError"] = err.Error()
		totals, err = h.orderService.Quote(lines, "")
	}
	if err != nil {
		serverError(c, h.log, "checkout_quote", err)
		return
	}
	data["Totals"] = totals
	render(c, h.log, http.StatusOK, "checkout.html", data)
}

func (h *MainHandler) Checkout(c *gin.Context) {
	userID, _ := customerID(c)
	sess := session.Get(c)
	couponCode := strings.TrimSpace(c.PostForm("coupon_code"))

	order, err := h.orderService.Checkout(userID, sess.Cart.Items(), couponCode)
	switch {
	case err == nil:
		sess.Cart.Clear()
		h.log.Info(requestID(c), "checkout", fmt.Sprintf("Order #%d placed by user %d", order.OrderID, userID))
		flash(c, session.FlashSuccess, fmt.Sprintf("Order #%d placed successfully!", order.OrderID))
		redirect(c, h.log, fmt.Sprintf("/order_confirmation/%d", order.OrderID))
	case errors.Is(err, services.ErrEmptyCart):
		flash(c, session.FlashError, "Your cart is empty")
		redirect(c, h.log, "/menu")
	case errors.Is(err, services.ErrCouponInvalid):
		flash(c, session.FlashError, err.Error())
		redirect(c, h.log, "/checkout")
	default:
		serverError(c, h.log, "checkout", err)
	}
}

func (h *MainHandler) OrderConfirmation(c *gin.Context) {
	userID, _ := customerID(c)
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		flash(c, session.FlashError, "Order not found")
		redirect(c, h.log, "/menu")
		return
	}

	order, err := h.orderService.GetOrderForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			flash(c, session.FlashError, "Order not found")
			redirect(c, h.log, "/menu")
			return
		}
		serverError(c, h.log, "order_confirmation", err)
		return
	}
	render(c, h.log, http.StatusOK, "order_confirmation.html", gin.H{"Title": "Order Confirmed", "Order": order})
}

func (h *MainHandler) Orders(c *gin.Context) {
	userID, _ := customerID(c)
	orders, err := h.orderService.GetOrdersByUser(userID)
	if err != nil {
		serverError(c, h.log, "orders", err)
		return
	}
	render(c, h.log, http.StatusOK, "orders.html", gin.H{"Title": "My Orders", "Orders": orders})
}

func (h *MainHandler) Wishlist(c *gin.Context) {
	userID, _ := customerID(c)
	items, err := h.wishlistService.Items(userID)
	if err != nil {
		serverError(c, h.log, "wishlist", err)
		return
	}
	render(c, h.log, http.StatusOK, "wishlist.html", gin.H{"Title": "Favorites", "Items": items})
}

func (h *MainHandler) AddToWishlist(c *gin.Context) {
	userID, _ := customerID(c)
	itemID, ok := parseUint(c.PostForm("item_id"))
	if !ok {
		flash(c, session.FlashError, "Item not found")
		redirect(c, h.log, "/menu")
		return
	}

	err := h.wishlistService.Add(userID, itemID)
	switch {
	case err == nil:
		flash(c, session.FlashSuccess, "Added to favorites")
	case errors.Is(err, services.ErrAlreadyWishlisted):
		flash(c, session.FlashInfo, "Already in favorites")
	case errors.Is(err, services.ErrItemNotFound):
		flash(c, session.FlashError, "Item not found")
	default:
		serverError(c, h.log, "add_to_wishlist", err)
		return
	}
	redirect(c, h.log, "/menu")
}

func (h *MainHandler) RemoveFromWishlist(c *gin.Context) {
	userID, _ := customerID(c)
	if itemID, ok := parseUintParam(c, "item_id"); ok {
		if err := h.wishlistService.Remove(userID, itemID); err != nil {
			serverError(c, h.log, "remove_from_wishlist", err)
			return
		}
	}
	redirect(c, h.log, "/wishlist")
}

func (h *MainHandler) About(c *gin.Context) {
	render(c, h.log, http.StatusOK, "about.html", gin.H{"Title": "About"})
}

func (h *MainHandler) Contact(c *gin.Context) {
	render(c, h.log, http.StatusOK, "contact.html", gin.H{"Title": "Contact"})
}
