package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tastycorner/internal/models"
	"tastycorner/internal/services"
	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
)

var dashboardSections = map[string]bool{
	"overview":  true,
	"orders":    true,
	"analytics": true,
	"employees": true,
	"menu":      true,
	"coupons":   true,
}

type AdminHandler struct {
	adminService services.AdminService
	sessionTTL   time.Duration
	log          *logger.Logger
}

func NewAdminHandler(adminService services.AdminService, sessionTTL time.Duration, log *logger.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, sessionTTL: sessionTTL, log: log}
}

func (h *AdminHandler) LoginPage(c *gin.Context) {
	if _, ok := session.Current(c, session.RoleAdmin); ok {
		redirect(c, h.log, "/admin/")
		return
	}
	render(c, h.log, http.StatusOK, "admin_login.html", gin.H{"Title": "Admin Login"})
}

func (h *AdminHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	if err := h.adminService.Authenticate(email, c.PostForm("password")); err != nil {
		h.log.Warn(requestID(c), "admin_login", "Rejected admin login")
		flash(c, session.FlashError, "Invalid credentials")
		redirect(c, h.log, "/admin/login")
		return
	}
	session.Get(c).SignIn(session.RoleAdmin, strings.TrimSpace(email), "Admin", session.Now(c), h.sessionTTL)
	flash(c, session.FlashSuccess, "Welcome back, Admin!")
	redirect(c, h.log, "/admin/")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	session.Get(c).Revoke(session.RoleAdmin)
	flash(c, session.FlashInfo, "Admin signed out")
	redirect(c, h.log, "/admin/login")
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	section := c.DefaultQuery("section", "overview")
	if !dashboardSections[section] {
		section = "overview"
	}

	dash, err := h.adminService.Dashboard()
	if err != nil {
		serverError(c, h.log, "admin_dashboard", err)
		return
	}
	render(c, h.log, http.StatusOK, "admin_dashboard.html", gin.H{
		"Title":         "Admin Dashboard",
		"Section":       section,
		"Dash":          dash,
		"OrderStatuses": []models.OrderStatus{models.OrderPreparing, models.OrderOutForDelivery, models.OrderCompleted, models.OrderCancelled},
	})
}

// optionalFloat parses a form value; blank means unset.
func optionalFloat(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optionalInt(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (h *AdminHandler) AddEmployee(c *gin.Context) {
	const back = "/admin/?section=employees"

	rate, err := optionalFloat(c.PostForm("hourly_rate"))
	if err != nil {
		flash(c, session.FlashError, "Invalid hourly rate")
		redirect(c, h.log, back)
		return
	}

	_, err = h.adminService.AddEmployee(services.EmployeeInput{
		EmployeeID: c.PostForm("employee_id"),
		FirstName:  c.PostForm("first_name"),
		LastName:   c.PostForm("last_name"),
		Email:      c.PostForm("email"),
		JobTitle:   c.PostForm("job_title"),
		Mobile:     c.PostForm("mobile"),
		HourlyRate: rate,
	})
	switch {
	case err == nil:
		flash(c, session.FlashSuccess, "Employee added")
	case errors.Is(err, services.ErrMissingFields):
		flash(c, session.FlashError, "Please fill in all fields")
	case errors.Is(err, services.ErrDuplicateEmployee):
		flash(c, session.FlashError, "Employee ID or email already exists")
	default:
		h.log.Error(requestID(c), "add_employee", "Failed to add employee", err)
		flash(c, session.FlashError, "Error adding employee")
	}
	redirect(c, h.log, back)
}

func (h *AdminHandler) AddMenuItem(c *gin.Context) {
	const back = "/admin/?section=menu"

	price, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm("price")), 64)
	if err != nil {
		flash(c, session.FlashError, "Invalid price")
		redirect(c, h.log, back)
		return
	}

	_, err = h.adminService.AddMenuItem(services.MenuItemInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Category:    c.PostForm("category"),
		Image:       c.PostForm("image"),
	})
	switch {
	case err == nil:
		flash(c, session.FlashSuccess, "Menu item added")
	case errors.Is(err, services.ErrMissingFields):
		flash(c, session.FlashError, "Please fill in all fields")
	case errors.Is(err, services.ErrInvalidInput):
		flash(c, session.FlashError, "Invalid price")
	default:
		h.log.Error(requestID(c), "add_menu_item", "Failed to add menu item", err)
		flash(c, session.FlashError, "Error adding menu item")
	}
	redirect(c, h.log, back)
}

func (h *AdminHandler) AddCoupon(c *gin.Context) {
	const back = "/admin/?section=coupons"

	value, valueErr := strconv.ParseFloat(strings.TrimSpace(c.PostForm("discount_value")), 64)
	minOrder, minErr := optionalFloat(c.PostForm("min_order"))
	maxDiscount, maxErr := optionalFloat(c.PostForm("max_discount"))
	usageLimit, limitErr := optionalInt(c.PostForm("usage_limit"))
	if valueErr != nil || minErr != nil || maxErr != nil || limitErr != nil {
		flash(c, session.FlashError, "Invalid coupon values")
		redirect(c, h.log, back)
		return
	}

	input := services.CouponInput{
		Code:          c.PostForm("code"),
		DiscountType:  c.PostForm("discount_type"),
		DiscountValue: value,
		MaxDiscount:   maxDiscount,
		UsageLimit:    usageLimit,
		ExpiryDate:    c.PostForm("expiry_date"),
	}
	if minOrder != nil {
		input.MinOrder = *minOrder
	}

	coupon, err := h.adminService.AddCoupon(input)
	switch {
	case err == nil:
		flash(c, session.FlashSuccess, fmt.Sprintf("Coupon %s created", coupon.Code))
	case errors.Is(err, services.ErrMissingFields):
		flash(c, session.FlashError, "Please fill in all fields")
	case errors.Is(err, services.ErrDuplicateCoupon):
		flash(c, session.FlashError, "Coupon code already exists")
	case errors.Is(err, services.ErrInvalidInput):
		flash(c, session.FlashError, strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": "))
	default:
		h.log.Error(requestID(c), "add_coupon", "Failed to add coupon", err)
		flash(c, session.FlashError, "Error adding coupon")
	}
	redirect(c, h.log, back)
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	const back = "/admin/?section=orders"

	orderID, ok := parseUintParam(c, "id")
	status := models.OrderStatus(c.PostForm("status"))
	if !ok || !status.Valid() {
		flash(c, session.FlashError, "Invalid order status")
		redirect(c, h.log, back)
		return
	}

	err := h.adminService.UpdateOrderStatus(orderID, status)
	switch {
	case err == nil:
		h.log.Info(requestID(c), "order_status", fmt.Sprintf("Order #%d moved to %s", orderID, status))
		flash(c, session.FlashSuccess, fmt.Sprintf("Order #%d marked %s", orderID, status))
	case errors.Is(err, services.ErrOrderNotFound):
		flash(c, session.FlashError, "Order not found")
	case errors.Is(err, services.ErrInvalidTransition):
		flash(c, session.FlashError, fmt.Sprintf("Order #%d cannot move to %s", orderID, status))
	default:
		serverError(c, h.log, "order_status", err)
		return
	}
	redirect(c, h.log, back)
}

func (h *AdminHandler) MarkPaid(c *gin.Context) {
	const back = "/admin/?section=employees"

	employeeID := c.Param("employee_id")
	err := h.adminService.MarkPaid(employeeID)
	switch {
	case err == nil:
		flash(c, session.FlashSuccess, fmt.Sprintf("Employee %s marked as paid", employeeID))
	case errors.Is(err, services.ErrEmployeeNotFound):
		flash(c, session.FlashError, "Employee not found")
	default:
		serverError(c, h.log, "mark_paid", err)
		return
	}
	redirect(c, h.log, back)
}
