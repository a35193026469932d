package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tastycorner/internal/services"
	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
)

type DriverHandler struct {
	driverService services.DriverService
	sessionTTL    time.Duration
	log           *logger.Logger
}

func NewDriverHandler(driverService services.DriverService, sessionTTL time.Duration, log *logger.Logger) *DriverHandler {
	return &DriverHandler{driverService: driverService, sessionTTL: sessionTTL, log: log}
}

func (h *DriverHandler) LoginPage(c *gin.Context) {
	render(c, h.log, http.StatusOK, "driver_login.html", gin.H{"Title": "Driver Login"})
}

func (h *DriverHandler) Login(c *gin.Context) {
	employee, err := h.driverService.Login(c.PostForm("employee_id"))
	switch {
	case err == nil:
		session.Get(c).SignIn(session.RoleDriver, employee.EmployeeID, employee.FullName(), session.Now(c), h.sessionTTL)
		redirect(c, h.log, "/driver/dashboard")
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrNotADriver):
		flash(c, session.FlashError, "Invalid ID or not a driver")
		redirect(c, h.log, "/driver/login")
	default:
		serverError(c, h.log, "driver_login", err)
	}
}

func (h *DriverHandler) Dashboard(c *gin.Context) {
	deliveries, err := h.driverService.PendingDeliveries()
	if err != nil {
		serverError(c, h.log, "driver_dashboard", err)
		return
	}
	g, _ := session.Current(c, session.RoleDriver)
	render(c, h.log, http.StatusOK, "driver_dashboard.html", gin.H{
		"Title":      "Driver Dashboard",
		"DriverName": g.Name,
		"Deliveries": deliveries,
	})
}

func (h *DriverHandler) RouteOptimizer(c *gin.Context) {
	render(c, h.log, http.StatusOK, "route_optimizer.html", gin.H{"Title": "Route Optimizer"})
}

// PendingDeliveries lists the stops currently out for delivery.
func (h *DriverHandler) PendingDeliveries(c *gin.Context) {
	deliveries, err := h.driverService.PendingDeliveries()
	if err != nil {
		h.log.Error(requestID(c), "driver_api", "Failed to load deliveries", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load deliveries"})
		return
	}
	stops := make([]gin.H, 0, len(deliveries))
	for _, d := range deliveries {
		stops = append(stops, gin.H{
			"id":      d.OrderID,
			"name":    d.Name,
			"address": d.Address,
			"phone":   d.Phone,
			"total":   d.Total,
		})
	}
	c.JSON(http.StatusOK, gin.H{"stops": stops})
}

func (h *DriverHandler) MarkDelivered(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		flash(c, session.FlashError, "Order not found")
		redirect(c, h.log, "/driver/dashboard")
		return
	}

	err := h.driverService.MarkDelivered(orderID)
	switch {
	case err == nil:
		g, _ := session.Current(c, session.RoleDriver)
		h.log.Info(requestID(c), "delivered", fmt.Sprintf("Order #%d delivered by %s", orderID, g.Subject))
		flash(c, session.FlashSuccess, fmt.Sprintf("Order #%d delivered", orderID))
	case errors.Is(err, services.ErrOrderNotFound):
		flash(c, session.FlashError, "Order not found")
	case errors.Is(err, services.ErrInvalidTransition):
		flash(c, session.FlashError, fmt.Sprintf("Order #%d is not out for delivery", orderID))
	default:
		serverError(c, h.log, "delivered", err)
		return
	}
	redirect(c, h.log, "/driver/dashboard")
}

func (h *DriverHandler) Logout(c *gin.Context) {
	session.Get(c).Revoke(session.RoleDriver)
	redirect(c, h.log, "/driver/login")
}
