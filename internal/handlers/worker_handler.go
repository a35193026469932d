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

type WorkerHandler struct {
	attendanceService services.AttendanceService
	sessionTTL        time.Duration
	log               *logger.Logger
}

func NewWorkerHandler(attendanceService services.AttendanceService, sessionTTL time.Duration, log *logger.Logger) *WorkerHandler {
	return &WorkerHandler{attendanceService: attendanceService, sessionTTL: sessionTTL, log: log}
}

func workerID(c *gin.Context) string {
	g, _ := session.Current(c, session.RoleWorker)
	return g.Subject
}

func (h *WorkerHandler) LoginPage(c *gin.Context) {
	render(c, h.log, http.StatusOK, "worker_login.html", gin.H{"Title": "Worker Login"})
}

func (h *WorkerHandler) Login(c *gin.Context) {
	employee, err := h.attendanceService.Login(c.PostForm("employee_id"))
	switch {
	case err == nil:
		session.Get(c).SignIn(session.RoleWorker, employee.EmployeeID, employee.FullName(), session.Now(c), h.sessionTTL)
		redirect(c, h.log, "/worker/dashboard")
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrEmployeeInactive):
		flash(c, session.FlashError, "Invalid ID or inactive account")
		redirect(c, h.log, "/worker/login")
	default:
		serverError(c, h.log, "worker_login", err)
	}
}

func (h *WorkerHandler) Dashboard(c *gin.Context) {
	status, err := h.attendanceService.Status(workerID(c))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			session.Get(c).Revoke(session.RoleWorker)
			redirect(c, h.log, "/worker/login")
			return
		}
		serverError(c, h.log, "worker_dashboard", err)
		return
	}
	render(c, h.log, http.StatusOK, "worker_dashboard.html", gin.H{"Title": "Worker Dashboard", "Status": status})
}

func (h *WorkerHandler) CheckIn(c *gin.Context) {
	_, err := h.attendanceService.CheckIn(workerID(c))
	switch {
	case err == nil:
		flash(c, session.FlashSuccess, "Checked in!")
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		flash(c, session.FlashInfo, "Already checked in")
	default:
		serverError(c, h.log, "worker_checkin", err)
		return
	}
	redirect(c, h.log, "/worker/dashboard")
}

func (h *WorkerHandler) CheckOut(c *gin.Context) {
	row, err := h.attendanceService.CheckOut(workerID(c))
	switch {
	case err == nil:
		flash(c, session.FlashSuccess, fmt.Sprintf("Checked out. Hours: %.2f", row.HoursWorked))
	case errors.Is(err, services.ErrNotCheckedIn):
		flash(c, session.FlashError, "Not checked in")
	case errors.Is(err, services.ErrAlreadyCheckedOut):
		flash(c, session.FlashInfo, "Already checked out")
	default:
		serverError(c, h.log, "worker_checkout", err)
		return
	}
	redirect(c, h.log, "/worker/dashboard")
}

func (h *WorkerHandler) Logout(c *gin.Context) {
	session.Get(c).Revoke(session.RoleWorker)
	redirect(c, h.log, "/worker/login")
}
