package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tastycorner/internal/services"
	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
)

type AuthHandler struct {
	userService services.UserService
	sessionTTL  time.Duration
	log         *logger.Logger
}

func NewAuthHandler(userService services.UserService, sessionTTL time.Duration, log *logger.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, sessionTTL: sessionTTL, log: log}
}

type signUpForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Name     string `form:"name"`
	Phone    string `form:"phone"`
	Address  string `form:"address"`
}

type signInForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *AuthHandler) SignUpPage(c *gin.Context) {
	render(c, h.log, http.StatusOK, "signup.html", gin.H{"Title": "Sign Up"})
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var form signUpForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, session.FlashError, "Please fill in all fields")
		redirect(c, h.log, "/signup")
		return
	}

	_, err := h.userService.SignUp(services.SignUpInput{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
		Phone:    form.Phone,
		Address:  form.Address,
	})
	switch {
	case err == nil:
		flash(c, session.FlashSuccess, "Account created successfully! Please sign in.")
		redirect(c, h.log, "/signin")
	case errors.Is(err, services.ErrMissingFields):
		flash(c, session.FlashError, "Please fill in all fields")
		redirect(c, h.log, "/signup")
	case errors.Is(err, services.ErrDuplicateEmail):
		flash(c, session.FlashError, "Email already registered. Please sign in.")
		redirect(c, h.log, "/signin")
	default:
		serverError(c, h.log, "signup", err)
	}
}

func (h *AuthHandler) SignInPage(c *gin.Context) {
	render(c, h.log, http.StatusOK, "signin.html", gin.H{"Title": "Sign In"})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var form signInForm
	_ = c.ShouldBind(&form)

	user, err := h.userService.SignIn(form.Email, form.Password)
	switch {
	case err == nil:
		sess := session.Get(c)
		sess.SignIn(session.RoleCustomer, strconv.FormatUint(uint64(user.UserID), 10), user.Name, session.Now(c), h.sessionTTL)
		flash(c, session.FlashSuccess, fmt.Sprintf("Welcome back, %s!", user.Name))
		redirect(c, h.log, "/menu")
	case errors.Is(err, services.ErrMissingFields):
		flash(c, session.FlashError, "Please enter email and password")
		redirect(c, h.log, "/signin")
	case errors.Is(err, services.ErrInvalidCredentials):
		flash(c, session.FlashError, "Invalid email or password")
		redirect(c, h.log, "/signin")
	default:
		serverError(c, h.log, "signin", err)
	}
}

// SignOut ends every role on this browser, not just the customer.
func (h *AuthHandler) SignOut(c *gin.Context) {
	session.Get(c).Clear()
	flash(c, session.FlashInfo, "You have been signed out")
	redirect(c, h.log, "/")
}
