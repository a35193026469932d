package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
)

// render persists the session and writes an HTML page. Every page gets the
// pending flashes and the signed-in customer, if any.
func render(c *gin.Context, log *logger.Logger, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	sess := session.Get(c)
	data["Flashes"] = sess.TakeFlashes()
	data["CartCount"] = sess.Cart.Count()
	if g, ok := session.Current(c, session.RoleCustomer); ok {
		data["UserName"] = g.Name
	}
	saveSession(c, log)
	c.HTML(status, name, data)
}

// redirect persists the session and sends a 302 to location.
func redirect(c *gin.Context, log *logger.Logger, location string) {
	saveSession(c, log)
	c.Redirect(http.StatusFound, location)
}

func saveSession(c *gin.Context, log *logger.Logger) {
	if err := session.Save(c); err != nil {
		log.Error(requestID(c), "session_save", "Failed to save session", err)
	}
}

func flash(c *gin.Context, category, message string) {
	session.AddFlash(c, category, message)
}

func serverError(c *gin.Context, log *logger.Logger, action string, err error) {
	log.Error(requestID(c), action, "Request failed", err)
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func parseUint(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// customerID returns the signed-in customer's user id.
func customerID(c *gin.Context) (uint, bool) {
	g, ok := session.Current(c, session.RoleCustomer)
	if !ok {
		return 0, false
	}
	return parseUint(g.Subject)
}
