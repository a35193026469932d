package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tastycorner/internal/config"
	"tastycorner/internal/database"
	"tastycorner/internal/migrations"
	"tastycorner/internal/models"
	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize("sqlite:///"+filepath.Join(t.TempDir(), "web.db"), "silent")
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrations(db))
	require.NoError(t, migrations.SeedDefaults(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.Config{
		SecretKey:         "test-secret",
		SessionBackend:    config.SessionBackendCookie,
		SessionTTL:        time.Hour,
		AdminSessionTTL:   time.Hour,
		TaxRate:           0.0945,
		DeliveryFee:       5.99,
		AdminEmail:        "admin@tastycorner.com",
		AdminPasswordHash: string(hash),
	}
	log := logger.NewWithOutput("test", "error", io.Discard)

	router, err := SetupRouter(cfg, db, session.NewCookieStore(cfg.SecretKey, cfg.SessionTTL), log)
	require.NoError(t, err)
	return router, db
}

// browser replays the session cookie across requests.
type browser struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) signUpAndIn(email string) {
	b.t.Helper()
	w := b.post("/signup", url.Values{
		"email": {email}, "password": {"pw"}, "name": {"Ada"}, "phone": {"555"}, "address": {"1 Main St"},
	})
	require.Equal(b.t, http.StatusFound, w.Code)
	w = b.post("/signin", url.Values{"email": {email}, "password": {"pw"}})
	require.Equal(b.t, http.StatusFound, w.Code)
	require.Equal(b.t, "/menu", w.Header().Get("Location"))
}

func itemID(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	var item models.MenuItem
	require.NoError(t, db.Where("name = ?", name).First(&item).Error)
	return idString(item.ItemID)
}

func idString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestHealthAndRequestID(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestPublicPagesRender(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := &browser{t: t, router: router}

	w := b.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Classic Burger")

	w = b.get("/menu?search=pizza")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Margherita Pizza")
	assert.NotContains(t, w.Body.String(), "Chocolate Cake</h3>")

	for _, path := range []string{"/about", "/contact", "/signin", "/signup", "/admin/login", "/worker/login", "/driver/login"} {
		assert.Equal(t, http.StatusOK, b.get(path).Code, path)
	}
}

func TestSignUpSignInFlow(t *testing.T) {
	router, db := setupTestRouter(t)
	b := &browser{t: t, router: router}

	w := b.post("/signup", url.Values{"email": {"ada@example.com"}})
	assert.Equal(t, "/signup", w.Header().Get("Location"))
	assert.Contains(t, b.get("/signup").Body.String(), "Please fill in all fields")

	b.signUpAndIn("ada@example.com")
	assert.Contains(t, b.get("/menu").Body.String(), "Welcome back, Ada!")

	other := &browser{t: t, router: router}
	w = other.post("/signup", url.Values{
		"email": {"ada@example.com"}, "password": {"x"}, "name": {"B"}, "phone": {"1"}, "address": {"2"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, other.get("/signin").Body.String(), "Email already registered. Please sign in.")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w = other.post("/signin", url.Values{"email": {"ada@example.com"}, "password": {"wrong"}})
	assert.Equal(t, "/signin", w.Header().Get("Location"))
	assert.Contains(t, other.get("/signin").Body.String(), "Invalid email or password")
	assert.Equal(t, "/signin", other.get("/cart").Header().Get("Location"))
}

func TestCustomerRoutesRequireSignIn(t *testing.T) {
	router, _ := setupTestRouter(t)
	b := &browser{t: t, router: router}

	for _, path := range []string{"/cart", "/checkout", "/orders", "/wishlist", "/order_confirmation/1"} {
		w := b.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/signin", w.Header().Get("Location"), path)
	}
	assert.Contains(t, b.get("/signin").Body.String(), "Please sign in")
}

func TestCartCheckoutFlow(t *testing.T) {
	router, db := setupTestRouter(t)
	b := &browser{t: t, router: router}
	b.signUpAndIn("ada@example.com")

	w := b.get("/checkout")
	assert.Equal(t, "/menu", w.Header().Get("Location"))
	assert.Contains(t, b.get("/menu").Body.String(), "Your cart is empty")

	burger := itemID(t, db, "Classic Burger")
	b.post("/cart", url.Values{"item_id": {burger}, "quantity": {"1"}})
	b.post("/cart", url.Values{"item_id": {burger}, "quantity": {"2"}, "allergies": {"no onions"}})
	w = b.post("/cart", url.Values{"item_id": {"9999"}})
	assert.Equal(t, "/menu", w.Header().Get("Location"))
	assert.Contains(t, b.get("/menu").Body.String(), "Item not found")

	cart := b.get("/cart").Body.String()
	assert.Equal(t, 1, strings.Count(cart, `action="/update_cart_quantity"`))
	assert.Contains(t, cart, "no onions")
	assert.Contains(t, cart, "$38.97")

	checkout := b.get("/checkout")
	assert.Equal(t, http.StatusOK, checkout.Code)
	assert.Contains(t, checkout.Body.String(), "$5.99")

	w = b.post("/checkout", url.Values{})
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/order_confirmation/"), location)

	confirmation := b.get(location).Body.String()
	assert.Contains(t, confirmation, "placed successfully!")

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	assert.InDelta(t, 38.97, order.Subtotal, 1e-9)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)

	assert.Contains(t, b.get("/cart").Body.String(), "Your cart is empty")
	assert.Contains(t, b.get("/orders").Body.String(), "Classic Burger")

	stranger := &browser{t: t, router: router}
	stranger.signUpAndIn("eve@example.com")
	assert.Equal(t, "/menu", stranger.get(location).Header().Get("Location"))
}

func TestCheckoutWithInvalidCoupon(t *testing.T) {
	router, db := setupTestRouter(t)
	b := &browser{t: t, router: router}
	b.signUpAndIn("ada@example.com")
	b.post("/cart", url.Values{"item_id": {itemID(t, db, "Lemonade")}})

	w := b.post("/checkout", url.Values{"coupon_code": {"NOPE"}})
	assert.Equal(t, "/checkout", w.Header().Get("Location"))
	assert.Contains(t, b.get("/checkout").Body.String(), "Coupon code not found")

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWishlistFlow(t *testing.T) {
	router, db := setupTestRouter(t)
	b := &browser{t: t, router: router}
	b.signUpAndIn("ada@example.com")
	cake := itemID(t, db, "Chocolate Cake")

	b.post("/wishlist", url.Values{"item_id": {cake}})
	assert.Contains(t, b.get("/menu").Body.String(), "Added to favorites")
	b.post("/wishlist", url.Values{"item_id": {cake}})
	assert.Contains(t, b.get("/menu").Body.String(), "Already in favorites")
	assert.Contains(t, b.get("/wishlist").Body.String(), "Chocolate Cake")

	b.get("/remove_from_wishlist/" + cake)
	assert.Contains(t, b.get("/wishlist").Body.String(), "No favorites yet")
}

func TestAdminAndDriverFlow(t *testing.T) {
	router, db := setupTestRouter(t)

	customer := &browser{t: t, router: router}
	customer.signUpAndIn("ada@example.com")
	customer.post("/cart", url.Values{"item_id": {itemID(t, db, "Chicken Wings")}})
	customer.post("/checkout", url.Values{})
	var order models.Order
	require.NoError(t, db.First(&order).Error)
	orderPath := "/admin/orders/" + idString(order.OrderID) + "/status"

	admin := &browser{t: t, router: router}
	assert.Equal(t, "/admin/login", admin.get("/admin/").Header().Get("Location"))
	admin.post("/admin/login", url.Values{"email": {"admin@tastycorner.com"}, "password": {"nope"}})
	assert.Contains(t, admin.get("/admin/login").Body.String(), "Invalid credentials")

	w := admin.post("/admin/login", url.Values{"email": {"admin@tastycorner.com"}, "password": {"admin123"}})
	assert.Equal(t, "/admin/", w.Header().Get("Location"))
	dash := admin.get("/admin/")
	assert.Equal(t, http.StatusOK, dash.Code)
	assert.Contains(t, dash.Body.String(), "Welcome back, Admin!")

	w = admin.post("/admin/employees/add", url.Values{
		"employee_id": {"D1"}, "first_name": {"Dee"}, "last_name": {"Ray"}, "email": {"dee@tc.com"}, "job_title": {"Driver"},
	})
	assert.Equal(t, "/admin/?section=employees", w.Header().Get("Location"))
	admin.post("/admin/employees/add", url.Values{
		"employee_id": {"D1"}, "first_name": {"X"}, "last_name": {"Y"}, "email": {"x@tc.com"},
	})
	assert.Contains(t, admin.get("/admin/?section=employees").Body.String(), "Employee ID or email already exists")

	admin.post(orderPath, url.Values{"status": {"completed"}})
	assert.Contains(t, admin.get("/admin/?section=orders").Body.String(), "cannot move to completed")

	driver := &browser{t: t, router: router}
	api := driver.get("/driver/api/deliveries/pending")
	assert.Equal(t, http.StatusUnauthorized, api.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, api.Body.String())

	driver.post("/driver/login", url.Values{"employee_id": {"nobody"}})
	assert.Contains(t, driver.get("/driver/login").Body.String(), "Invalid ID or not a driver")
	w = driver.post("/driver/login", url.Values{"employee_id": {"D1"}})
	assert.Equal(t, "/driver/dashboard", w.Header().Get("Location"))

	var stops struct {
		Stops []map[string]interface{} `json:"stops"`
	}
	require.NoError(t, json.Unmarshal(driver.get("/driver/api/deliveries/pending").Body.Bytes(), &stops))
	assert.Empty(t, stops.Stops)

	admin.post(orderPath, url.Values{"status": {"preparing"}})
	admin.post(orderPath, url.Values{"status": {"out_for_delivery"}})

	require.NoError(t, json.Unmarshal(driver.get("/driver/api/deliveries/pending").Body.Bytes(), &stops))
	require.Len(t, stops.Stops, 1)
	assert.Equal(t, "Ada", stops.Stops[0]["name"])
	assert.Contains(t, driver.get("/driver/dashboard").Body.String(), "1 Main St")

	driver.post("/driver/orders/"+idString(order.OrderID)+"/delivered", url.Values{})
	require.NoError(t, db.First(&order, order.OrderID).Error)
	assert.Equal(t, string(models.OrderCompleted), order.Status)

	admin.get("/admin/logout")
	assert.Equal(t, "/admin/login", admin.get("/admin/").Header().Get("Location"))
}

func TestWorkerAttendanceFlow(t *testing.T) {
	router, db := setupTestRouter(t)
	require.NoError(t, db.Create(&models.Employee{
		EmployeeID: "W1", FirstName: "Pat", LastName: "Doe", Email: "pat@tc.com", JobTitle: "Cook",
	}).Error)
	require.NoError(t, db.Create(&models.Employee{
		EmployeeID: "W2", FirstName: "Old", LastName: "Hand", Email: "old@tc.com", Status: models.EmployeeInactive,
	}).Error)

	b := &browser{t: t, router: router}
	assert.Equal(t, "/worker/login", b.get("/worker/dashboard").Header().Get("Location"))

	b.post("/worker/login", url.Values{"employee_id": {"W2"}})
	assert.Contains(t, b.get("/worker/login").Body.String(), "Invalid ID or inactive account")

	w := b.post("/worker/login", url.Values{"employee_id": {"W1"}})
	assert.Equal(t, "/worker/dashboard", w.Header().Get("Location"))

	b.post("/worker/checkout", url.Values{})
	assert.Contains(t, b.get("/worker/dashboard").Body.String(), "Not checked in")

	b.post("/worker/checkin", url.Values{})
	assert.Contains(t, b.get("/worker/dashboard").Body.String(), "Checked in!")
	b.post("/worker/checkin", url.Values{})
	assert.Contains(t, b.get("/worker/dashboard").Body.String(), "Already checked in")

	var rows int64
	require.NoError(t, db.Model(&models.Attendance{}).Where("employee_id = ?", "W1").Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	b.post("/worker/checkout", url.Values{})
	assert.Contains(t, b.get("/worker/dashboard").Body.String(), "Checked out. Hours: 0.00")
}
