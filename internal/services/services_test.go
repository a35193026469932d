package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tastycorner/internal/database"
	"tastycorner/internal/migrations"
	"tastycorner/internal/models"
	"tastycorner/internal/repository"
	"tastycorner/internal/session"
)

type testEnv struct {
	db         *gorm.DB
	users      repository.UserRepository
	employees  repository.EmployeeRepository
	menu       repository.MenuRepository
	wishlist   repository.WishlistRepository
	coupons    repository.CouponRepository
	orders     repository.OrderRepository
	attendance repository.AttendanceRepository
	stats      repository.StatsRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Initialize("sqlite:///"+filepath.Join(t.TempDir(), "svc.db"), "silent")
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrations(db))
	require.NoError(t, migrations.SeedDefaults(db))
	return &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		employees:  repository.NewEmployeeRepository(db),
		menu:       repository.NewMenuRepository(db),
		wishlist:   repository.NewWishlistRepository(db),
		coupons:    repository.NewCouponRepository(db),
		orders:     repository.NewOrderRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		stats:      repository.NewStatsRepository(db),
	}
}

func (e *testEnv) itemByName(t *testing.T, name string) models.MenuItem {
	t.Helper()
	var item models.MenuItem
	require.NoError(t, e.db.Where("name = ?", name).First(&item).Error)
	return item
}

func (e *testEnv) customer(t *testing.T) *models.User {
	t.Helper()
	user, err := NewUserService(e.users).SignUp(SignUpInput{
		Email: "ada@example.com", Password: "pw", Name: "Ada", Phone: "555-0100", Address: "1 Main St",
	})
	require.NoError(t, err)
	return user
}

var testPricing = Pricing{TaxRate: 0.0945, DeliveryFee: 5.99}

func TestSignUpAndSignIn(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)

	_, err := svc.SignUp(SignUpInput{Email: "ada@example.com", Password: "pw", Name: "Ada"})
	assert.ErrorIs(t, err, ErrMissingFields)

	user := env.customer(t)
	assert.NotEqual(t, "pw", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")))

	_, err = svc.SignUp(SignUpInput{Email: "ADA@example.com", Password: "x", Name: "B", Phone: "1", Address: "2"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	count, err := env.users.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	signedIn, err := svc.SignIn("ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, signedIn.UserID)

	_, err = svc.SignIn("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn("nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn("", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestFeaturedKeepsListOrder(t *testing.T) {
	env := newTestEnv(t)
	featured, err := NewMenuService(env.menu, env.wishlist).Featured()
	require.NoError(t, err)

	var names []string
	for _, item := range featured {
		names = append(names, item.Name)
	}
	assert.Equal(t, FeaturedItemNames, names)
}

func TestBrowseGroupsAndWishlist(t *testing.T) {
	env := newTestEnv(t)
	user := env.customer(t)
	pizza := env.itemByName(t, "Margherita Pizza")
	require.NoError(t, NewWishlistService(env.wishlist, env.menu).Add(user.UserID, pizza.ItemID))

	svc := NewMenuService(env.menu, env.wishlist)
	page, err := svc.Browse("PIZZA", "", &user.UserID)
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "Pizza", page.Groups[0].Category)
	assert.Len(t, page.Groups[0].Items, 2)
	assert.True(t, page.Wishlisted[pizza.ItemID])
	assert.Contains(t, page.Categories, "Desserts")

	page, err = svc.Browse("", "", nil)
	require.NoError(t, err)
	var categories []string
	for _, g := range page.Groups {
		categories = append(categories, g.Category)
	}
	assert.Equal(t, []string{"Burgers", "Desserts", "Drinks", "Pizza", "Starters"}, categories)

	page, err = svc.Browse("no such dish", "", nil)
	require.NoError(t, err)
	assert.Empty(t, page.Groups)
}

func TestWishlistDuplicate(t *testing.T) {
	env := newTestEnv(t)
	user := env.customer(t)
	cake := env.itemByName(t, "Chocolate Cake")
	svc := NewWishlistService(env.wishlist, env.menu)

	require.NoError(t, svc.Add(user.UserID, cake.ItemID))
	assert.ErrorIs(t, svc.Add(user.UserID, cake.ItemID), ErrAlreadyWishlisted)
	assert.ErrorIs(t, svc.Add(user.UserID, 9999), ErrItemNotFound)

	items, err := svc.Items(user.UserID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.Remove(user.UserID, cake.ItemID))
	items, err = svc.Items(user.UserID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func cartWith(items ...models.MenuItem) []session.Line {
	var cart session.Cart
	for i, item := range items {
		cart.Add(item.ItemID, item.Name, item.Price, i+1, "")
	}
	return cart.Items()
}

func TestCheckoutWritesOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.customer(t)
	burger := env.itemByName(t, "Classic Burger")
	wings := env.itemByName(t, "Chicken Wings")
	svc := NewOrderService(env.orders, env.coupons, testPricing)

	lines := cartWith(burger, wings)
	order, err := svc.Checkout(user.UserID, lines, "")
	require.NoError(t, err)

	subtotal := 12.99 + 10.99*2
	assert.InDelta(t, subtotal, order.Subtotal, 1e-9)
	assert.InDelta(t, subtotal*0.0945, order.Tax, 1e-9)
	assert.Equal(t, 5.99, order.DeliveryFee)
	assert.Zero(t, order.Tip)
	assert.InDelta(t, order.Subtotal+order.Tax+order.DeliveryFee+order.Tip-order.Discount, order.Total, 1e-9)

	stored, err := svc.GetOrderForUser(order.OrderID, user.UserID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, string(models.OrderPending), stored.Status)

	_, err = svc.GetOrderForUser(order.OrderID, user.UserID+1)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.Checkout(user.UserID, nil, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutAppliesCoupon(t *testing.T) {
	env := newTestEnv(t)
	user := env.customer(t)
	burger := env.itemByName(t, "Classic Burger")
	limit := 1
	maxDiscount := 2.0
	require.NoError(t, env.coupons.Create(&models.Coupon{
		Code: "SAVE10", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		MaxDiscount: &maxDiscount, UsageLimit: &limit, IsActive: true,
	}))
	svc := NewOrderService(env.orders, env.coupons, testPricing)

	lines := cartWith(burger, burger)
	order, err := svc.Checkout(user.UserID, lines, "save10")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, order.Discount, 1e-9)
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "SAVE10", *order.CouponCode)
	assert.InDelta(t, order.Subtotal+order.Tax+order.DeliveryFee-order.Discount, order.Total, 1e-9)

	coupon, err := env.coupons.GetByCode("SAVE10")
	require.NoError(t, err)
	assert.Equal(t, 1, coupon.UsedCount)

	_, err = svc.Checkout(user.UserID, lines, "SAVE10")
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCheckoutRejectsExpiredCoupon(t *testing.T) {
	env := newTestEnv(t)
	user := env.customer(t)
	burger := env.itemByName(t, "Classic Burger")
	expiry := "2024-01-31"
	require.NoError(t, env.coupons.Create(&models.Coupon{
		Code: "OLD", DiscountType: models.DiscountFixed, DiscountValue: 5, ExpiryDate: &expiry, IsActive: true,
	}))
	svc := NewOrderService(env.orders, env.coupons, testPricing).(*orderService)
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.Local) }

	_, err := svc.Checkout(user.UserID, cartWith(burger), "OLD")
	require.ErrorIs(t, err, ErrCouponInvalid)
	assert.Equal(t, "This coupon has expired", err.Error())

	orders, err := svc.GetOrdersByUser(user.UserID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	coupon, err := env.coupons.GetByCode("OLD")
	require.NoError(t, err)
	assert.Zero(t, coupon.UsedCount)

	_, err = svc.Quote(cartWith(burger), "MISSING")
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCouponDiscount(t *testing.T) {
	maxDiscount := 3.0
	cases := []struct {
		name     string
		coupon   models.Coupon
		subtotal float64
		want     float64
		invalid  bool
	}{
		{"percentage", models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 20, IsActive: true}, 50, 10, false},
		{"capped", models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 20, MaxDiscount: &maxDiscount, IsActive: true}, 50, 3, false},
		{"fixed capped by subtotal", models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 15, IsActive: true}, 10, 10, false},
		{"below minimum", models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 5, MinOrder: 20, IsActive: true}, 10, 0, true},
		{"inactive", models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 5}, 10, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CouponDiscount(&tc.coupon, tc.subtotal, "2024-03-01")
			if tc.invalid {
				assert.ErrorIs(t, err, ErrCouponInvalid)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func newAdmin(t *testing.T, env *testEnv) AdminService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAdminService(AdminCredentials{Email: "admin@tastycorner.com", PasswordHash: string(hash)},
		env.stats, env.employees, env.menu, env.coupons, env.orders)
}

func TestAdminAuthenticate(t *testing.T) {
	admin := newAdmin(t, newTestEnv(t))
	assert.NoError(t, admin.Authenticate("admin@tastycorner.com", "admin123"))
	assert.ErrorIs(t, admin.Authenticate("admin@tastycorner.com", "nope"), ErrInvalidCredentials)
	assert.ErrorIs(t, admin.Authenticate("other@tastycorner.com", "admin123"), ErrInvalidCredentials)
}

func TestOrderStatusWorkflowAndDeliveries(t *testing.T) {
	env := newTestEnv(t)
	user := env.customer(t)
	admin := newAdmin(t, env)
	driver := NewDriverService(env.employees, env.orders)

	order, err := NewOrderService(env.orders, env.coupons, testPricing).
		Checkout(user.UserID, cartWith(env.itemByName(t, "Lemonade")), "")
	require.NoError(t, err)

	assert.ErrorIs(t, admin.UpdateOrderStatus(order.OrderID, models.OrderCompleted), ErrInvalidTransition)
	require.NoError(t, admin.UpdateOrderStatus(order.OrderID, models.OrderPreparing))

	stops, err := driver.PendingDeliveries()
	require.NoError(t, err)
	assert.Empty(t, stops)
	assert.ErrorIs(t, driver.MarkDelivered(order.OrderID), ErrInvalidTransition)

	require.NoError(t, admin.UpdateOrderStatus(order.OrderID, models.OrderOutForDelivery))
	stops, err = driver.PendingDeliveries()
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "Ada", stops[0].Name)
	assert.Equal(t, "1 Main St", stops[0].Address)

	require.NoError(t, driver.MarkDelivered(order.OrderID))
	assert.ErrorIs(t, admin.UpdateOrderStatus(order.OrderID, models.OrderCancelled), ErrInvalidTransition)
	assert.ErrorIs(t, admin.UpdateOrderStatus(9999, models.OrderPreparing), ErrOrderNotFound)
}

func TestAdminAddRecords(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdmin(t, env)

	emp, err := admin.AddEmployee(EmployeeInput{FirstName: "Sam", LastName: "Lee", Email: "sam@tc.com", JobTitle: "Driver"})
	require.NoError(t, err)
	assert.NotEmpty(t, emp.EmployeeID)
	assert.Equal(t, models.EmployeeActive, emp.Status)
	assert.Equal(t, models.DefaultSchedule(), emp.WeeklySchedule())

	_, err = admin.AddEmployee(EmployeeInput{EmployeeID: "E2", FirstName: "Kim", LastName: "Ng", Email: "sam@tc.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmployee)

	_, err = admin.AddMenuItem(MenuItemInput{Name: "Fries", Price: -1, Category: "Sides"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	item, err := admin.AddMenuItem(MenuItemInput{Name: "Fries", Price: 3.5, Category: "Sides"})
	require.NoError(t, err)
	assert.True(t, item.IsActive)

	_, err = admin.AddCoupon(CouponInput{Code: "x", DiscountType: "bogus", DiscountValue: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = admin.AddCoupon(CouponInput{Code: "welcome", DiscountType: "fixed", DiscountValue: 5, ExpiryDate: "2030-01-01"})
	require.NoError(t, err)
	_, err = admin.AddCoupon(CouponInput{Code: "WELCOME", DiscountType: "fixed", DiscountValue: 5})
	assert.ErrorIs(t, err, ErrDuplicateCoupon)

	dash, err := admin.Dashboard()
	require.NoError(t, err)
	assert.Len(t, dash.Employees, 1)
	assert.Len(t, dash.Coupons, 1)
	assert.Contains(t, dash.Categories, "Sides")
	assert.Zero(t, dash.Overview.TotalOrders)
}

func TestRollUpRevenue(t *testing.T) {
	daily := []repository.ChartPoint{
		{Label: "2024-02-28", Value: 10},
		{Label: "2024-02-29", Value: 5},
		{Label: "2024-03-04", Value: 7},
	}
	assert.Equal(t, []repository.ChartPoint{
		{Label: "2024-W09", Value: 15},
		{Label: "2024-W10", Value: 7},
	}, rollUp(daily, isoWeekLabel))
	assert.Equal(t, []repository.ChartPoint{
		{Label: "2024-02", Value: 15},
		{Label: "2024-03", Value: 7},
	}, rollUp(daily, monthLabel))
}

func TestAttendanceStateMachine(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.employees.Create(&models.Employee{
		EmployeeID: "W1", FirstName: "Pat", LastName: "Doe", Email: "pat@tc.com", JobTitle: "Cook",
	}))
	svc := NewAttendanceService(env.employees, env.attendance).(*attendanceService)
	clock := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return clock }

	_, err := svc.CheckOut("W1")
	assert.ErrorIs(t, err, ErrNotCheckedIn)

	first, err := svc.CheckIn("W1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", first.Date)

	clock = clock.Add(time.Hour)
	existing, err := svc.CheckIn("W1")
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.True(t, existing.CheckInTime.Equal(*first.CheckInTime))

	clock = time.Date(2024, 3, 4, 17, 30, 0, 0, time.Local)
	row, err := svc.CheckOut("W1")
	require.NoError(t, err)
	assert.InDelta(t, 8.5, row.HoursWorked, 1e-9)

	_, err = svc.CheckOut("W1")
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)

	status, err := svc.Status("W1")
	require.NoError(t, err)
	assert.True(t, status.Today.CheckedOut())
	assert.InDelta(t, 8.5, status.Employee.HoursThisPeriod, 1e-9)
	assert.Len(t, status.Recent, 1)

	admin := newAdmin(t, env)
	require.NoError(t, admin.MarkPaid("W1"))
	emp, err := env.employees.GetByEmployeeID("W1")
	require.NoError(t, err)
	assert.Zero(t, emp.HoursThisPeriod)
	require.NotNil(t, emp.LastPaidDate)
	assert.ErrorIs(t, admin.MarkPaid("nobody"), ErrEmployeeNotFound)
}

func TestWorkerAndDriverLogin(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.employees.Create(&models.Employee{
		EmployeeID: "D1", FirstName: "Dee", LastName: "R", Email: "d@tc.com", JobTitle: "Delivery Driver",
	}))
	require.NoError(t, env.employees.Create(&models.Employee{
		EmployeeID: "C1", FirstName: "Cy", LastName: "K", Email: "c@tc.com", JobTitle: "Cook", Status: models.EmployeeInactive,
	}))

	workers := NewAttendanceService(env.employees, env.attendance)
	_, err := workers.Login("C1")
	assert.ErrorIs(t, err, ErrEmployeeInactive)
	_, err = workers.Login("nope")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	_, err = workers.Login("D1")
	assert.NoError(t, err)

	drivers := NewDriverService(env.employees, env.orders)
	_, err = drivers.Login("C1")
	assert.ErrorIs(t, err, ErrNotADriver)
	emp, err := drivers.Login("D1")
	require.NoError(t, err)
	assert.Equal(t, "Dee R", emp.FullName())
}
