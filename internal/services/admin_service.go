package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tastycorner/internal/models"
	"tastycorner/internal/repository"
)

const (
	topItemsLimit     = 7
	recentOrdersLimit = 12
	topCustomersLimit = 5
)

type Dashboard struct {
	Overview         *repository.OverviewStats
	DailyRevenue     []repository.ChartPoint
	WeeklyRevenue    []repository.ChartPoint
	MonthlyRevenue   []repository.ChartPoint
	TopItems         []repository.ChartPoint
	OrdersByStatus   []repository.ChartPoint
	CategoryQuantity []repository.ChartPoint
	TopCustomers     []repository.ChartPoint
	RecentOrders     []repository.RecentOrder
	Employees        []models.Employee
	MenuItems        []models.MenuItem
	Categories       []string
	Coupons          []models.Coupon
}

type EmployeeInput struct {
	EmployeeID string
	FirstName  string
	LastName   string
	Email      string
	JobTitle   string
	Mobile     string
	HourlyRate *float64
}

type MenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
}

type CouponInput struct {
	Code          string
	DiscountType  string
	DiscountValue float64
	MinOrder      float64
	MaxDiscount   *float64
	UsageLimit    *int
	ExpiryDate    string
}

// AdminCredentials identify the single administrator account.
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

type AdminService interface {
	Authenticate(email, password string) error
	Dashboard() (*Dashboard, error)
	AddEmployee(input EmployeeInput) (*models.Employee, error)
	AddMenuItem(input MenuItemInput) (*models.MenuItem, error)
	AddCoupon(input CouponInput) (*models.Coupon, error)
	UpdateOrderStatus(orderID uint, to models.OrderStatus) error
	MarkPaid(employeeID string) error
}

type adminService struct {
	creds        AdminCredentials
	statsRepo    repository.StatsRepository
	employeeRepo repository.EmployeeRepository
	menuRepo     repository.MenuRepository
	couponRepo   repository.CouponRepository
	orderRepo    repository.OrderRepository
	now          func() time.Time
}

func NewAdminService(
	creds AdminCredentials,
	statsRepo repository.StatsRepository,
	employeeRepo repository.EmployeeRepository,
	menuRepo repository.MenuRepository,
	couponRepo repository.CouponRepository,
	orderRepo repository.OrderRepository,
) AdminService {
	return &adminService{
		creds:        creds,
		statsRepo:    statsRepo,
		employeeRepo: employeeRepo,
		menuRepo:     menuRepo,
		couponRepo:   couponRepo,
		orderRepo:    orderRepo,
		now:          time.Now,
	}
}

func (s *adminService) Authenticate(email, password string) error {
	if !strings.EqualFold(strings.TrimSpace(email), s.creds.Email) {
		return ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *adminService) Dashboard() (*Dashboard, error) {
	d := &Dashboard{}
	var err error

	if d.Overview, err = s.statsRepo.Overview(); err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}
	if d.DailyRevenue, err = s.statsRepo.DailyRevenue(); err != nil {
		return nil, fmt.Errorf("failed to load daily revenue: %w", err)
	}
	d.WeeklyRevenue = rollUp(d.DailyRevenue, isoWeekLabel)
	d.MonthlyRevenue = rollUp(d.DailyRevenue, monthLabel)

	if d.TopItems, err = s.statsRepo.TopItems(topItemsLimit); err != nil {
		return nil, fmt.Errorf("failed to load top items: %w", err)
	}
	if d.RecentOrders, err = s.statsRepo.RecentOrders(recentOrdersLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	if d.OrdersByStatus, err = s.statsRepo.OrdersByStatus(); err != nil {
		return nil, fmt.Errorf("failed to load status breakdown: %w", err)
	}
	if d.CategoryQuantity, err = s.statsRepo.QuantityByCategory(); err != nil {
		return nil, fmt.Errorf("failed to load category breakdown: %w", err)
	}
	if d.TopCustomers, err = s.statsRepo.TopCustomers(topCustomersLimit); err != nil {
		return nil, fmt.Errorf("failed to load top customers: %w", err)
	}
	if d.Employees, err = s.employeeRepo.GetAll(); err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	if d.MenuItems, err = s.menuRepo.GetAll(); err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	if d.Categories, err = s.menuRepo.AllCategories(); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if d.Coupons, err = s.couponRepo.GetAll(); err != nil {
		return nil, fmt.Errorf("failed to load coupons: %w", err)
	}
	return d, nil
}

// rollUp merges consecutive daily points that share a bucket label.
// Days that do not parse are skipped.
func rollUp(daily []repository.ChartPoint, bucket func(time.Time) string) []repository.ChartPoint {
	var out []repository.ChartPoint
	for _, p := range daily {
		day, err := time.Parse(models.DateLayout, p.Label)
		if err != nil {
			continue
		}
		label := bucket(day)
		if n := len(out); n > 0 && out[n-1].Label == label {
			out[n-1].Value += p.Value
			continue
		}
		out = append(out, repository.ChartPoint{Label: label, Value: p.Value})
	}
	return out
}

func isoWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func monthLabel(t time.Time) string {
	return t.Format("2006-01")
}

func (s *adminService) AddEmployee(input EmployeeInput) (*models.Employee, error) {
	employee := &models.Employee{
		EmployeeID: strings.TrimSpace(input.EmployeeID),
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.TrimSpace(input.Email),
		JobTitle:   strings.TrimSpace(input.JobTitle),
		Mobile:     strings.TrimSpace(input.Mobile),
		HourlyRate: input.HourlyRate,
		Status:     models.EmployeeActive,
		Schedule:   models.DefaultSchedule().JSON(),
	}
	if employee.FirstName == "" || employee.LastName == "" || employee.Email == "" {
		return nil, ErrMissingFields
	}
	if employee.EmployeeID == "" {
		employee.EmployeeID = strconv.FormatInt(s.now().Unix(), 10)
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmployee
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

func (s *adminService) AddMenuItem(input MenuItemInput) (*models.MenuItem, error) {
	item := &models.MenuItem{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		Image:       strings.TrimSpace(input.Image),
		IsActive:    true,
	}
	if item.Name == "" || item.Category == "" {
		return nil, ErrMissingFields
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if err := s.menuRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

func (s *adminService) AddCoupon(input CouponInput) (*models.Coupon, error) {
	coupon := &models.Coupon{
		Code:          strings.ToUpper(strings.TrimSpace(input.Code)),
		DiscountType:  strings.ToLower(strings.TrimSpace(input.DiscountType)),
		DiscountValue: input.DiscountValue,
		MinOrder:      input.MinOrder,
		MaxDiscount:   input.MaxDiscount,
		UsageLimit:    input.UsageLimit,
		IsActive:      true,
	}
	if coupon.Code == "" {
		return nil, ErrMissingFields
	}
	if coupon.DiscountType != models.DiscountPercentage && coupon.DiscountType != models.DiscountFixed {
		return nil, fmt.Errorf("%w: discount type must be percentage or fixed", ErrInvalidInput)
	}
	if coupon.DiscountValue <= 0 {
		return nil, fmt.Errorf("%w: discount value must be positive", ErrInvalidInput)
	}
	if coupon.DiscountType == models.DiscountPercentage && coupon.DiscountValue > 100 {
		return nil, fmt.Errorf("%w: percentage cannot exceed 100", ErrInvalidInput)
	}
	if expiry := strings.TrimSpace(input.ExpiryDate); expiry != "" {
		if _, err := time.Parse(models.DateLayout, expiry); err != nil {
			return nil, fmt.Errorf("%w: expiry date must be YYYY-MM-DD", ErrInvalidInput)
		}
		coupon.ExpiryDate = &expiry
	}

	if err := s.couponRepo.Create(coupon); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCoupon
		}
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (s *adminService) UpdateOrderStatus(orderID uint, to models.OrderStatus) error {
	return transitionOrder(s.orderRepo, orderID, nil, to)
}

// transitionOrder moves an order to status to. When from is set the order
// must currently be in that status.
func transitionOrder(orderRepo repository.OrderRepository, orderID uint, from *models.OrderStatus, to models.OrderStatus) error {
	order, err := orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to load order: %w", err)
	}
	current := models.OrderStatus(order.Status)
	if from != nil && current != *from {
		return ErrInvalidTransition
	}
	if !current.CanTransition(to) {
		return ErrInvalidTransition
	}
	if err := orderRepo.UpdateStatus(orderID, current, to); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidTransition
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (s *adminService) MarkPaid(employeeID string) error {
	if err := s.employeeRepo.MarkPaid(employeeID, s.now().Format(models.DateLayout)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to mark employee paid: %w", err)
	}
	return nil
}
