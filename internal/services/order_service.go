package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tastycorner/internal/models"
	"tastycorner/internal/repository"
	"tastycorner/internal/session"
)

// Pricing holds the checkout constants.
type Pricing struct {
	TaxRate     float64
	DeliveryFee float64
}

type Totals struct {
	Subtotal    float64
	Tax         float64
	DeliveryFee float64
	Tip         float64
	Discount    float64
	Total       float64
	CouponCode  string
}

// ComputeTotals prices a cart. Tax applies to the subtotal before discount.
func ComputeTotals(lines []session.Line, pricing Pricing, discount float64) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Total()
	}
	t := Totals{
		Subtotal:    subtotal,
		Tax:         subtotal * pricing.TaxRate,
		DeliveryFee: pricing.DeliveryFee,
		Discount:    discount,
	}
	t.Total = t.Subtotal + t.Tax + t.DeliveryFee + t.Tip - t.Discount
	return t
}

// CouponDiscount checks a coupon against a subtotal on the given day
// (YYYY-MM-DD) and returns the amount it takes off.
func CouponDiscount(coupon *models.Coupon, subtotal float64, today string) (float64, error) {
	if !coupon.IsActive {
		return 0, &CouponError{Reason: "This coupon is no longer active"}
	}
	if coupon.ExpiryDate != nil && *coupon.ExpiryDate != "" && *coupon.ExpiryDate < today {
		return 0, &CouponError{Reason: "This coupon has expired"}
	}
	if subtotal < coupon.MinOrder {
		return 0, &CouponError{Reason: fmt.Sprintf("Minimum order of $%.2f required for this coupon", coupon.MinOrder)}
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return 0, &CouponError{Reason: "This coupon has reached its usage limit"}
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = subtotal * coupon.DiscountValue / 100
	case models.DiscountFixed:
		discount = coupon.DiscountValue
	default:
		return 0, &CouponError{Reason: "This coupon cannot be applied"}
	}
	if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
		discount = *coupon.MaxDiscount
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount, nil
}

type OrderService interface {
	Quote(lines []session.Line, couponCode string) (*Totals, error)
	Checkout(userID uint, lines []session.Line, couponCode string) (*models.Order, error)
	GetOrderForUser(orderID, userID uint) (*models.Order, error)
	GetOrdersByUser(userID uint) ([]models.Order, error)
}

type orderService struct {
	orderRepo  repository.OrderRepository
	couponRepo repository.CouponRepository
	pricing    Pricing
	now        func() time.Time
}

func NewOrderService(orderRepo repository.OrderRepository, couponRepo repository.CouponRepository, pricing Pricing) OrderService {
	return &orderService{orderRepo: orderRepo, couponRepo: couponRepo, pricing: pricing, now: time.Now}
}

func (s *orderService) resolveCoupon(code string, subtotal float64) (*models.Coupon, float64, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, 0, nil
	}
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, &CouponError{Reason: "Coupon code not found"}
		}
		return nil, 0, fmt.Errorf("failed to load coupon: %w", err)
	}
	discount, err := CouponDiscount(coupon, subtotal, s.now().Format(models.DateLayout))
	if err != nil {
		return nil, 0, err
	}
	return coupon, discount, nil
}

func (s *orderService) Quote(lines []session.Line, couponCode string) (*Totals, error) {
	totals, _, err := s.quote(lines, couponCode)
	return totals, err
}

func (s *orderService) quote(lines []session.Line, couponCode string) (*Totals, *models.Coupon, error) {
	totals := ComputeTotals(lines, s.pricing, 0)
	coupon, discount, err := s.resolveCoupon(couponCode, totals.Subtotal)
	if err != nil {
		return nil, nil, err
	}
	if coupon != nil {
		totals = ComputeTotals(lines, s.pricing, discount)
		totals.CouponCode = coupon.Code
	}
	return &totals, coupon, nil
}

// Checkout turns the cart into an order. Nothing is written when it fails.
func (s *orderService) Checkout(userID uint, lines []session.Line, couponCode string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	totals, coupon, err := s.quote(lines, couponCode)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:      &userID,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		DeliveryFee: totals.DeliveryFee,
		Tip:         totals.Tip,
		Total:       totals.Total,
		Status:      string(models.OrderPending),
		Discount:    totals.Discount,
	}
	for _, line := range lines {
		itemID := line.ItemID
		order.Items = append(order.Items, models.OrderItem{
			ItemID:    &itemID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Allergies: line.Allergies,
		})
	}

	var couponID *uint
	if coupon != nil {
		order.CouponCode = &coupon.Code
		couponID = &coupon.ID
	}

	if err := s.orderRepo.Place(order, couponID); err != nil {
		if errors.Is(err, repository.ErrCouponExhausted) {
			return nil, &CouponError{Reason: "This coupon has reached its usage limit"}
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrdersByUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}
