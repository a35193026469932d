package services

import "errors"

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrItemNotFound      = errors.New("item not found")
	ErrAlreadyWishlisted = errors.New("item already in wishlist")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrCouponInvalid     = errors.New("coupon invalid")
	ErrDuplicateCoupon   = errors.New("coupon code already exists")

	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeInactive  = errors.New("employee inactive")
	ErrNotADriver        = errors.New("employee is not a driver")
	ErrDuplicateEmployee = errors.New("employee id or email already exists")
	ErrAlreadyCheckedIn  = errors.New("already checked in")
	ErrNotCheckedIn      = errors.New("not checked in")
	ErrAlreadyCheckedOut = errors.New("already checked out")
)

// CouponError explains why a coupon was refused. It matches ErrCouponInvalid.
type CouponError struct {
	Reason string
}

func (e *CouponError) Error() string {
	return e.Reason
}

func (e *CouponError) Is(target error) bool {
	return target == ErrCouponInvalid
}
