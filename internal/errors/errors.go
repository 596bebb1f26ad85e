package gerr

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrDataUnavailable    = errors.New("data unavailable")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNotAuthorized      = errors.New("not authorized")

	MailApiLimitReached = errors.New("mail api limit reached")
)
