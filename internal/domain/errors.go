package domain

import "github.com/pkg/errors"

var (
	// ErrInsufficientBalance free quote balance is below the minimum trade value.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrEmptyFillSet the venue returned an order without fills.
	ErrEmptyFillSet = errors.New("empty fill set")
	// ErrAssetNotFound the account holds no balance record for the asset.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrPriceUnavailable the venue returned no usable price.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrOrderRejected the venue refused the order.
	ErrOrderRejected = errors.New("order rejected")
	// ErrZeroCostBasis profit cannot be computed against a zero cost basis.
	ErrZeroCostBasis = errors.New("zero cost basis")
	// ErrCycleInProgress a signal arrived while a trade cycle is already open.
	ErrCycleInProgress = errors.New("trade cycle already in progress")
)
