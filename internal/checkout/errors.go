package checkout

import "errors"

var (
	ErrEmptySelection = errors.New("no cart lines selected")
	ErrOrderPending   = errors.New("an order is awaiting payment, pay or cancel it first")
	ErrNoPendingOrder = errors.New("no order is awaiting payment")
)
