package finance

import "errors"

var (
	ErrOfferingNotFound = errors.New("offering not found")
	ErrExpenseNotFound  = errors.New("expense not found")
)
