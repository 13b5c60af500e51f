package billing

import "errors"

var (
	// ErrInvalidItem means the referenced id is not in the current catalog.
	ErrInvalidItem = errors.New("invalid item")

	// ErrEmptySelection means no item has quantity above zero.
	ErrEmptySelection = errors.New("empty selection")

	// ErrPrintDispatch means the print sink rejected or failed the
	// document. The cart is left untouched so the operator can retry.
	ErrPrintDispatch = errors.New("print dispatch failed")

	// ErrCommitInProgress means another commit holds the controller.
	ErrCommitInProgress = errors.New("commit already in progress")

	// ErrInvalidPaymentMode means the tender type is outside the
	// accepted set.
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
)
