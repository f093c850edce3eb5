package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserDeclined is returned when the wallet refuses to sign a
	// transaction. This is a normal terminal outcome for an attempt, not a
	// system fault, and must never mutate the edition ledger.
	ErrUserDeclined = errors.New("user declined signature")

	// ErrEditionExists is returned when an edition already exists for a
	// moment, on-chain or in the ledger
	ErrEditionExists = errors.New("edition already exists")

	// ErrEditionNotFound is returned when no edition exists for a moment
	ErrEditionNotFound = errors.New("edition not found")

	// ErrMomentNotFound is returned when a moment is not found
	ErrMomentNotFound = errors.New("moment not found")

	// ErrEditionInactive is returned when minting against a closed or
	// not-yet-open mint window
	ErrEditionInactive = errors.New("edition not active")

	// ErrSupplyExhausted is returned when an edition's max supply is reached
	ErrSupplyExhausted = errors.New("edition supply exhausted")

	// ErrInsufficientPayment is returned when the payment value does not
	// cover price * quantity
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrInvalidDuration is returned when a mint window length is not one of
	// the allowed values
	ErrInvalidDuration = errors.New("invalid mint window duration")

	// ErrNotOwner is returned when a caller other than the moment owner
	// attempts to create an edition
	ErrNotOwner = errors.New("caller is not the moment owner")
)

// ChainRejectedError wraps a transaction revert with its specific reason.
// Chain rejections are surfaced to the caller and never retried automatically.
type ChainRejectedError struct {
	Reason error
	TxHash string
}

func (e *ChainRejectedError) Error() string {
	if e.TxHash != "" {
		return fmt.Sprintf("chain rejected transaction %s: %v", e.TxHash, e.Reason)
	}
	return fmt.Sprintf("chain rejected transaction: %v", e.Reason)
}

func (e *ChainRejectedError) Unwrap() error {
	return e.Reason
}

// IndeterminateError marks a transaction that was broadcast but whose
// confirmation is unknown within the watch deadline. The caller must re-check
// authoritative chain state via reconciliation before assuming either outcome.
type IndeterminateError struct {
	TxHash string
}

func (e *IndeterminateError) Error() string {
	return fmt.Sprintf("transaction %s broadcast but unconfirmed; outcome unknown", e.TxHash)
}
