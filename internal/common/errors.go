// Package common defines shared sentinel errors used across coffeechat
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input validation errors, rejected before any computation or dispatch.
	ErrInvalidInput = errors.New("invalid input")

	// Orchestration errors.
	ErrBusy         = errors.New("operation already in flight")
	ErrNotConnected = errors.New("calendar not connected")

	// Secret store errors.
	ErrSecretNotFound = errors.New("secret not found")

	// Snapshot store errors.
	ErrNotFound = errors.New("not found")
)
