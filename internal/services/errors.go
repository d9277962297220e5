// Package services defines the business logic for process chat rooms,
// executors, and process scaffolding. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Message-related errors.
var (
	// ErrMessageNotFound indicates that the requested chat message does not
	// exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrProcessNotFound indicates that the process scoping a chat room does
	// not exist.
	ErrProcessNotFound = errors.New("process not found")

	// ErrEmptyContent is returned when a message is sent or updated with an
	// empty body.
	ErrEmptyContent = errors.New("message content is empty")

	// ErrTooLong is returned when message content exceeds the configured
	// maximum length.
	ErrTooLong = errors.New("message content too long")

	// ErrInvalidBoundary is returned when a mark-read call carries a
	// non-positive message boundary.
	ErrInvalidBoundary = errors.New("read boundary must be a positive message id")

	// ErrDuplicateRecipient is returned when a (message, recipient) ledger
	// row already exists. The service dedupes its own fan-out, so this
	// signals a caller bug rather than a condition to paper over.
	ErrDuplicateRecipient = errors.New("recipient entry already exists")
)

// Executor-related errors.
var (
	// ErrExecutorNotFound indicates that the requested executor does not exist.
	ErrExecutorNotFound = errors.New("executor not found")

	// ErrInvalidKind is returned when an executor is registered with a kind
	// other than "actor" or "group".
	ErrInvalidKind = errors.New("executor kind must be actor or group")

	// ErrNameRequired is returned when an executor is registered without a name.
	ErrNameRequired = errors.New("executor name is required")

	// ErrNameTaken is returned when an executor name is already registered.
	ErrNameTaken = errors.New("executor name already taken")
)

// Process-related errors.
var (
	// ErrDeploymentNotFound indicates that a process was started from an
	// unknown deployment.
	ErrDeploymentNotFound = errors.New("deployment not found")

	// ErrDeploymentNameRequired is returned when a deployment is created
	// without a name; the name doubles as the chat room display name.
	ErrDeploymentNameRequired = errors.New("deployment name is required")
)
