package client

import (
	"errors"

	apierrors "github.com/capydiary/capydiary/client/internal/errors"
	"github.com/capydiary/capydiary/client/internal/kvstore"
	"github.com/capydiary/capydiary/client/internal/prefs"
	"github.com/capydiary/capydiary/client/internal/shardqueue"
	"github.com/capydiary/capydiary/client/internal/types"
)

// APIError is a non-2xx backend reply. Error() is the backend's message.
type APIError = apierrors.APIError

// NetworkError is a request that never got a reply.
type NetworkError = apierrors.NetworkError

// Validation errors returned before any request is sent.
var (
	ErrInvalidRange        = types.ErrInvalidRange
	ErrInvalidID           = types.ErrInvalidID
	ErrEmptyContent        = types.ErrEmptyContent
	ErrUnsupportedLanguage = prefs.ErrUnsupportedLanguage
	ErrStoreClosed         = kvstore.ErrClosed
)

// ErrBackPressure is returned when the warm-up queue is full.
var ErrBackPressure = shardqueue.ErrQueueFull

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int { return apierrors.StatusCode(err) }

// IsIrrecoverable reports whether retrying err is pointless (most 4xx).
func IsIrrecoverable(err error) bool { return apierrors.IsIrrecoverable(err) }

// IsUnauthorized reports a 401, i.e. a missing or expired token.
func IsUnauthorized(err error) bool { return StatusCode(err) == 401 }
