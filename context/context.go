// Package context is a set of shorter names for the very stuttery context library.
package context

import (
	"context"
)

type (
	// T is a context.Context.
	T = context.Context
	// F is a context.CancelFunc.
	F = context.CancelFunc
)

var (
	// Bg is context.Background.
	Bg = context.Background
	// Cancel is context.WithCancel.
	Cancel = context.WithCancel
	// Timeout is context.WithTimeout.
	Timeout = context.WithTimeout
	// Canceled is the error returned by a context that was cancelled.
	Canceled = context.Canceled
)
