// Package screens holds what the terminal UI screens share.
package screens

import (
	"context"

	"github.com/novapath/trident/internal/guidance"
	"github.com/novapath/trident/internal/screen"
	"github.com/novapath/trident/internal/session"
)

// Env carries the services every screen reaches into.
type Env struct {
	// Ctx bounds store and model calls made from screens.
	Ctx      context.Context
	Sessions *session.Service
	Guidance *guidance.Service
	// TopN is the number of leading traits highlighted per section.
	TopN int

	// Identify builds the identification screen.
	Identify func() screen.Screen
	// Open builds the screen for sess: the questions while it is running
	// and the summary once it is complete.
	Open func(sess *session.Session) screen.Screen
}

// Context returns Ctx, or context.Background when unset.
func (e Env) Context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}
