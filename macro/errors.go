// Copyright © 2025 The Whisker authors

package macro

import "errors"

// Sentinel errors returned by Context operations.  Callers match them with
// errors.Is; the wrapped message carries the offending macro name and the
// configured limit.
var (
	// ErrDepthExceeded is returned by Push when the call stack is at its
	// configured maximum depth.
	ErrDepthExceeded = errors.New("macro call stack depth exhausted")

	// ErrNoRegistry is returned by Call when the context has no registry
	// attached.
	ErrNoRegistry = errors.New("no macro registry attached to context")

	// ErrUnknownMacro is returned by Call for a name the registry does
	// not contain.
	ErrUnknownMacro = errors.New("unknown macro")

	// ErrMissingArgument is returned by macro handlers given fewer
	// arguments than they require.
	ErrMissingArgument = errors.New("missing required argument")
)
