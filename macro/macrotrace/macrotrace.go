// Copyright © 2025 The Whisker authors

// Package macrotrace mirrors macro push/pop activity as OpenTelemetry
// spans, so macro execution shows up in a host's existing trace.
package macrotrace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/whiskertales/whisker/macro"
)

// ContextTracerKey looks up a parent tracer name from a context key.
const ContextTracerKey = "whiskerParentTracer"

var _ macro.Annotator = &otelAnnotator{}

type otelAnnotator struct {
	currentContext context.Context
	parentContexts []context.Context
	spanStack      []trace.Span
}

// NewOpenTelemetryAnnotator returns an annotator appending macro spans
// under parentContext.  Attach it to a context with
// macro.WithAnnotator.
func NewOpenTelemetryAnnotator(parentContext context.Context) macro.Annotator {
	return &otelAnnotator{currentContext: parentContext}
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextTracerKey).(string)
	if !ok {
		tracerName = "whisker"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

// MacroStarted opens a span named after the macro, recording its
// arguments as a span attribute.
func (a *otelAnnotator) MacroStarted(name string, args []interface{}) {
	oldContext := a.currentContext
	ctx, span := contextTracer(a.currentContext).Start(a.currentContext, name)
	span.SetAttributes(
		attribute.String("whisker.macro", name),
		attribute.Int("whisker.macro.args", len(args)),
		attribute.String("whisker.macro.argv", fmt.Sprint(args...)),
	)
	a.currentContext = ctx
	a.parentContexts = append(a.parentContexts, oldContext)
	a.spanStack = append(a.spanStack, span)
}

// MacroCompleted ends the innermost open span and pops the context back.
// Pops are strictly LIFO so the ended span always belongs to the named
// macro.
func (a *otelAnnotator) MacroCompleted(name string) {
	n := len(a.spanStack)
	if n == 0 {
		return
	}
	a.spanStack[n-1].End()
	a.spanStack = a.spanStack[:n-1]
	a.currentContext = a.parentContexts[n-1]
	a.parentContexts = a.parentContexts[:n-1]
}
