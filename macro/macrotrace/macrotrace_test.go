// Copyright © 2025 The Whisker authors

package macrotrace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/whiskertales/whisker/macro"
	"github.com/whiskertales/whisker/macro/macrotrace"
)

func TestAnnotatorSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	annotator := macrotrace.NewOpenTelemetryAnnotator(context.Background())
	ctx := macro.NewContext(macro.WithAnnotator(annotator))

	require.NoError(t, ctx.Push("outer", []interface{}{"arg"}))
	require.NoError(t, ctx.Push("inner", nil))
	_, ok := ctx.Pop()
	require.True(t, ok)
	_, ok = ctx.Pop()
	require.True(t, ok)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2, "one span per completed macro")
	assert.Equal(t, "inner", spans[0].Name, "inner macro ends first")
	assert.Equal(t, "outer", spans[1].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID(),
		"inner span nests under outer")
}

func TestAnnotatorUnbalancedPop(t *testing.T) {
	annotator := macrotrace.NewOpenTelemetryAnnotator(context.Background())
	// A pop with no open span is ignored rather than panicking.
	annotator.MacroCompleted("ghost")
}
