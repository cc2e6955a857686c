package ctxlog

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	ctx := NewContext(context.Background(), logger)
	FromContext(ctx).Log("msg", "plain")
	assert.Equal(t, "msg=plain\n", buf.String())

	buf.Reset()
	ctx, span := trace.StartSpan(ctx, "test", trace.WithSampler(trace.AlwaysSample()))
	defer span.End()

	FromContext(ctx).Log("msg", "traced")
	assert.Contains(t, buf.String(), "trace_id="+span.SpanContext().TraceID.String())
	assert.Contains(t, buf.String(), "msg=traced")
}

func TestFromContext_NoLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		FromContext(context.Background()).Log("msg", "dropped")
	})
}
