package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "stocktake/internal/core/context"
	"stocktake/pkg/logger"
)

func TestJobContext_FreshTracePerPass(t *testing.T) {
	w := &Worker{log: logger.Default().WithComponent("worker")}

	first := appctx.GetTrace(w.jobContext(context.Background()))
	second := appctx.GetTrace(w.jobContext(context.Background()))

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotEmpty(t, first.TraceID)
	assert.NotEqual(t, first.TraceID, second.TraceID)
	assert.NotEqual(t, first.RequestID, second.RequestID)
}
