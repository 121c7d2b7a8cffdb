package server

import (
	"context"
	"testing"
)

// testContext returns a context that is cancelled when the test finishes,
// matching testing.T.Context, which is unavailable before Go 1.24.
func testContext(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
