package advice

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-go/aspect"
)

func TestRegisterLoggingIsIdempotent(t *testing.T) {
	registry := aspect.NewRegistry()
	require.NoError(t, RegisterLogging(registry, zerolog.Nop(), "user.*"))
	require.NoError(t, RegisterLogging(registry, zerolog.Nop(), "user.*"))

	assert.Equal(t, 4, registry.Len())
}

func TestLoggingAdviceOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	registry := aspect.NewRegistry()
	require.NoError(t, RegisterLogging(registry, log, "user.*"))
	pipeline := aspect.NewPipeline(registry)

	op := func(ctx context.Context, args []any) (any, error) { return nil, nil }
	_, err := pipeline.Invoke(context.Background(), "user.logIn", op)
	require.NoError(t, err)

	out := buf.String()
	starting := strings.Index(out, "operation starting")
	succeeded := strings.Index(out, "operation succeeded")
	entering := strings.Index(out, "entering interception pipeline")
	leaving := strings.Index(out, "leaving interception pipeline")

	require.GreaterOrEqual(t, starting, 0, "missing before log line: %s", out)
	require.GreaterOrEqual(t, succeeded, 0, "missing after-success log line: %s", out)
	require.GreaterOrEqual(t, entering, 0, "missing around pre log line: %s", out)
	require.GreaterOrEqual(t, leaving, 0, "missing around post log line: %s", out)

	// Around pre-logic first, then before, then after-success, then around
	// post-logic.
	assert.Less(t, entering, starting)
	assert.Less(t, starting, succeeded)
	assert.Less(t, succeeded, leaving)

	assert.NotContains(t, out, "operation failed")
}

func TestLoggingAdviceOnFailure(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	registry := aspect.NewRegistry()
	require.NoError(t, RegisterLogging(registry, log, "user.*"))
	pipeline := aspect.NewPipeline(registry)

	opErr := errors.New("no active session")
	op := func(ctx context.Context, args []any) (any, error) { return nil, opErr }
	_, err := pipeline.Invoke(context.Background(), "user.logOut", op)
	require.Error(t, err)
	assert.ErrorIs(t, err, opErr)

	out := buf.String()
	assert.Contains(t, out, "operation failed")
	assert.Contains(t, out, "no active session")
	assert.NotContains(t, out, "operation succeeded")
	// Post-logic still ran.
	assert.Contains(t, out, "leaving interception pipeline")
}

func TestLoggingAdviceIgnoresUnmatchedOperations(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	registry := aspect.NewRegistry()
	require.NoError(t, RegisterLogging(registry, log, "user.*"))
	pipeline := aspect.NewPipeline(registry)

	op := func(ctx context.Context, args []any) (any, error) { return nil, nil }
	_, err := pipeline.Invoke(context.Background(), "account.create", op)
	require.NoError(t, err)

	assert.Empty(t, buf.String())
}
