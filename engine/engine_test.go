package engine_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/arjunmenon/ecmalite/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalReturnsHostValues(t *testing.T) {
	e := engine.New()
	v, err := e.Eval(`1 + 2`)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestEvalPersistsRootBindingsAcrossCalls(t *testing.T) {
	e := engine.New()
	_, err := e.Eval(`var counter = 0;`)
	require.NoError(t, err)

	_, err = e.Eval(`counter = counter + 1;`)
	require.NoError(t, err)

	v, err := e.Eval(`counter`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestEvalWithDoesNotLeakLocalsIntoRoot(t *testing.T) {
	e := engine.New()
	v, err := e.EvalWith(`x + 1`, map[string]any{"x": int64(41)})
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = e.Eval(`x`)
	require.Error(t, err, "x was scoped to EvalWith's child environment and must not leak to root")
}

func TestWithBindingsInstallsDurableRootBindings(t *testing.T) {
	e := engine.NewWithBindings(map[string]any{"greeting": "hi"})
	v, err := e.Eval(`greeting + " there"`)
	require.NoError(t, err)
	assert.Equal(t, "hi there", v)
}

func TestGetPutRemoveRoundTrip(t *testing.T) {
	e := engine.New()
	e.PutRootBinding("x", int64(10))

	v, err := e.Get("x")
	require.NoError(t, err)
	assert.Equal(t, int64(10), v)

	e.Put("x", int64(20))
	v, err = e.Get("x")
	require.NoError(t, err)
	assert.Equal(t, int64(20), v)

	e.Remove("x")
	_, err = e.Get("x")
	assert.Error(t, err, "removed binding should no longer resolve")
}

func TestEvalConvertsArraysAndObjectsToHostShapes(t *testing.T) {
	e := engine.New()
	v, err := e.Eval(`({a: 1, b: [2, 3]})`)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok, "expected object to convert to map[string]any, got %T", v)
	assert.Equal(t, int64(1), m["a"])
	assert.Equal(t, []any{int64(2), int64(3)}, m["b"])
}

func TestSetOnConsoleLogReceivesHostArgs(t *testing.T) {
	e := engine.New()
	var got []any
	e.SetOnConsoleLog(func(args ...any) {
		got = append(got, args...)
	})

	_, err := e.Eval(`console.log("hi", 1, true)`)
	require.NoError(t, err)
	assert.Equal(t, []any{"hi", int64(1), true}, got)
}

func TestSetOnConsoleLogNilRestoresWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	e := engine.New(engine.WithWriter(&buf))
	e.SetOnConsoleLog(func(args ...any) {})
	e.SetOnConsoleLog(nil)

	_, err := e.Eval(`console.log("to writer")`)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "to writer")
}

func TestEvalSurfacesParseErrors(t *testing.T) {
	e := engine.New()
	_, err := e.Eval(`let`)
	assert.Error(t, err)
}

func TestEvalSurfacesRuntimeErrors(t *testing.T) {
	e := engine.New()
	_, err := e.Eval(`const x = 1; x = 2;`)
	assert.Error(t, err)
}

// TestConcurrentEvalIsSerialized exercises spec.md §5's requirement
// that a shared Engine observes concurrent callers one-at-a-time:
// every increment of the shared counter must be visible to the next,
// which only holds if Eval calls never interleave their tree-walks.
func TestConcurrentEvalIsSerialized(t *testing.T) {
	e := engine.New()
	_, err := e.Eval(`var total = 0;`)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Eval(`total = total + 1;`)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := e.Eval(`total`)
	require.NoError(t, err)
	assert.Equal(t, int64(50), v)
}
