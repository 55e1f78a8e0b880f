package interp_test

import (
	"testing"

	"github.com/arjunmenon/ecmalite/builtin"
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses and evaluates src against a fresh interpreter, failing
// the test immediately on a parse error so scenario tests can assert
// only on the evaluation result.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, errs := parser.Parse(src)
	require.Empty(t, errs, "parse errors for %q", src)
	i := builtin.New()
	v, err := i.Run(prog)
	if err != nil {
		return "", err
	}
	return v.Inspect(), nil
}

// TestEndToEndScenarios covers spec.md §8's eight literal I/O
// scenarios verbatim.
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"arithmetic", `var a = 1; a + 2`, "3"},
		{"recursive fib", `const f = n => n < 2 ? n : f(n-1) + f(n-2); f(10)`, "55"},
		{
			"per-iteration closure",
			`let out = []; for (let i = 0; i < 3; i++) out.push(() => i); [out[0](), out[1](), out[2]()]`,
			"[ 0, 1, 2 ]",
		},
		{"constructor this", `function C(x){ this.x = x } const o = new C(7); o.x`, "7"},
		{"instanceof", `function C(x){ this.x = x } const o = new C(7); o instanceof C`, "true"},
		{"try/catch/finally", `try { throw {code: 42} } catch (e) { e.code } finally { }`, "42"},
		{"map/reduce", `const a = [1,2,3]; a.map(x => x*x).reduce((s,x) => s+x, 0)`, "14"},
		{"JSON insertion order", `JSON.stringify({b:2,a:1})`, `"{\"b\":2,\"a\":1}"`},
		{"regexp replace first", `'abc'.replace(/b/, 'X')`, `"aXc"`},
		{"regexp replace global", `'aaa'.replace(/a/g,'b')`, `"bbb"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := run(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

// TestScopeSoundness is spec.md §8's shadowing invariant: an inner
// let of the same name shadows within its block only.
func TestScopeSoundness(t *testing.T) {
	got, err := run(t, `let x = "v"; let inner; { let x = "w"; inner = x; } [inner, x]`)
	require.NoError(t, err)
	assert.Equal(t, `[ "w", "v" ]`, got)
}

// TestConstImmutability is spec.md §8's deterministic const-reassign
// failure.
func TestConstImmutability(t *testing.T) {
	_, err := run(t, `const x = 1; x = 2;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assignment to constant: x")
}

// TestTDZ exercises reading a let binding before its declaration runs.
func TestTDZ(t *testing.T) {
	_, err := run(t, `x; let x = 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before initialization")
}

// TestRedeclaration exercises spec.md §4.4's same-level let
// redeclaration failure.
func TestRedeclaration(t *testing.T) {
	_, err := run(t, `let x = 1; let x = 2;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has already been declared")
}

// TestReferenceError exercises reading a never-declared identifier.
func TestReferenceError(t *testing.T) {
	_, err := run(t, `neverDeclared`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not defined")
}

// TestImplicitGlobal exercises spec.md §4.4: assigning to an
// undeclared name creates a global rather than failing.
func TestImplicitGlobal(t *testing.T) {
	got, err := run(t, `function f() { implicit = 42; } f(); implicit`)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

// TestOptionalChainingShortCircuits exercises ?. / ?.[] / ?.() on
// null/undefined bases.
func TestOptionalChainingShortCircuits(t *testing.T) {
	got, err := run(t, `let o = null; [o?.x, o?.[0], o?.()]`)
	require.NoError(t, err)
	assert.Equal(t, "[ undefined, undefined, undefined ]", got)
}

// TestMemberAccessErrorWithoutOptionalChaining exercises the hard
// failure when the same access isn't optional.
func TestMemberAccessErrorWithoutOptionalChaining(t *testing.T) {
	_, err := run(t, `let o = null; o.x`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read properties of null")
}

// TestSwitchFallThrough exercises spec.md §4.5's switch semantics:
// execution continues into later cases absent a break.
func TestSwitchFallThrough(t *testing.T) {
	got, err := run(t, `
		let out = [];
		switch (1) {
			case 1: out.push("a");
			case 2: out.push("b"); break;
			case 3: out.push("c");
		}
		out
	`)
	require.NoError(t, err)
	assert.Equal(t, `[ "a", "b" ]`, got)
}

// TestForInOrder exercises for-in's insertion-order iteration.
func TestForInOrder(t *testing.T) {
	got, err := run(t, `
		let keys = [];
		let o = {b: 1, a: 2};
		for (let k in o) keys.push(k);
		keys
	`)
	require.NoError(t, err)
	assert.Equal(t, `[ "b", "a" ]`, got)
}

// TestForOfArray exercises for-of over an array's values.
func TestForOfArray(t *testing.T) {
	got, err := run(t, `
		let sum = 0;
		for (const v of [1,2,3]) sum += v;
		sum
	`)
	require.NoError(t, err)
	assert.Equal(t, "6", got)
}

// TestDestructuringAndRest exercises destructuring binding patterns
// and a trailing rest parameter together.
func TestDestructuringAndRest(t *testing.T) {
	got, err := run(t, `
		function f(a, ...rest) { return [a, rest]; }
		const {x, y} = {x: 1, y: 2};
		const [first, ...others] = f(x, y, 3);
		[first, others]
	`)
	require.NoError(t, err)
	assert.Equal(t, "[ 1, [ [ 2, 3 ] ] ]", got)
}

// TestSpreadInCall exercises spread-argument flattening.
func TestSpreadInCall(t *testing.T) {
	got, err := run(t, `
		function add3(a, b, c) { return a + b + c; }
		const args = [1, 2, 3];
		add3(...args)
	`)
	require.NoError(t, err)
	assert.Equal(t, "6", got)
}

// TestTemplateLiteralInterpolation exercises template literal
// interpolation.
func TestTemplateLiteralInterpolation(t *testing.T) {
	got, err := run(t, "let n = 3; `n is ${n * 2}`")
	require.NoError(t, err)
	assert.Equal(t, `"n is 6"`, got)
}

// TestNullishCoalescing exercises ?? treating only null/undefined
// (not falsy-but-defined values) as absent.
func TestNullishCoalescing(t *testing.T) {
	got, err := run(t, `[0 ?? "x", "" ?? "y", null ?? "z", undefined ?? "w"]`)
	require.NoError(t, err)
	assert.Equal(t, `[ 0, "", "z", "w" ]`, got)
}

// TestArithmeticTotality exercises spec.md §8's totality invariant
// across the arithmetic and bitwise operator set.
func TestArithmeticTotality(t *testing.T) {
	cases := []struct{ src, want string }{
		{`1 + "2"`, `"12"`},
		{`1 / 0`, "Infinity"},
		{`-1 / 0`, "-Infinity"},
		{`0 / 0`, "NaN"},
		{`2 ** 10`, "1024"},
		{`5 % 2`, "1"},
		{`~0`, "-1"},
		{`-1 >>> 0`, "4294967295"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := run(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

// TestEqualitySymmetryAndNaN exercises spec.md §8's equality
// invariants.
func TestEqualitySymmetryAndNaN(t *testing.T) {
	got, err := run(t, `
		let nan = 0/0;
		[nan == nan, nan === nan, null == undefined, 1 == "1", 1 === "1"]
	`)
	require.NoError(t, err)
	assert.Equal(t, "[ false, false, true, true, false ]", got)
}

// TestJSONRoundTrip exercises spec.md §8's JSON.parse(JSON.stringify(v)) invariant.
func TestJSONRoundTrip(t *testing.T) {
	got, err := run(t, `JSON.stringify(JSON.parse(JSON.stringify({a: 1, b: [1,2,"x"], c: null, d: true})))`)
	require.NoError(t, err)
	assert.Equal(t, `"{\"a\":1,\"b\":[1,2,\"x\"],\"c\":null,\"d\":true}"`, got)
}
