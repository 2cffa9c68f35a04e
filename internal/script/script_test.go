package script

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func echoFunc(calls *[]string) Func {
	return Func{
		Name:    "push",
		Arity:   1,
		Returns: ResultBool,
		BoolFn: func(args []string) bool {
			*calls = append(*calls, args[0])
			return args[0] != "fail"
		},
	}
}

func branchFunc() Func {
	return Func{
		Name:    "branch",
		Arity:   2,
		Returns: ResultStr,
		StrFn: func(args []string) string {
			return args[0] + args[1]
		},
	}
}

func TestRunRequiresBooleanTopLevel(t *testing.T) {
	ev, err := New(nil)
	require.NoError(t, err)

	result, err := ev.Run("true")
	require.NoError(t, err)
	require.True(t, result)

	_, err = ev.Run(`"not a bool"`)
	require.Error(t, err)
}

func TestAmpersandChainsSideEffectsInOrder(t *testing.T) {
	var calls []string
	ev, err := New([]Func{echoFunc(&calls)})
	require.NoError(t, err)

	result, err := ev.Run(`push("a") && push("b")`)
	require.NoError(t, err)
	require.True(t, result)
	require.Equal(t, []string{"a", "b"}, calls)
}

func TestAmpersandShortCircuitsOnFirstFailure(t *testing.T) {
	var calls []string
	ev, err := New([]Func{echoFunc(&calls)})
	require.NoError(t, err)

	result, err := ev.Run(`push("fail") && push("b")`)
	require.NoError(t, err)
	require.False(t, result)
	require.Equal(t, []string{"fail"}, calls, "second push must not run once the first fails")
}

func TestOrShortCircuitsOnFirstSuccess(t *testing.T) {
	var calls []string
	ev, err := New([]Func{echoFunc(&calls)})
	require.NoError(t, err)

	result, err := ev.Run(`push("a") || push("b")`)
	require.NoError(t, err)
	require.True(t, result)
	require.Equal(t, []string{"a"}, calls, "second push must not run once the first succeeds")
}

func TestBinaryStringFuncBinding(t *testing.T) {
	ev, err := New([]Func{branchFunc(), {
		Name:    "eq",
		Arity:   2,
		Returns: ResultBool,
		BoolFn: func(args []string) bool {
			return args[0] == args[1]
		},
	}})
	require.NoError(t, err)

	result, err := ev.Run(`eq(branch("/foo", "/bar"), "/foo/bar")`)
	require.NoError(t, err)
	require.True(t, result)
}

func TestPrintSinkAcceptsStrings(t *testing.T) {
	ev, err := New(nil)
	require.NoError(t, err)

	result, err := ev.Run(`print("tracing an unlock attempt")`)
	require.NoError(t, err)
	require.True(t, result)
}

func TestCompileErrorOnUnknownFunction(t *testing.T) {
	ev, err := New(nil)
	require.NoError(t, err)

	_, err = ev.Run(`undeclared_function("x")`)
	require.Error(t, err)
}
