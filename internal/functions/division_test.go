package functions_test

import (
	"math"
	"testing"

	"codeberg.org/mutker/errbridge/internal/carrier"
	"codeberg.org/mutker/errbridge/internal/domain"
	"codeberg.org/mutker/errbridge/internal/functions"
	"codeberg.org/mutker/errbridge/internal/shim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unrelated uint8

func (unrelated) Domain() domain.ID { return "test.Unrelated" }

func (unrelated) Case() string { return "unrelated" }

func (unrelated) Error() string { return "unrelated" }

func (u unrelated) GetMessage() { domain.Report(u) }

var operands = []int{math.MinInt32, -100, -7, -2, -1, 0, 1, 2, 3, 4, 7, 100, math.MaxInt32}

// outcome runs the division in both delivery modes and checks they agree.
func outcome(t *testing.T, a, b int) (float32, *carrier.Carrier) {
	t.Helper()

	r := shim.Call(functions.DivisionName, functions.DivisionOp(a, b))
	v, c := shim.Try(func() float32 {
		return shim.Throwing(functions.DivisionName, functions.DivisionOp(a, b))
	})

	require.Equal(t, r.HasValue(), c == nil, "a=%d b=%d", a, b)
	if r.HasValue() {
		require.Equal(t, r.Value(), v, "a=%d b=%d", a, b)
		return v, nil
	}

	fromResult, ok := carrier.As[functions.DivByZero](r.Err())
	require.True(t, ok)
	fromThrow, ok := carrier.As[functions.DivByZero](c)
	require.True(t, ok)
	require.Equal(t, fromResult, fromThrow, "a=%d b=%d", a, b)
	r.Release()

	return 0, c
}

func TestDivisionBothZero(t *testing.T) {
	_, c := outcome(t, 0, 0)
	require.NotNil(t, c)
	defer c.Release()

	got, ok := carrier.As[functions.DivByZero](c)
	require.True(t, ok)
	assert.Equal(t, functions.BothAreZero, got)
}

func TestDivisionDivisorZero(t *testing.T) {
	for _, a := range operands {
		if a == 0 {
			continue
		}

		_, c := outcome(t, a, 0)
		require.NotNil(t, c, "a=%d", a)

		got, ok := carrier.As[functions.DivByZero](c)
		require.True(t, ok)
		assert.Equal(t, functions.DivisorIsZero, got, "a=%d", a)
		c.Release()
	}
}

func TestDivisionTruncatesBeforeWidening(t *testing.T) {
	for _, a := range operands {
		for _, b := range operands {
			if b == 0 {
				continue
			}

			v, c := outcome(t, a, b)
			require.Nil(t, c, "a=%d b=%d", a, b)
			assert.Equal(t, float32(a/b), v, "a=%d b=%d", a, b)
		}
	}
}

func TestDivisionValues(t *testing.T) {
	v, c := outcome(t, 4, 2)
	require.Nil(t, c)
	assert.Equal(t, float32(2), v)

	v, c = outcome(t, 7, 2)
	require.Nil(t, c)
	assert.Equal(t, float32(3), v)

	v, c = outcome(t, -7, 2)
	require.Nil(t, c)
	assert.Equal(t, float32(-3), v)
}

func TestDivisionRoundTrip(t *testing.T) {
	for _, in := range [][2]int{{1, 0}, {0, 0}, {-5, 0}} {
		r := shim.Call(functions.DivisionName, functions.DivisionOp(in[0], in[1]))
		require.False(t, r.HasValue())

		got, ok := carrier.As[functions.DivByZero](r.Err())
		require.True(t, ok)
		again, ok := carrier.As[functions.DivByZero](r.Err())
		require.True(t, ok)
		assert.Equal(t, got, again)

		_, ok = carrier.As[unrelated](r.Err())
		assert.False(t, ok)

		r.Release()
	}
}

func TestDivByZeroDomain(t *testing.T) {
	assert.Equal(t, functions.DivByZeroDomain, functions.BothAreZero.Domain())
	assert.Equal(t, "bothAreZero", functions.BothAreZero.Case())
	assert.Equal(t, "divisorIsZero", functions.DivisorIsZero.Case())
	assert.NotEqual(t, functions.BothAreZero, functions.DivisorIsZero)
	assert.NotPanics(t, functions.BothAreZero.GetMessage)
	assert.NotPanics(t, functions.DivisorIsZero.GetMessage)

	assert.Equal(t, []domain.Value{functions.BothAreZero, functions.DivisorIsZero},
		domain.Cases(functions.DivByZeroDomain))

	v, err := domain.Lookup(functions.DivByZeroDomain, "divisorIsZero")
	require.NoError(t, err)
	assert.Equal(t, functions.DivisorIsZero, v)
}
