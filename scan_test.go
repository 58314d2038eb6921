package arcdb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt64(t *testing.T) {
	n, err := toInt64("test", json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = toInt64("test", json.Number("-9223372036854775808"))
	require.NoError(t, err)
	assert.Equal(t, int64(-9223372036854775808), n)

	var mismatch *TypeMismatch
	_, err = toInt64("test", json.Number("1.5"))
	assert.ErrorAs(t, err, &mismatch)
	_, err = toInt64("test", 1.5)
	assert.ErrorAs(t, err, &mismatch)
	_, err = toInt64("test", "42")
	assert.ErrorAs(t, err, &mismatch)
	_, err = toInt64("test", true)
	assert.ErrorAs(t, err, &mismatch)
}

func TestToFloat64(t *testing.T) {
	f, err := toFloat64("test", json.Number("2.75"))
	require.NoError(t, err)
	assert.Equal(t, 2.75, f)

	f, err = toFloat64("test", json.Number("3"))
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	var mismatch *TypeMismatch
	_, err = toFloat64("test", "2.75")
	assert.ErrorAs(t, err, &mismatch)
}

func TestToTextAndBool(t *testing.T) {
	s, err := toText("test", "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	var mismatch *TypeMismatch
	_, err = toText("test", json.Number("1"))
	assert.ErrorAs(t, err, &mismatch)

	b, err := toBool("test", true)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = toBool("test", "true")
	assert.ErrorAs(t, err, &mismatch)
}

func TestToDecimal(t *testing.T) {
	d, err := toDecimal("test", json.Number("12.345"))
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.345")))

	d, err = toDecimal("test", "99.99")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("99.99")))

	var mismatch *TypeMismatch
	_, err = toDecimal("test", true)
	assert.ErrorAs(t, err, &mismatch)
}

func TestToTime(t *testing.T) {
	ts, err := toTime("test", map[string]any{"Timestamp": json.Number("1700000000000")})
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), ts)

	d, err := toTime("test", map[string]any{"Date": json.Number("19000")})
	require.NoError(t, err)
	assert.Equal(t, time.Unix(19000*86400, 0).UTC(), d)

	var mismatch *TypeMismatch
	_, err = toTime("test", json.Number("1700000000000"))
	assert.ErrorAs(t, err, &mismatch)
	_, err = toTime("test", map[string]any{"Integer": json.Number("5")})
	assert.ErrorAs(t, err, &mismatch)
}

func TestScanValueDestinations(t *testing.T) {
	t.Run("Any", func(t *testing.T) {
		var v any
		require.NoError(t, scanValue(&v, map[string]any{"String": "x"}))
		assert.Equal(t, "x", v)
		require.NoError(t, scanValue(&v, "Null"))
		assert.Nil(t, v)
	})

	t.Run("IntWidths", func(t *testing.T) {
		var i32 int32
		require.NoError(t, scanValue(&i32, map[string]any{"Integer": json.Number("7")}))
		assert.Equal(t, int32(7), i32)

		var mismatch *TypeMismatch
		err := scanValue(&i32, map[string]any{"BigInt": json.Number("3000000000")})
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("NullIntoPointers", func(t *testing.T) {
		s := "stale"
		ps := &s
		require.NoError(t, scanValue(&ps, "Null"))
		assert.Nil(t, ps)

		var pi *int64
		require.NoError(t, scanValue(&pi, map[string]any{"BigInt": json.Number("5")}))
		require.NotNil(t, pi)
		assert.Equal(t, int64(5), *pi)
	})

	t.Run("Decimal", func(t *testing.T) {
		var d decimal.Decimal
		require.NoError(t, scanValue(&d, map[string]any{"Float": json.Number("1.5")}))
		assert.True(t, d.Equal(decimal.RequireFromString("1.5")))
	})

	t.Run("Time", func(t *testing.T) {
		var ts time.Time
		require.NoError(t, scanValue(&ts, map[string]any{"Timestamp": json.Number("1000")}))
		assert.Equal(t, time.UnixMilli(1000).UTC(), ts)
	})

	t.Run("UnsupportedDestination", func(t *testing.T) {
		var mismatch *TypeMismatch
		var ch chan int
		err := scanValue(&ch, "x")
		assert.ErrorAs(t, err, &mismatch)
	})
}
