package utility

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingNumber(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
		ok   bool
	}{
		{int64(12), 12, true},
		{"7-A", 7, true},
		{"0042", 42, true},
		{float64(5), 5, true},
		{"A7", 0, false},
		{"", 0, false},
		{"99999999999999999999-X", math.MaxInt64, true},
		{nil, 0, false},
	}
	for _, c := range cases {
		got, ok := LeadingNumber(c.in)
		assert.Equal(t, c.ok, ok, "input %v", c.in)
		assert.Equal(t, c.want, got, "input %v", c.in)
	}
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID(3, int64(3)))
	assert.True(t, SameID(float64(3), "3"))
	assert.False(t, SameID(3, "03"))
	assert.False(t, SameID(nil, 0))
	assert.True(t, SameID(nil, nil))
}

func TestToFloat64AndFloatOrZero(t *testing.T) {
	f, ok := ToFloat64(json.Number("5.5"))
	assert.True(t, ok)
	assert.Equal(t, 5.5, f)

	_, ok = ToFloat64("abc")
	assert.False(t, ok)

	assert.Equal(t, 0.0, FloatOrZero(nil))
	assert.Equal(t, 10.0, FloatOrZero("10"))
}

func TestToInt64(t *testing.T) {
	i, ok := ToInt64(float64(4))
	assert.True(t, ok)
	assert.Equal(t, int64(4), i)

	_, ok = ToInt64(4.5)
	assert.False(t, ok)

	i, ok = ToInt64(json.Number("9"))
	assert.True(t, ok)
	assert.Equal(t, int64(9), i)
}

func TestIsNumber(t *testing.T) {
	assert.True(t, IsNumber(int64(1)))
	assert.True(t, IsNumber(2.5))
	assert.False(t, IsNumber("3"))
	assert.False(t, IsNumber(nil))
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, int64(12), ParseScalar("12"))
	assert.Equal(t, 2.5, ParseScalar("2.5"))
	assert.Equal(t, "Mint", ParseScalar("Mint"))
	assert.Equal(t, "", ParseScalar(""))
	assert.Equal(t, "0042", ParseScalar("0042"))
	assert.Equal(t, 0.5, ParseScalar("0.5"))
}

func TestPrettyJSON(t *testing.T) {
	out, err := PrettyJSON(map[string]interface{}{"name": "<Mint>"})
	assert.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"<Mint>\"\n}\n", string(out))
}

func TestKeepFloats(t *testing.T) {
	out, err := PrettyJSON([]interface{}{KeepFloats(map[string]interface{}{
		"price": 10.0,
		"rate":  0.25,
		"qty":   int64(3),
		"items": []interface{}{2.0},
	})})
	assert.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, `"price": 10.0`)
	assert.Contains(t, text, `"rate": 0.25`)
	assert.Contains(t, text, `"qty": 3`)
	assert.Contains(t, text, "2.0")

	var back []map[string]interface{}
	assert.NoError(t, DecodeJSON(out, &back))
	f, ok := ToFloat64(back[0]["price"])
	assert.True(t, ok)
	assert.Equal(t, 10.0, f)
	_, isInt := ToInt64(back[0]["qty"])
	assert.True(t, isInt)
}
