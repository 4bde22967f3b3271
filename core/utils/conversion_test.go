package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"SameString", "Austin", "Austin", true},
		{"DifferentString", "Austin", "Dallas", false},
		{"IntFloat", 5, 5.0, true},
		{"IntFloatDiffer", 5, 5.5, false},
		{"NumericStringVsNumber", "5", 5, false},
		{"BothNil", nil, nil, true},
		{"OneNil", nil, "", false},
		{"Bool", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(10)
	assert.True(t, ok)
	assert.Equal(t, 10.0, f)

	f, ok = ToFloat(" 2.5 ")
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = ToFloat("abc")
	assert.False(t, ok)

	_, ok = ToFloat(struct{}{})
	assert.False(t, ok)
}

func TestToString(t *testing.T) {
	assert.Equal(t, "25000.01", ToString(25000.01))
	assert.Equal(t, "25000", ToString(25000.0))
	assert.Equal(t, "73301", ToString(73301))
	assert.Equal(t, "abc", ToString([]byte("abc")))

	assert.Nil(t, ToNullableString(nil))
	assert.Equal(t, "x", *ToNullableString("x"))
}
