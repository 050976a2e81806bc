package numberutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFixedLengthDigits(t *testing.T) {
	cases := map[string]bool{
		"33410":  true,
		"00000":  true,
		"3341":   false,
		"334100": false,
		"":       false,
		"3341a":  false,
		"-3341":  false,
		"３３４１０": false,
		"33 41":  false,
	}
	for input, want := range cases {
		assert.Equal(t, want, IsFixedLengthDigits(input, 5), "input %q", input)
	}
}

func TestToFiniteFloat64(t *testing.T) {
	f, err := ToFiniteFloat64(" 26.7 ")
	assert.NoError(t, err)
	assert.Equal(t, 26.7, f)

	for _, bad := range []string{"", "abc", "NaN", "Inf", "-Infinity", "1e400"} {
		_, err := ToFiniteFloat64(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 3, RoundHalfAwayFromZero(2.5))
	assert.Equal(t, -3, RoundHalfAwayFromZero(-2.5))
	assert.Equal(t, 2, RoundHalfAwayFromZero(2.49))
	assert.Equal(t, 0, RoundHalfAwayFromZero(-0.4))
}
