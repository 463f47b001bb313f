package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/haulplan/pkg/utils"
)

func TestRound1(t *testing.T) {
	assert.Equal(t, 2.4, utils.Round1(2.44))
	assert.Equal(t, 2.5, utils.Round1(2.46))
	assert.Equal(t, 0.0, utils.Round1(0.0))

	// Halves round away from zero.
	assert.Equal(t, 26.8, utils.Round1(26.75))
	assert.Equal(t, -1.3, utils.Round1(-1.25))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, utils.Round2(3.14159))
	assert.Equal(t, 2.72, utils.Round2(2.718))
	assert.Equal(t, 8.0, utils.Round2(8.000000000000002))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1235.0, utils.RoundTo(1234.5678, 0))
	assert.Equal(t, 6.0, utils.RoundTo(5.5, 0))
	assert.Equal(t, 1234.57, utils.RoundTo(1234.5678, 2))
}
