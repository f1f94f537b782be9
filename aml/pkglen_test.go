package aml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePkgLengthSingleByte(t *testing.T) {
	length, rest, err := parsePkgLength(NewInput([]byte{0x05}))
	require.NoError(t, err)
	assert.Equal(t, 5, length)
	assert.Empty(t, rest.Bytes)
}

func TestParsePkgLengthWithExtraByte(t *testing.T) {
	// Lead byte 0x41: top bits (01) mean one extra length byte, low
	// nibble (0x1) is the low four bits of the total length. The extra
	// byte 0x0A becomes the high bits: (0x0A << 4) | 0x1 = 0xA1.
	length, rest, err := parsePkgLength(NewInput([]byte{0x41, 0x0A}))
	require.NoError(t, err)
	assert.Equal(t, 0xA1, length)
	assert.Empty(t, rest.Bytes)
}

func TestParsePkgLengthReservedBitsRejected(t *testing.T) {
	_, _, err := parsePkgLength(NewInput([]byte{0x71, 0x00}))
	require.Error(t, err)
	assert.True(t, isFailure(err))
}

func TestPkgCarvesBoundedSubInput(t *testing.T) {
	// PkgLength 0x03 covers itself plus two payload bytes, leaving one
	// trailing byte outside the package.
	bytes := []byte{0x03, 0xAA, 0xBB, 0xCC}
	inner, outer, err := pkg(NewInput(bytes))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, inner.Bytes)
	assert.Equal(t, []byte{0xCC}, outer.Bytes)
}
