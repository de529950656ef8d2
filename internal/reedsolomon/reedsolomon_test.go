package reedsolomon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeNoErrors(t *testing.T) {
	data := []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11}
	t_ := 10
	parity := Encode(data, t_)
	codeword := append(append([]byte{}, data...), parity...)

	n, err := Decode(codeword, t_)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCorrectsErrorsWithinBound(t *testing.T) {
	data := []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11}
	tWords := 10
	parity := Encode(data, tWords)
	codeword := append(append([]byte{}, data...), parity...)
	original := append([]byte{}, codeword...)

	maxErrors := tWords / 2
	corrupted := append([]byte{}, codeword...)
	corrupted[0] ^= 0xFF
	corrupted[3] ^= 0x11
	corrupted[7] ^= 0x01
	corrupted[9] ^= 0x80
	corrupted[12] ^= 0x55
	require.Equal(t, maxErrors, 5)

	n, err := Decode(corrupted, tWords)
	require.NoError(t, err)
	assert.Equal(t, maxErrors, n)
	assert.Equal(t, original, corrupted)
}

func TestNeverReturnsWrongCodewordOnOverflow(t *testing.T) {
	data := []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11}
	tWords := 10
	parity := Encode(data, tWords)
	codeword := append(append([]byte{}, data...), parity...)
	original := append([]byte{}, codeword...)

	corrupted := append([]byte{}, codeword...)
	for i := 0; i < 8; i++ { // well past floor(t/2)=5
		corrupted[i] ^= byte(0x33 + i)
	}

	n, err := Decode(corrupted, tWords)
	if err == nil {
		// a "lucky alias" decode is permitted by spec, but it must be
		// internally consistent: re-encoding the recovered data must
		// reproduce the parity that was accepted.
		recomputed := Encode(corrupted[:len(data)], tWords)
		assert.Equal(t, corrupted[len(data):], recomputed)
		_ = n
		return
	}
	assert.ErrorIs(t, err, ErrUncorrectable)
	_ = original
}

func TestGeneratorPolynomialDegree(t *testing.T) {
	g := GeneratorPolynomial(7)
	assert.Equal(t, 7, g.Degree())
}
