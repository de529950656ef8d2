package barcode

import (
	"fmt"

	"github.com/kuojiri/qrean/bitstream"
)

// halfLenFor returns the number of digits encoded on each side of an
// EAN-family symbol's centre guard, or 0 if typ isn't EAN-family.
func halfLenFor(typ Type) int {
	switch typ {
	case UPCA, EAN13:
		return 6
	case EAN8:
		return 4
	}
	return 0
}

// decodeLGDigit matches a 7-bit pattern against the L-code and G-code
// tables WriteEAN draws from, returning the digit and whether it was the
// G-code (odd-parity) variant.
func decodeLGDigit(pattern uint8) (digit int, isG bool, ok bool) {
	for n, p := range lCodeSymbols {
		if p == pattern {
			return n, false, true
		}
	}
	for n := range lCodeSymbols {
		gCode := ^bitReverse8(lCodeSymbols[n]) >> 1 & 0x7F
		if gCode == pattern {
			return n, true, true
		}
	}
	return 0, false, false
}

// decodeRDigit matches a 7-bit pattern against the R-code table WriteEAN
// draws the second half of an EAN-family symbol from.
func decodeRDigit(pattern uint8) (digit int, ok bool) {
	for n := range lCodeSymbols {
		if uint8(^lCodeSymbols[n])&0x7F == pattern {
			return n, true
		}
	}
	return 0, false
}

// ReadEAN is the inverse of WriteEAN: it reads an EAN-13, EAN-8, or
// UPC-A barcode's module sequence from bs and returns the full digit
// string, check digit included. For EAN-13 the omitted first digit is
// recovered from which half-code positions used the G-code (odd parity)
// pattern, the same eanParity table WriteEAN consults to choose them.
func ReadEAN(bs *bitstream.BitStream, typ Type) (string, error) {
	halfLen := halfLenFor(typ)
	if halfLen == 0 {
		return "", ErrInvalidInput
	}

	if bs.ReadBits(3) != 0b101 {
		return "", ErrInvalidInput
	}

	parity := 0
	firstHalf := make([]byte, halfLen)
	for i := 0; i < halfLen; i++ {
		digit, isG, ok := decodeLGDigit(uint8(bs.ReadBits(7)))
		if !ok {
			return "", ErrInvalidInput
		}
		firstHalf[i] = byte('0' + digit)
		if isG {
			parity |= 1 << uint(halfLen-1-i)
		}
	}

	if bs.ReadBits(5) != 0b01010 {
		return "", ErrInvalidInput
	}

	secondHalf := make([]byte, halfLen)
	for i := 0; i < halfLen; i++ {
		digit, ok := decodeRDigit(uint8(bs.ReadBits(7)))
		if !ok {
			return "", ErrInvalidInput
		}
		secondHalf[i] = byte('0' + digit)
	}

	if bs.ReadBits(3) != 0b101 {
		return "", ErrInvalidInput
	}

	if typ != EAN13 {
		return string(firstHalf) + string(secondHalf), nil
	}

	for firstDigit, p := range eanParity {
		if int(p) == parity {
			return fmt.Sprintf("%d%s%s", firstDigit, firstHalf, secondHalf), nil
		}
	}
	return "", ErrInvalidInput
}
