// Package barcode implements the 1-D symbologies alongside the QR
// family: EAN-13, EAN-8, and UPC-A share one encoder ported directly
// from barcode_ean.c (L/G/R-code digit patterns, parity-selected first
// half, checkdigit), plus Code 39, Interleaved 2-of-5, and Codabar/NW-7,
// each written the same way — onto a bitstream.BitStream via its
// variable-width WriteBits, one symbol character at a time.
package barcode

import (
	"errors"

	"github.com/kuojiri/qrean/bitstream"
)

// Type identifies a 1-D symbology.
type Type int

const (
	EAN13 Type = iota
	EAN8
	UPCA
	Code39
	ITF
	Codabar
)

var ErrInvalidInput = errors.New("barcode: invalid input for this symbology")

var lCodeSymbols = [10]uint8{
	0b0001101, 0b0011001, 0b0010011, 0b0111101, 0b0100011,
	0b0110001, 0b0101111, 0b0111011, 0b0110111, 0b0001011,
}

// eanParity selects, per digit 0-9, which of the 6 first-half digits of
// an EAN-13 barcode use the G-code (odd parity) pattern instead of
// L-code, encoding the 13th digit implicitly.
var eanParity = [10]uint8{
	0b000000, 0b001011, 0b001101, 0b001110, 0b010011,
	0b011001, 0b011100, 0b010101, 0b010110, 0b011010,
}

func bitReverse8(v uint8) uint8 {
	v = (v&0xf0)>>4 | (v&0x0f)<<4
	v = (v&0xcc)>>2 | (v&0x33)<<2
	v = (v&0xaa)>>1 | (v&0x55)<<1
	return v
}

func calcCheckDigit(digits []byte) int {
	result := 0
	for i := 0; i < len(digits); i++ {
		v := int(digits[len(digits)-i-1] - '0')
		if i%2 == 0 {
			v *= 3
		}
		result = (result + v) % 10
	}
	return (10 - result) % 10
}

// WriteEAN writes an EAN-13, EAN-8, or UPC-A barcode to bs, returning the
// number of bits written, or an error if src is not all-digit or is the
// wrong length for typ (with or without its trailing checkdigit).
func WriteEAN(bs *bitstream.BitStream, typ Type, src string) (int, error) {
	for i := 0; i < len(src); i++ {
		if src[i] < '0' || src[i] > '9' {
			return 0, ErrInvalidInput
		}
	}

	var halfLen int
	var checkDigit int
	var firstDigit int
	digits := []byte(src)

	switch typ {
	case UPCA:
		halfLen = 6
		switch len(digits) {
		case 12:
			checkDigit = int(digits[11] - '0')
			digits = digits[:11]
		case 11:
			checkDigit = calcCheckDigit(digits)
		default:
			return 0, ErrInvalidInput
		}
	case EAN13:
		halfLen = 6
		switch len(digits) {
		case 13:
			checkDigit = int(digits[12] - '0')
			firstDigit = int(digits[0] - '0')
			digits = digits[1:12]
		case 12:
			firstDigit = int(digits[0] - '0')
			checkDigit = calcCheckDigit(digits)
			digits = digits[1:]
		default:
			return 0, ErrInvalidInput
		}
	case EAN8:
		halfLen = 4
		switch len(digits) {
		case 8:
			checkDigit = int(digits[7] - '0')
			digits = digits[:7]
		case 7:
			checkDigit = calcCheckDigit(digits)
		default:
			return 0, ErrInvalidInput
		}
	default:
		return 0, ErrInvalidInput
	}
	if len(digits) < halfLen {
		return 0, ErrInvalidInput
	}

	start := bs.Tell()
	bs.WriteBits(0b101, 3)

	for i := 0; i < halfLen; i++ {
		n := int(digits[i] - '0')
		if eanParity[firstDigit]&(0b100000>>i) == 0 {
			bs.WriteBits(uint32(lCodeSymbols[n]), 7)
		} else {
			gCode := ^bitReverse8(lCodeSymbols[n]) >> 1
			bs.WriteBits(uint32(gCode&0x7F), 7)
		}
	}

	bs.WriteBits(0b01010, 5)

	rest := digits[halfLen:]
	for i := 0; i < halfLen; i++ {
		var n int
		if i < len(rest) {
			n = int(rest[i] - '0')
		} else {
			n = checkDigit
		}
		bs.WriteBits(uint32(^lCodeSymbols[n])&0x7F, 7)
	}

	bs.WriteBits(0b101, 3)
	return int(bs.Tell() - start), nil
}

const code39Charset = "1234567890ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// code39Patterns holds each character's raw 15-bit bar/space pattern;
// index 43 (code39StartStop) is the shared start/stop '*' symbol.
var code39Patterns = [...]uint16{
	0b111010001010111, 0b101110001010111, 0b111011100010101, 0b101000111010111,
	0b111010001110101, 0b101110001110101, 0b101000101110111, 0b111010001011101,
	0b101110001011101, 0b101000111011101, // 1-9, 0
	0b111010100010111, 0b101110100010111, 0b111011101000101, 0b101011100010111,
	0b111010111000101, 0b101110111000101, 0b101010001110111, 0b111010100011101,
	0b101110100011101, 0b101011100011101, 0b111010101000111, 0b101110101000111,
	0b111011101010001, 0b101011101000111, 0b111010111010001, 0b101110111010001,
	0b101010111000111, 0b111010101110001, 0b101110101110001, 0b101011101110001,
	0b111000101010111, 0b100011101010111, 0b111000111010101, 0b100010111010111,
	0b111000101110101, 0b100011101110101, // A-Z
	0b100010101110111, 0b111000101011101, 0b100011101011101, 0b100010001000101,
	0b100010001010001, 0b100010100010001, 0b101000100010001, // - . [space] $ / + %
	0b100010111011101, // *
}

const code39StartStop = 43

// WriteCode39 writes a Code 39 barcode: start symbol, a narrow gap, one
// 15-bit pattern per character (each followed by a narrow gap), and the
// stop symbol.
func WriteCode39(bs *bitstream.BitStream, src string) (int, error) {
	start := bs.Tell()
	bs.WriteBits(uint32(code39Patterns[code39StartStop]), 15)
	bs.WriteBit(0)

	for i := 0; i < len(src); i++ {
		idx := indexOf(code39Charset, src[i])
		if idx < 0 {
			return 0, ErrInvalidInput
		}
		bs.WriteBits(uint32(code39Patterns[idx]), 15)
		bs.WriteBit(0)
	}

	bs.WriteBits(uint32(code39Patterns[code39StartStop]), 15)
	return int(bs.Tell() - start), nil
}

func indexOf(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// itfDigitPatterns holds each digit's 5-element wide(1)/narrow(0) bar
// pattern used by Interleaved 2-of-5.
var itfDigitPatterns = [10]uint8{
	0b00110, 0b10001, 0b01001, 0b11000, 0b00101,
	0b10100, 0b01100, 0b00011, 0b10010, 0b01010,
}

// WriteITF writes an Interleaved 2-of-5 barcode. src must have an even
// number of digits (ITF always interleaves digits in pairs).
func WriteITF(bs *bitstream.BitStream, src string) (int, error) {
	if len(src)%2 != 0 {
		return 0, ErrInvalidInput
	}
	for i := 0; i < len(src); i++ {
		if src[i] < '0' || src[i] > '9' {
			return 0, ErrInvalidInput
		}
	}

	start := bs.Tell()
	bs.WriteBits(0b1010, 4) // start

	for i := 0; i < len(src); i += 2 {
		blackPattern := itfDigitPatterns[src[i]-'0']
		whitePattern := itfDigitPatterns[src[i+1]-'0']
		for bit := 4; bit >= 0; bit-- {
			blackWide := (blackPattern>>uint(bit))&1 != 0
			whiteWide := (whitePattern>>uint(bit))&1 != 0
			blackWidth := uint8(1)
			if blackWide {
				blackWidth = 3
			}
			whiteWidth := uint8(1)
			if whiteWide {
				whiteWidth = 3
			}
			for b := uint8(0); b < blackWidth; b++ {
				bs.WriteBit(1)
			}
			for b := uint8(0); b < whiteWidth; b++ {
				bs.WriteBit(0)
			}
		}
	}

	bs.WriteBits(0b111010, 6) // stop
	return int(bs.Tell() - start), nil
}

const code93Charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// code93Patterns holds each character's 9-bit wide/narrow pattern; index
// 43 is the shared start/stop symbol (Code 93 has no separate characters
// for the four "shift" codes %/$/+ as used with full ASCII mode).
var code93Patterns = [...]uint16{
	0b100010100, 0b101001000, 0b101000100, 0b101000010, 0b100101000,
	0b100100100, 0b100100010, 0b101010000, 0b100010010, 0b100001010,
	0b110101000, 0b110100100, 0b110100010, 0b110010100, 0b110010010,
	0b110001010, 0b101101000, 0b101100100, 0b101100010, 0b100110100,
	0b100011010, 0b101011000, 0b101001100, 0b101000110, 0b100101100,
	0b100010110, 0b110110100, 0b110110010, 0b110101100, 0b110100110,
	0b110010110, 0b110011010, 0b101101100, 0b101100110, 0b100110110,
	0b100111010, 0b100101110, 0b111010100, 0b111010010, 0b111001010,
	0b101101110, 0b101110110, 0b110101110,
	0b101011110, // start/stop
}

const code93StartStop = 43

// WriteCode93 writes a Code 93 barcode: start symbol, one 9-bit pattern
// per character, two mod-47 weighted checksum characters (C then K),
// stop symbol, and a final 1-bit termination bar.
func WriteCode93(bs *bitstream.BitStream, src string) (int, error) {
	start := bs.Tell()
	bs.WriteBits(uint32(code93Patterns[code93StartStop]), 9)

	w := len(src) - 1
	c, k := 0, 0
	for i := 0; i < len(src); i++ {
		n := indexOf(code93Charset, src[i])
		if n < 0 {
			return 0, ErrInvalidInput
		}
		c = (c + n*((w%20)+1)) % 47
		k = (k + n*((w%15)+1)) % 47
		w--
		bs.WriteBits(uint32(code93Patterns[n]), 9)
	}

	bs.WriteBits(uint32(code93Patterns[c]), 9)
	k = (k + c) % 47
	bs.WriteBits(uint32(code93Patterns[k]), 9)

	bs.WriteBits(uint32(code93Patterns[code93StartStop]), 9)
	bs.WriteBit(1)
	return int(bs.Tell() - start), nil
}

const codabarCharset = "0123456789-$./:+"

// codabarSymbol holds each digit/symbol's raw bar/space pattern for
// Codabar (NW-7); entries 0-15 are the data characters and 16-19 are the
// A/B/C/D start-stop characters (selected by appending 'A'-'D' to
// codabarCharset's index space).
var codabarSymbol = [...]struct {
	v uint32
	w uint8
}{
	{0b10101000111, 11}, {0b10101110001, 11}, {0b10100010111, 11}, {0b11100010101, 11},
	{0b10111010001, 11}, {0b11101010001, 11}, {0b10001010111, 11}, {0b10001011101, 11},
	{0b10001110101, 11}, {0b11101000101, 11}, {0b10100011101, 11}, {0b10111000101, 11},
	{0b1110111011101, 13}, {0b1110111010111, 13}, {0b1110101110111, 13}, {0b1011101110111, 13},
	{0b1011100010001, 13}, {0b1000100010111, 13}, {0b1010001000111, 13}, {0b1010001110001, 13},
}

// WriteCodabar writes a Codabar/NW-7 barcode. startStop selects the
// start/stop character pair ('A'-'D'); each data character must be a
// digit or one of "-$./:+".
func WriteCodabar(bs *bitstream.BitStream, src string, startStop byte) (int, error) {
	if startStop < 'A' || startStop > 'D' {
		return 0, ErrInvalidInput
	}
	startStopIdx := 16 + int(startStop-'A')

	start := bs.Tell()
	bs.WriteBits(0, 10)
	sym := codabarSymbol[startStopIdx]
	bs.WriteBits(sym.v, sym.w)
	bs.WriteBit(0)

	for i := 0; i < len(src); i++ {
		idx := indexOf(codabarCharset, src[i])
		if idx < 0 {
			return 0, ErrInvalidInput
		}
		sym := codabarSymbol[idx]
		bs.WriteBits(sym.v, sym.w)
		bs.WriteBit(0)
	}

	sym = codabarSymbol[startStopIdx]
	bs.WriteBits(sym.v, sym.w)
	bs.WriteBits(0, 10)
	return int(bs.Tell() - start), nil
}
