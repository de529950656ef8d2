// Package bch implements the BCH error-correcting codes used for a QR
// symbol's format and version information: BCH(15,5) for format info and
// BCH(18,6) for version info, plus the masked variants Micro QR and rMQR
// use for their format info. Decoding picks the codeword at minimum
// Hamming distance rather than requiring an exact match, so format/version
// info survives a few bit errors.
package bch

import "math/bits"

const (
	formatGenerator  = 0x537  // g(x) = x^10+x^8+x^5+x^4+x^2+x+1
	versionGenerator = 0x1F25 // g(x) = x^12+x^11+x^10+x^9+x^8+x^5+x^2+1

	// QRFormatMask is the XOR mask classic QR applies to format info so
	// that the all-zero data word never produces an all-zero codeword.
	QRFormatMask = 0x5412

	// TQRFormatMask is tQR's format-info XOR mask. tQR borrows classic
	// QR's single-copy format layout wholesale, so it reuses QRFormatMask
	// rather than defining its own constant.
	TQRFormatMask = QRFormatMask

	// MicroQRFormatMask is Micro QR's format-info XOR mask.
	MicroQRFormatMask = 0x4445

	// RMQRFormatMaskA and RMQRFormatMaskB are rMQR's two format-info XOR
	// masks, applied to the symbol's two redundant format-info copies.
	// The reference rMQR format info is 18 bits per copy; this module
	// shares a single 15-bit BCH(15,5) codec across every variant, so
	// these are the reference constants truncated to their low 15 bits
	// rather than the ISO 18-bit values.
	RMQRFormatMaskA = 0x7AB2
	RMQRFormatMaskB = 0x0A7B
)

func bchRemainder(data uint32, dataBits int, generator uint32, genBits int) uint32 {
	value := data << uint(genBits-1)
	for bit := dataBits + genBits - 2; bit >= genBits-1; bit-- {
		if value&(1<<uint(bit)) != 0 {
			value ^= generator << uint(bit-(genBits-1))
		}
	}
	return value
}

// EncodeFormat encodes a 5-bit format-info data word into its 15-bit BCH
// codeword, unmasked: every variant.Spec's FormatInfoIterator bakes its
// own XOR mask into the invert flag it returns per bit position, so
// callers write/read this raw codeword through that iterator rather
// than masking it themselves.
func EncodeFormat(data5 uint32) uint16 {
	rem := bchRemainder(data5, 5, formatGenerator, 11)
	return uint16(data5<<10 | rem)
}

// EncodeVersion encodes a 6-bit version-info data word into its 18-bit
// BCH codeword.
func EncodeVersion(data6 uint32) uint32 {
	rem := bchRemainder(data6, 6, versionGenerator, 13)
	return data6<<12 | rem
}

// DecodeFormat finds the 5-bit data word whose masked 15-bit codeword is
// at Hamming distance <= 3 from received, trying every one of the 32
// possible codewords and returning the closest match. ok is false if no
// codeword is within distance 3.
func DecodeFormat(received uint16, mask uint16) (data5 uint32, ok bool) {
	bestDist := 99
	bestData := uint32(0)
	for d := uint32(0); d < 32; d++ {
		codeword := EncodeFormat(d) ^ mask
		dist := bits.OnesCount16(codeword ^ received)
		if dist < bestDist {
			bestDist = dist
			bestData = d
		}
	}
	return bestData, bestDist <= 3
}

// DecodeVersion finds the 6-bit data word whose 18-bit codeword is at
// Hamming distance <= 3 from received.
func DecodeVersion(received uint32) (data6 uint32, ok bool) {
	bestDist := 99
	bestData := uint32(0)
	for d := uint32(0); d < 64; d++ {
		codeword := EncodeVersion(d)
		dist := bits.OnesCount32(codeword ^ received)
		if dist < bestDist {
			bestDist = dist
			bestData = d
		}
	}
	return bestData, bestDist <= 3
}
