// Package qrspec holds the per-version/level QR sizing tables: data words,
// error-correction words, block counts, alignment-pattern centres, and
// length-field widths. These are fixed constants reproduced from the QR
// specification (and, where spec.md §9 calls for it verbatim, from
// libqrean's own tables) rather than derived at runtime.
package qrspec

// ErrorWordsPerBlock[version-1][level] is the number of Reed–Solomon
// parity words carried by each block, indexed by ECC level 0=L,1=M,2=Q,3=H.
var ErrorWordsPerBlock = [40][4]int{
	{7, 10, 13, 17}, {10, 16, 22, 28}, {15, 26, 18, 22}, {20, 18, 26, 16},
	{26, 24, 18, 22}, {18, 16, 24, 28}, {20, 18, 18, 26}, {24, 22, 22, 26},
	{30, 22, 20, 24}, {18, 26, 24, 28}, {20, 30, 28, 24}, {24, 22, 26, 28},
	{26, 22, 24, 22}, {30, 24, 20, 24}, {22, 24, 30, 24}, {24, 28, 24, 30},
	{28, 28, 28, 28}, {30, 26, 28, 28}, {28, 26, 26, 26}, {28, 26, 30, 28},
	{28, 26, 28, 30}, {28, 28, 30, 24}, {30, 28, 30, 30}, {30, 28, 30, 30},
	{26, 28, 30, 30}, {28, 28, 28, 30}, {30, 28, 30, 30}, {30, 28, 30, 30},
	{30, 28, 30, 30}, {30, 28, 30, 30}, {30, 28, 30, 30}, {30, 28, 30, 30},
	{30, 28, 30, 30}, {30, 28, 30, 30}, {30, 28, 30, 30}, {30, 28, 30, 30},
	{30, 28, 30, 30}, {30, 28, 30, 30}, {30, 28, 30, 30}, {30, 28, 30, 30},
}

// TotalBlocks[version-1][level] is the number of Reed–Solomon blocks the
// data and error words are split across.
var TotalBlocks = [40][4]int{
	{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 2, 2}, {1, 2, 2, 4},
	{1, 2, 4, 4}, {2, 4, 4, 4}, {2, 4, 6, 5}, {2, 4, 6, 6},
	{2, 5, 8, 8}, {4, 5, 8, 8}, {4, 5, 8, 11}, {4, 8, 10, 11},
	{4, 9, 12, 16}, {4, 9, 16, 16}, {6, 10, 12, 18}, {6, 10, 17, 16},
	{6, 11, 16, 19}, {6, 13, 18, 21}, {7, 14, 21, 25}, {8, 16, 20, 25},
	{8, 17, 23, 25}, {9, 17, 23, 34}, {9, 18, 25, 30}, {10, 20, 27, 32},
	{12, 21, 29, 35}, {12, 23, 34, 37}, {12, 25, 34, 40}, {13, 26, 35, 42},
	{14, 28, 38, 45}, {15, 29, 40, 48}, {16, 31, 43, 51}, {17, 33, 45, 54},
	{18, 35, 48, 57}, {19, 37, 51, 60}, {19, 38, 53, 63}, {20, 40, 56, 66},
	{21, 43, 59, 70}, {22, 45, 62, 74}, {24, 47, 65, 77}, {25, 49, 68, 81},
}

// SymbolSide returns the module side of a classic QR symbol of the given
// version (1..40): 17 + 4*version.
func SymbolSide(version int) int { return 17 + 4*version }

// AlignmentNum returns the number of alignment-pattern centres for the
// given QR version (qrspec_get_alignment_num in the original source).
func AlignmentNum(version int) int {
	if version <= 1 {
		return 0
	}
	n := version/7 + 2
	return n*n - 3
}

// AlignmentSteps returns the coordinate of the step-th ring (0-indexed
// from the outside in) of alignment centres for the given version,
// reproducing qrspec_get_alignment_steps exactly.
func AlignmentSteps(version, step int) int {
	if version <= 1 {
		return 0
	}
	n := version/7 + 2
	if step >= n {
		return 0
	}
	r := (((version+1)*8/(n-1) + 3) / 4) * 2 * (n - step - 1)
	v4 := version * 4
	if v4 < r {
		return 6
	}
	return v4 - r + 10
}

// AlignmentPositionX returns the x coordinate of the idx-th alignment
// pattern centre for the given version (qrspec_get_alignment_position_x).
func AlignmentPositionX(version, idx int) int {
	n := version/7 + 2
	var xidx int
	switch {
	case idx+1 < (n-1)*1:
		xidx = (idx + 1) % n
	case idx+2 < (n-1)*n:
		xidx = (idx + 2) % n
	default:
		xidx = (idx + 3) % n
	}
	return AlignmentSteps(version, xidx)
}

// AlignmentPositionY returns the y coordinate of the idx-th alignment
// pattern centre for the given version (qrspec_get_alignment_position_y).
func AlignmentPositionY(version, idx int) int {
	n := version/7 + 2
	var yidx int
	switch {
	case idx+1 < (n-1)*1:
		yidx = (idx + 1) / n
	case idx+2 < (n-1)*n:
		yidx = (idx + 2) / n
	default:
		yidx = (idx + 3) / n
	}
	return AlignmentSteps(version, yidx)
}

// AvailableDataBits returns the number of bits available for codewords
// (data + error correction + remainder) after subtracting every function
// pattern, for classic QR.
func AvailableDataBits(version int) int {
	side := SymbolSide(version)

	finder := 8 * 8 * 3
	n := 0
	if version > 1 {
		n = version/7 + 2
	}
	alignment := 0
	if version > 1 {
		alignment = 5 * 5 * (n*n - 3)
	}
	timingBase := side - 8*2
	if version > 1 {
		timingBase -= 5 * (n - 2)
	}
	timing := timingBase * 2
	versionInfo := 0
	if version >= 7 {
		versionInfo = 6 * 3 * 2
	}
	formatInfo := 15*2 + 1

	function := finder + alignment + timing + versionInfo + formatInfo
	return side*side - function
}

// LengthFieldWidth returns the character-count field width (bits) for the
// given mode (0=Numeric,1=Alphanumeric,2=Byte,3=Kanji) and classic QR
// version, per the version-band table in spec.md §6.
func LengthFieldWidth(mode, version int) int {
	var band int
	switch {
	case version < 10:
		band = 0
	case version < 27:
		band = 1
	default:
		band = 2
	}
	return qrLengthTable[mode][band]
}

var qrLengthTable = [4][3]int{
	{10, 12, 14}, // Numeric
	{9, 11, 13},  // Alphanumeric
	{8, 16, 16},  // Byte
	{8, 10, 12},  // Kanji
}

// MicroQRLengthFieldWidth returns the character-count field width for a
// Micro QR symbol, indexed by mode and version (1=M1 .. 4=M4).
func MicroQRLengthFieldWidth(mode, version int) int {
	return microQRLengthTable[mode][version-1]
}

var microQRLengthTable = [4][4]int{
	{3, 4, 5, 6}, // Numeric
	{0, 3, 4, 5}, // Alphanumeric (not available in M1)
	{0, 0, 4, 5}, // Byte (not available in M1/M2)
	{0, 0, 3, 4}, // Kanji (not available in M1/M2)
}

// MicroQRModeIndicatorWidth returns the mode-indicator bit width for the
// given Micro QR version (1=M1 .. 4=M4): version - M1, i.e. 0..3.
func MicroQRModeIndicatorWidth(version int) int { return version - 1 }

// RMQRLengthFieldWidth returns the character-count field width for an
// rMQR symbol, per mode (0=Numeric,1=Alphanumeric,2=Byte,3=Kanji); rMQR
// uses one fixed width per mode regardless of size, unlike QR/Micro QR.
func RMQRLengthFieldWidth(mode int) int {
	return [4]int{8, 7, 8, 7}[mode]
}
