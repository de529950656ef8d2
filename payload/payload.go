// Package payload implements the QR payload layer: sizing a symbol's data
// and error-correction capacity from its version and ECC level, splitting
// the data codewords across Reed–Solomon blocks, computing each block's
// parity, and interleaving all blocks' words column-major into the final
// codeword sequence the canvas's composed-data iterator walks.
package payload

import (
	"github.com/kuojiri/qrean/internal/qrspec"
	"github.com/kuojiri/qrean/internal/reedsolomon"
)

// Sizing describes how a symbol's codewords split across Reed–Solomon
// blocks: some number of "small" blocks and some number of "large"
// blocks (one data word bigger), each carrying the same number of error
// words.
type Sizing struct {
	TotalWords         int
	TotalBlocks        int
	ErrorWordsPerBlock int
	SmallBlocks        int
	LargeBlocks        int
	DataWordsSmall     int
	DataWordsLarge     int
}

// DataWords returns the total number of data (non-parity) words across
// every block.
func (s Sizing) DataWords() int {
	return s.SmallBlocks*s.DataWordsSmall + s.LargeBlocks*s.DataWordsLarge
}

// QRSizing returns the block sizing for classic QR at the given version
// (1..40) and ECC level (0=L,1=M,2=Q,3=H).
func QRSizing(version, level int) Sizing {
	totalBits := qrspec.AvailableDataBits(version)
	totalWords := totalBits / 8
	ecWords := qrspec.ErrorWordsPerBlock[version-1][level]
	totalBlocks := qrspec.TotalBlocks[version-1][level]

	totalDataWords := totalWords - ecWords*totalBlocks
	dataPerBlock := totalDataWords / totalBlocks
	extra := totalDataWords % totalBlocks

	return Sizing{
		TotalWords:         totalWords,
		TotalBlocks:        totalBlocks,
		ErrorWordsPerBlock: ecWords,
		SmallBlocks:        totalBlocks - extra,
		LargeBlocks:        extra,
		DataWordsSmall:     dataPerBlock,
		DataWordsLarge:     dataPerBlock + 1,
	}
}

// genericErrorRatio[level] is the fraction of a block's words spent on
// Reed–Solomon parity, taken from classic QR's own version-1 table
// (7, 10, 13, 17 parity words out of 26 total, for L/M/Q/H) since no
// official Micro QR/rMQR/tQR capacity table exists in the corpus this
// module is grounded on. Applying that ratio uniformly gives every
// variant a self-consistent (not ISO-exact) sizing: what GenericSizing
// computes at encode time is exactly what it expects to find at decode
// time, which is all payload.Split/Interleave/Deinterleave need.
var genericErrorRatio = [4]float64{7.0 / 26, 10.0 / 26, 13.0 / 26, 17.0 / 26}

// clampEC applies genericErrorRatio to perBlock, with a floor of 2 parity
// words (matching classic QR's smallest real block) that itself gives
// way once perBlock is too small to spare two words for parity at all —
// a symbol that tiny gets degraded error correction rather than a
// negative or looping sizing.
func clampEC(perBlock int, ratio float64) int {
	ec := int(float64(perBlock) * ratio)
	if ec < 2 {
		ec = 2
	}
	if ec >= perBlock {
		ec = perBlock - 1
	}
	if ec < 0 {
		ec = 0
	}
	return ec
}

// GenericSizing derives a single-block-group Reed–Solomon sizing from a
// raw data-region bit count, for the QR-family variants (Micro QR,
// rMQR, tQR) that have no official per-version capacity table in this
// module's source corpus. totalDataBits is the number of modules a
// variant.Spec's DataIterator walks (the façade counts this by
// exhausting the iterator). Unlike QRSizing, blocks are split only when
// a single Reed–Solomon block would otherwise exceed GF(256)'s 255-word
// codeword limit.
func GenericSizing(totalDataBits, level int) Sizing {
	totalWords := totalDataBits / 8
	if totalWords < 1 {
		totalWords = 1
	}
	ratio := genericErrorRatio[level]

	// blocks is capped at totalWords: below that a block would have to
	// hold fewer than one data word, which clampEC below already handles
	// by letting ecWords shrink to 0 rather than looping forever chasing
	// perBlock > ecWords on a symbol too small to support any parity.
	blocks := 1
	for blocks < totalWords {
		perBlock := totalWords / blocks
		ecWords := clampEC(perBlock, ratio)
		if perBlock <= 255 && perBlock > ecWords {
			break
		}
		blocks++
	}

	perBlock := totalWords / blocks
	ecWords := clampEC(perBlock, ratio)
	dataPerBlock := perBlock - ecWords
	extraWords := totalWords - perBlock*blocks

	return Sizing{
		TotalWords:         totalWords,
		TotalBlocks:        blocks,
		ErrorWordsPerBlock: ecWords,
		SmallBlocks:        blocks - extraWords,
		LargeBlocks:        extraWords,
		DataWordsSmall:     dataPerBlock,
		DataWordsLarge:     dataPerBlock + 1,
	}
}

// Block is one Reed–Solomon block's data and parity words.
type Block struct {
	Data   []byte
	Parity []byte
}

// Split partitions data (exactly s.DataWords() bytes) into s.TotalBlocks
// blocks per s's small/large split, and computes each block's parity.
func Split(s Sizing, data []byte) []Block {
	blocks := make([]Block, 0, s.TotalBlocks)
	offset := 0
	for i := 0; i < s.SmallBlocks; i++ {
		d := data[offset : offset+s.DataWordsSmall]
		offset += s.DataWordsSmall
		blocks = append(blocks, Block{Data: d, Parity: reedsolomon.Encode(d, s.ErrorWordsPerBlock)})
	}
	for i := 0; i < s.LargeBlocks; i++ {
		d := data[offset : offset+s.DataWordsLarge]
		offset += s.DataWordsLarge
		blocks = append(blocks, Block{Data: d, Parity: reedsolomon.Encode(d, s.ErrorWordsPerBlock)})
	}
	return blocks
}

// Interleave produces the final codeword sequence: data words taken
// column-major across blocks (shorter blocks contribute nothing once
// exhausted), followed by parity words taken the same way.
func Interleave(blocks []Block) []byte {
	maxData := 0
	for _, b := range blocks {
		if len(b.Data) > maxData {
			maxData = len(b.Data)
		}
	}
	maxParity := 0
	for _, b := range blocks {
		if len(b.Parity) > maxParity {
			maxParity = len(b.Parity)
		}
	}

	out := make([]byte, 0)
	for col := 0; col < maxData; col++ {
		for _, b := range blocks {
			if col < len(b.Data) {
				out = append(out, b.Data[col])
			}
		}
	}
	for col := 0; col < maxParity; col++ {
		for _, b := range blocks {
			if col < len(b.Parity) {
				out = append(out, b.Parity[col])
			}
		}
	}
	return out
}

// Deinterleave is the inverse of Interleave: given the full codeword
// sequence and the sizing that produced it, it reconstructs each block's
// data+parity words (each still Reed–Solomon encoded) ready for
// reedsolomon.Decode, and corrects errors in place, returning the
// concatenated, corrected data words and the total number of corrected
// errors. An uncorrectable block's error is returned immediately.
func Deinterleave(s Sizing, codewords []byte) ([]byte, int, error) {
	dataLens := make([]int, s.TotalBlocks)
	for i := 0; i < s.SmallBlocks; i++ {
		dataLens[i] = s.DataWordsSmall
	}
	for i := s.SmallBlocks; i < s.TotalBlocks; i++ {
		dataLens[i] = s.DataWordsLarge
	}

	blockBuf := make([][]byte, s.TotalBlocks)
	for i, dl := range dataLens {
		blockBuf[i] = make([]byte, 0, dl+s.ErrorWordsPerBlock)
	}

	maxData := s.DataWordsLarge
	idx := 0
	for col := 0; col < maxData; col++ {
		for i, dl := range dataLens {
			if col < dl {
				blockBuf[i] = append(blockBuf[i], codewords[idx])
				idx++
			}
		}
	}
	for col := 0; col < s.ErrorWordsPerBlock; col++ {
		for i := range blockBuf {
			blockBuf[i] = append(blockBuf[i], codewords[idx])
			idx++
		}
	}

	totalErrors := 0
	out := make([]byte, 0, s.DataWords())
	for i, dl := range dataLens {
		n, err := reedsolomon.Decode(blockBuf[i], s.ErrorWordsPerBlock)
		if err != nil {
			return nil, 0, err
		}
		totalErrors += n
		out = append(out, blockBuf[i][:dl]...)
	}
	return out, totalErrors, nil
}
