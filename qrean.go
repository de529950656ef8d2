/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package qrean is the façade over every QR-family variant: pick a
// symbol type, version (or size), and mask, lay out segments, run them
// through Reed–Solomon, and paint the result onto a canvas — or read a
// canvas back into the bytes it encodes. Encode and Decode both work
// against variant.Spec, so the version-selection loop, mask scoring,
// format-info codec, and payload layer are shared across classic QR,
// Micro QR, rMQR, and tQR; only segment length-field widths and exact
// per-version capacity are approximated for the three non-classic-QR
// variants, documented where that happens below.
package qrean

import (
	"errors"
	"fmt"

	"github.com/kuojiri/qrean/bitstream"
	"github.com/kuojiri/qrean/canvas"
	"github.com/kuojiri/qrean/internal/bch"
	"github.com/kuojiri/qrean/payload"
	"github.com/kuojiri/qrean/segment"
	"github.com/kuojiri/qrean/variant"
	"github.com/kuojiri/qrean/variant/microqr"
	"github.com/kuojiri/qrean/variant/qr"
	"github.com/kuojiri/qrean/variant/rmqr"
	"github.com/kuojiri/qrean/variant/tqr"
)

// dataBitStream binds a plain identity-addressed BitStream to buf, used
// for the data-codeword bytes once they have already been separated from
// the canvas's module grid.
func dataBitStream(buf []byte) *bitstream.BitStream {
	return bitstream.New(buf, uint32(len(buf)*8), bitstream.Identity)
}

// Level is a Reed–Solomon error-correction level.
type Level int

const (
	Low Level = iota
	Medium
	Quartile
	High
)

// SymbolType selects which QR-family variant Encode/Decode builds or
// reads.
type SymbolType int

const (
	// QRCode is classic QR, versions 1..40.
	QRCode SymbolType = iota
	// MicroQRCode is Micro QR, versions 1..4 (M1..M4).
	MicroQRCode
	// RMQRCode is rectangular Micro QR, indexed 1..len(rmqr.Sizes) into
	// rmqr.Sizes in ascending size order.
	RMQRCode
	// TQRCode is the fixed 19x19 tQR symbol; it has exactly one size, so
	// WithMinVersion/WithMaxVersion are ignored for it.
	TQRCode
)

var (
	// ErrCapacityExceeded is returned when the data (plus chosen segment
	// overhead) does not fit in any version up to the configured maximum.
	ErrCapacityExceeded = errors.New("qrean: data does not fit in any allowed version")

	// ErrFormatInfoInvalid is returned when a symbol's format info cannot
	// be recovered within the BCH code's correction radius.
	ErrFormatInfoInvalid = errors.New("qrean: format info unreadable")

	// ErrVersionInfoInvalid is returned when a symbol's version info
	// (version >= 7) cannot be recovered.
	ErrVersionInfoInvalid = errors.New("qrean: version info unreadable")

	// ErrUncorrectable is returned when a symbol's payload has more
	// errors than its error-correction level can fix.
	ErrUncorrectable = errors.New("qrean: payload uncorrectable")

	// ErrUnsupportedSymbolType is returned when no version/size in the
	// requested range produces a valid Spec for the chosen SymbolType.
	ErrUnsupportedSymbolType = errors.New("qrean: no valid size for symbol type in requested range")
)

// Logger is the interface WithLogger accepts. The default is a no-op
// Logger. No code in this package calls Logf, so an installed Logger
// receives no messages.
type Logger interface {
	Logf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...any) {}

// options holds the functional-option configuration for Encode.
type options struct {
	symbolType SymbolType
	minVersion int
	maxVersion int
	level      Level
	mask       int // -1 means auto
	boostECL   bool
	eci        int // -1 means no ECI segment
	logger     Logger
}

// Option configures Encode.
type Option func(*options)

// WithSymbolType selects which QR-family variant Encode builds. The
// default is QRCode.
func WithSymbolType(t SymbolType) Option { return func(o *options) { o.symbolType = t } }

// WithMinVersion sets the smallest version (or, for RMQRCode, the
// smallest 1-based index into rmqr.Sizes) Encode may choose.
func WithMinVersion(v int) Option { return func(o *options) { o.minVersion = v } }

// WithMaxVersion sets the largest version (or rmqr.Sizes index) Encode
// may choose.
func WithMaxVersion(v int) Option { return func(o *options) { o.maxVersion = v } }

// WithLevel sets the error-correction level.
func WithLevel(l Level) Option { return func(o *options) { o.level = l } }

// WithMask pins the mask pattern instead of selecting by penalty score.
func WithMask(m int) Option { return func(o *options) { o.mask = m } }

// WithAutoMask restores automatic mask selection (the default).
func WithAutoMask() Option { return func(o *options) { o.mask = -1 } }

// WithBoostECL raises the error-correction level to the highest one that
// still fits the chosen version, once a version has been picked.
func WithBoostECL(boost bool) Option { return func(o *options) { o.boostECL = boost } }

// WithECI prepends an ECI segment carrying assignment before the
// segments ChooseSegments derives from data. Encode does not transcode
// data into the ECI's target charset — callers that want, say, Shift-JIS
// Kanji content under ECI 20 must pass data already encoded that way, so
// ChooseSegments' Kanji-run detection can find it.
func WithECI(assignment uint32) Option { return func(o *options) { o.eci = int(assignment) } }

// WithLogger stores l in Encode's options; nothing in this package
// calls it.
func WithLogger(l Logger) Option { return func(o *options) { o.logger = l } }

func defaultOptions() options {
	return options{symbolType: QRCode, minVersion: 1, maxVersion: 40, level: Low, mask: -1, eci: -1, logger: nopLogger{}}
}

// Symbol is an encoded (or decoded) QR-family symbol.
type Symbol struct {
	Canvas  *canvas.Canvas
	Type    SymbolType
	Version int
	Level   Level
	Mask    int
}

// buildSpec returns the variant.Spec for symbol type t at size v,
// interpreting v as a classic QR version (1..40), a Micro QR version
// (1..4), a 1-based index into rmqr.Sizes, or (for TQRCode, where only
// v==1 is valid) the fixed tQR symbol. ok is false if v is out of range
// for t.
func buildSpec(t SymbolType, v int) (spec variant.Spec, ok bool) {
	switch t {
	case QRCode:
		if v < 1 || v > 40 {
			return nil, false
		}
		return qr.New(v), true
	case MicroQRCode:
		if v < 1 || v > 4 {
			return nil, false
		}
		return microqr.New(microqr.Version(v)), true
	case RMQRCode:
		if v < 1 || v > len(rmqr.Sizes) {
			return nil, false
		}
		return rmqr.New(rmqr.Sizes[v-1]), true
	case TQRCode:
		if v != 1 {
			return nil, false
		}
		return tqr.New(), true
	}
	return nil, false
}

// countDataBits exhausts spec's data-region walk to find its length,
// since Micro QR/rMQR/tQR have no standalone capacity table to consult.
func countDataBits(spec variant.Spec) int {
	it := spec.DataIterator(0)
	n := 0
	for {
		_, _, _, end := it(uint32(n))
		if end {
			return n
		}
		n++
	}
}

// sizingFor returns the Reed–Solomon block sizing for spec at the given
// ECC level: the exact per-version ISO table for classic QR, or the
// disclosed approximation in payload.GenericSizing for the other three
// variants.
func sizingFor(t SymbolType, spec variant.Spec, level int) payload.Sizing {
	if q, ok := spec.(*qr.QR); ok {
		return payload.QRSizing(q.Version(), level)
	}
	return payload.GenericSizing(countDataBits(spec), level)
}

// segmentVersionFor returns the nominal "version" segment.Write/Read and
// ChooseSegments use to look up length-field widths. Classic QR uses its
// real version; the other three variants reuse classic QR's smallest
// version band (the same simplification payload.GenericSizing discloses
// for capacity) since no exact Micro QR/rMQR/tQR length-field corpus data
// survives outside the already-unwired qrspec.MicroQRLengthFieldWidth/
// RMQRLengthFieldWidth tables, which use a different header shape
// (variable-width mode indicators) this façade does not reproduce.
func segmentVersionFor(spec variant.Spec) int {
	if q, ok := spec.(*qr.QR); ok {
		return q.Version()
	}
	return 1
}

// Encode builds a symbol of the configured SymbolType (default QRCode)
// encoding data, choosing the smallest version/size in [minVersion,
// maxVersion] (defaults 1, 40) that fits, and the mask pattern with the
// lowest penalty score unless WithMask pins one.
func Encode(data []byte, opts ...Option) (*Symbol, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	minV, maxV := o.minVersion, o.maxVersion
	if o.symbolType == TQRCode {
		minV, maxV = 1, 1
	}
	tried := false
	for v := minV; v <= maxV; v++ {
		spec, ok := buildSpec(o.symbolType, v)
		if !ok {
			continue
		}
		tried = true

		segVersion := segmentVersionFor(spec)
		segs := buildSegments(data, segVersion, o.eci)
		level := o.level
		if o.boostECL {
			level = boostLevel(o.symbolType, spec, segVersion, level, segs)
		}
		sym, err := encodeWithSpec(o.symbolType, v, spec, level, segVersion, segs, o)
		if err == nil {
			return sym, nil
		}
		if !errors.Is(err, ErrCapacityExceeded) {
			return nil, err
		}
	}
	if !tried {
		return nil, ErrUnsupportedSymbolType
	}
	return nil, ErrCapacityExceeded
}

// buildSegments derives the segment sequence for data, prepending an ECI
// designator segment when eci >= 0.
func buildSegments(data []byte, segVersion, eci int) []segment.Segment {
	segs := segment.ChooseSegments(data, segVersion)
	if eci < 0 {
		return segs
	}
	out := make([]segment.Segment, 0, len(segs)+1)
	out = append(out, segment.Segment{Mode: segment.ECI, Assignment: uint32(eci)})
	return append(out, segs...)
}

func boostLevel(t SymbolType, spec variant.Spec, segVersion int, base Level, segs []segment.Segment) Level {
	best := base
	for l := base + 1; l <= High; l++ {
		s := sizingFor(t, spec, int(l))
		if fits(s, segs, segVersion) {
			best = l
		}
	}
	return best
}

func fits(s payload.Sizing, segs []segment.Segment, segVersion int) bool {
	buf := make([]byte, s.DataWords())
	bs := dataBitStream(buf)
	return segment.Write(bs, segs, segVersion) == nil
}

func encodeWithSpec(t SymbolType, v int, spec variant.Spec, level Level, segVersion int, segs []segment.Segment, o options) (*Symbol, error) {
	s := sizingFor(t, spec, int(level))
	data := make([]byte, s.DataWords())
	bs := dataBitStream(data)
	if err := segment.Write(bs, segs, segVersion); err != nil {
		return nil, ErrCapacityExceeded
	}
	padWithTerminatorPattern(data, int(bs.Tell()))

	blocks := payload.Split(s, data)
	codewords := payload.Interleave(blocks)

	mask := o.mask
	var best *canvas.Canvas
	bestScore := -1
	bestMask := 0
	tryMask := func(m int) {
		c := canvas.New(spec.Side())
		spec.DrawFunctionPatterns(c)
		it := spec.DataIterator(m)
		cbs := c.NewBitStreamInvert(uint32(len(codewords)*8), it)
		for _, b := range codewords {
			cbs.WriteBits(uint32(b), 8)
		}
		writeFormatInfo(c, spec, level, m)
		writeVersionInfo(c, spec)
		score := spec.Score(c)
		if best == nil || score < bestScore {
			best = c
			bestScore = score
			bestMask = m
		}
	}
	if mask >= 0 {
		tryMask(mask)
	} else {
		for m := 0; m < spec.NumMaskPatterns(); m++ {
			tryMask(m)
		}
	}

	return &Symbol{Canvas: best, Type: t, Version: v, Level: level, Mask: bestMask}, nil
}

func padWithTerminatorPattern(data []byte, bitsWritten int) {
	bytesWritten := (bitsWritten + 7) / 8
	pad := byte(0xEC)
	for i := bytesWritten; i < len(data); i++ {
		data[i] = pad
		if pad == 0xEC {
			pad = 0x11
		} else {
			pad = 0xEC
		}
	}
}

var levelBits = map[Level]uint32{Low: 1, Medium: 0, Quartile: 3, High: 2}
var levelFromBits = [4]Level{Medium, Low, High, Quartile}

// writeFormatInfo writes the 5-bit (level, mask) data word's BCH
// codeword through spec's FormatInfoIterator, unmasked: the iterator
// itself bakes the variant's XOR mask into the invert flag at each
// position (see variant.Spec's doc comment), so every variant shares
// this one encode path.
func writeFormatInfo(c *canvas.Canvas, spec variant.Spec, level Level, mask int) {
	data5 := levelBits[level]<<3 | uint32(mask)
	codeword := bch.EncodeFormat(data5)
	it := spec.FormatInfoIterator()
	bs := c.NewBitStreamInvert(formatInfoBitLen(spec), it)
	for i := 0; i < formatInfoCopies(spec); i++ {
		bs.WriteBits(uint32(codeword), 15)
	}
}

// formatInfoCopies and formatInfoBitLen report how many 15-bit format-
// info copies a Spec carries (classic QR/rMQR: 2, Micro QR/tQR: 1) by
// probing where its FormatInfoIterator actually ends.
func formatInfoCopies(spec variant.Spec) int {
	it := spec.FormatInfoIterator()
	for n := 0; ; n++ {
		_, _, _, end := it(uint32(n) * 15)
		if end {
			return n
		}
	}
}

func formatInfoBitLen(spec variant.Spec) uint32 {
	return uint32(formatInfoCopies(spec)) * 15
}

func hasVersionInfo(spec variant.Spec) bool {
	_, _, _, end := spec.VersionInfoIterator()(0)
	return !end
}

func writeVersionInfo(c *canvas.Canvas, spec variant.Spec) {
	q, ok := spec.(*qr.QR)
	if !ok || !hasVersionInfo(spec) {
		return
	}
	codeword := bch.EncodeVersion(uint32(q.Version()))
	it := spec.VersionInfoIterator()
	bs := c.NewBitStreamInvert(36, it)
	bs.WriteBits(codeword, 18)
	bs.WriteBits(codeword, 18)
}

// Decode reads a symbol of the given type and version/size from c,
// recovering its format info, correcting payload errors, and decoding
// its segments back into bytes.
func Decode(c *canvas.Canvas, t SymbolType, version int) ([]byte, int, error) {
	spec, ok := buildSpec(t, version)
	if !ok {
		return nil, 0, ErrUnsupportedSymbolType
	}

	data5, ok := readFormatInfo(c, spec)
	if !ok {
		return nil, 0, ErrFormatInfoInvalid
	}
	level := levelFromBits[data5>>3]
	mask := int(data5 & 0b111)

	if hasVersionInfo(spec) {
		if _, ok := readVersionInfo(c, spec); !ok {
			return nil, 0, ErrVersionInfoInvalid
		}
	}

	s := sizingFor(t, spec, int(level))
	codewords := make([]byte, s.TotalWords)
	bs := c.NewBitStreamInvert(uint32(len(codewords)*8), spec.DataIterator(mask))
	for i := range codewords {
		codewords[i] = byte(bs.ReadBits(8))
	}

	dataWords, numErrors, err := payload.Deinterleave(s, codewords)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUncorrectable, err)
	}

	dbs := dataBitStream(dataWords)
	segVersion := segmentVersionFor(spec)
	segs, err := segment.Read(dbs, segVersion)
	if err != nil {
		return nil, 0, err
	}

	var out []byte
	for _, seg := range segs {
		if seg.Mode == segment.ECI {
			continue
		}
		out = append(out, seg.Data...)
	}
	return out, numErrors, nil
}

// FixErrors re-encodes data from a symbol's decoded payload and rewrites
// the corrected modules back onto the symbol's canvas, returning the
// number of bytes corrected.
func (s *Symbol) FixErrors() (int, error) {
	spec, ok := buildSpec(s.Type, s.Version)
	if !ok {
		return 0, ErrUnsupportedSymbolType
	}
	sizing := sizingFor(s.Type, spec, int(s.Level))
	codewords := make([]byte, sizing.TotalWords)
	bs := s.Canvas.NewBitStreamInvert(uint32(len(codewords)*8), spec.DataIterator(s.Mask))
	for i := range codewords {
		codewords[i] = byte(bs.ReadBits(8))
	}

	data, numErrors, err := payload.Deinterleave(sizing, codewords)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUncorrectable, err)
	}

	blocks := payload.Split(sizing, data)
	fixed := payload.Interleave(blocks)

	wbs := s.Canvas.NewBitStreamInvert(uint32(len(fixed)*8), spec.DataIterator(s.Mask))
	for _, b := range fixed {
		wbs.WriteBits(uint32(b), 8)
	}
	return numErrors, nil
}

func readFormatInfo(c *canvas.Canvas, spec variant.Spec) (uint32, bool) {
	it := spec.FormatInfoIterator()
	bs := c.NewBitStreamInvert(formatInfoBitLen(spec), it)
	raw := uint16(bs.ReadBits(15))
	return bch.DecodeFormat(raw, 0)
}

func readVersionInfo(c *canvas.Canvas, spec variant.Spec) (uint32, bool) {
	it := spec.VersionInfoIterator()
	bs := c.NewBitStreamInvert(36, it)
	raw := bs.ReadBits(18)
	return bch.DecodeVersion(raw)
}
