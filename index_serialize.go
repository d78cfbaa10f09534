package jsonskip

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

const indexVersion = 1

// CompressMode selects how an index is compressed.
type CompressMode uint8

const (
	// CompressNone stores the index uncompressed.
	CompressNone CompressMode = iota
	// CompressFast uses S2 compression.
	CompressFast
	// CompressDefault uses S2 "better" compression.
	CompressDefault
	// CompressBest uses zstd compression.
	CompressBest
)

// ParseCompressMode returns the mode named s.
func ParseCompressMode(s string) (CompressMode, error) {
	switch s {
	case "none":
		return CompressNone, nil
	case "fast":
		return CompressFast, nil
	case "default", "":
		return CompressDefault, nil
	case "best":
		return CompressBest, nil
	}
	return 0, errors.Newf("unknown compression mode %q", s)
}

func (c CompressMode) String() string {
	switch c {
	case CompressNone:
		return "none"
	case CompressFast:
		return "fast"
	case CompressDefault:
		return "default"
	case CompressBest:
		return "best"
	}
	return "unknown"
}

// IndexSerializer converts span lists to and from a compact binary form.
// A serializer keeps its buffers between calls and is not safe for
// concurrent use.
type IndexSerializer struct {
	mode CompressMode
	raw  []byte
	comp []byte
}

// NewIndexSerializer returns a serializer using CompressDefault.
func NewIndexSerializer() *IndexSerializer {
	return &IndexSerializer{mode: CompressDefault}
}

// CompressMode sets the compression used by Serialize.
// Deserialize accepts any mode.
func (s *IndexSerializer) CompressMode(c CompressMode) {
	s.mode = c
}

// Serialize appends the serialized spans to dst and returns it.
func (s *IndexSerializer) Serialize(dst []byte, spans []Span) []byte {
	// Header: Version byte
	// Varuint span count
	// Varuint uncompressed payload size
	// Block:
	//  - Varuint: block size, including the type byte.
	//  - Block type:
	//      0: uncompressed, rest is data.
	//      1: S2 block.
	//      2: Zstd block.
	//  - block data.
	// Payload, per span:
	//  - Varint: Start - previous End
	//  - Varuint: End - Start
	var tmp [binary.MaxVarintLen64]byte
	s.raw = s.raw[:0]
	prevEnd := 0
	for _, sp := range spans {
		n := binary.PutVarint(tmp[:], int64(sp.Start-prevEnd))
		s.raw = append(s.raw, tmp[:n]...)
		n = binary.PutUvarint(tmp[:], uint64(sp.Len()))
		s.raw = append(s.raw, tmp[:n]...)
		prevEnd = sp.End
	}

	var typ byte
	switch s.mode {
	case CompressNone:
		typ = blockTypeUncompressed
	case CompressBest:
		typ = blockTypeZstd
	default:
		typ = blockTypeS2
	}
	s.comp = encBlock(typ, s.mode == CompressDefault, s.raw, s.comp)

	dst = append(dst, indexVersion)
	dst = binary.AppendUvarint(dst, uint64(len(spans)))
	dst = binary.AppendUvarint(dst, uint64(len(s.raw)))
	dst = binary.AppendUvarint(dst, uint64(len(s.comp)))
	return append(dst, s.comp...)
}

// Deserialize decodes an index produced by Serialize.
// Spans are appended to dst[:0], which may be nil.
func (s *IndexSerializer) Deserialize(src []byte, dst []Span) ([]Span, error) {
	br := bytes.NewBuffer(src)

	if v, err := br.ReadByte(); err != nil {
		return dst, errors.Wrap(err, "reading version")
	} else if v != indexVersion {
		return dst, errors.Newf("unknown index version %d", v)
	}
	count, err := binary.ReadUvarint(br)
	if err != nil {
		return dst, errors.Wrap(err, "reading span count")
	}
	rawSize, err := binary.ReadUvarint(br)
	if err != nil {
		return dst, errors.Wrap(err, "reading payload size")
	}
	// Every span takes between two and 2*MaxVarintLen64 bytes.
	if count > rawSize/2 {
		return dst, errors.Newf("span count %d does not fit in %d bytes", count, rawSize)
	}
	if rawSize/(2*binary.MaxVarintLen64) > count {
		return dst, errors.Newf("payload size %d too large for %d spans", rawSize, count)
	}

	s.raw, err = s.decBlock(br, rawSize)
	if err != nil {
		return dst, err
	}

	if uint64(cap(dst)) < count {
		dst = make([]Span, 0, count)
	}
	dst = dst[:0]
	raw := s.raw
	prevEnd := 0
	for i := uint64(0); i < count; i++ {
		delta, n := binary.Varint(raw)
		if n <= 0 {
			return dst, errors.Newf("span %d: invalid start", i)
		}
		raw = raw[n:]
		length, n := binary.Uvarint(raw)
		if n <= 0 {
			return dst, errors.Newf("span %d: invalid length", i)
		}
		raw = raw[n:]
		if delta < -int64(prevEnd) || delta > int64(math.MaxInt-prevEnd) {
			return dst, errors.Newf("span %d: start %d%+d out of range", i, prevEnd, delta)
		}
		start := prevEnd + int(delta)
		if length > uint64(math.MaxInt-start) {
			return dst, errors.Newf("span %d: length %d out of range", i, length)
		}
		prevEnd = start + int(length)
		dst = append(dst, Span{Start: start, End: prevEnd})
	}
	if len(raw) != 0 {
		return dst, errors.Newf("%d bytes left after %d spans", len(raw), count)
	}
	return dst, nil
}

func (s *IndexSerializer) decBlock(br *bytes.Buffer, want uint64) ([]byte, error) {
	size, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(err, "reading block size")
	}
	if size > uint64(br.Len()) {
		return nil, errors.Newf("block size (%d) extends beyond input %d", size, br.Len())
	}
	if size < 1 {
		return nil, errors.Newf("block size (%d) too small %d", size, br.Len())
	}
	typ, _ := br.ReadByte()
	size--
	compressed := br.Next(int(size))

	var dst []byte
	switch typ {
	case blockTypeUncompressed:
		if uint64(len(compressed)) != want {
			return nil, errors.New("short uncompressed block")
		}
		dst = append(s.raw[:0], compressed...)
	case blockTypeS2:
		n, err := s2.DecodedLen(compressed)
		if err != nil {
			return nil, errors.Wrap(err, "s2 block")
		}
		if uint64(n) != want {
			return nil, errors.New("s2 decompressed size mismatch")
		}
		if cap(s.raw) < n {
			s.raw = make([]byte, n)
		}
		dst, err = s2.Decode(s.raw[:n], compressed)
		if err != nil {
			return nil, errors.Wrap(err, "s2 block")
		}
	case blockTypeZstd:
		var h zstd.Header
		if err := h.Decode(compressed); err != nil {
			return nil, errors.Wrap(err, "zstd block")
		}
		// small frames may omit the content size
		if h.HasFCS && h.FrameContentSize != want {
			return nil, errors.New("zstd decompressed size mismatch")
		}
		if uint64(cap(s.raw)) < want {
			s.raw = make([]byte, 0, want)
		}
		// zDec decodes at most cap(dst) bytes
		dst, err = zDec.DecodeAll(compressed, s.raw[:0:want])
		if err != nil {
			return nil, errors.Wrap(err, "zstd block")
		}
		if uint64(len(dst)) != want {
			return nil, errors.New("zstd decompressed size mismatch")
		}
	default:
		return nil, errors.Newf("unknown compression type: %d", typ)
	}
	return dst, nil
}

const (
	blockTypeUncompressed byte = 0
	blockTypeS2           byte = 1
	blockTypeZstd         byte = 2
)

var zDec, _ = zstd.NewReader(nil, zstd.WithDecodeAllCapLimit(true))
var zEncBest, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression), zstd.WithEncoderCRC(false))

// encBlock writes a block type byte and src compressed with mode to dst.
// better selects the slower S2 encoder.
func encBlock(mode byte, better bool, src, dst []byte) []byte {
	if len(src) < 100 {
		mode = blockTypeUncompressed
	}
	switch mode {
	case blockTypeUncompressed:
		mel := len(src) + 1
		if cap(dst) < mel {
			dst = make([]byte, mel)
		}
		dst = dst[:mel]
		dst[0] = mode
		copy(dst[1:], src)
		return dst
	case blockTypeS2:
		mel := s2.MaxEncodedLen(len(src)) + 1
		if cap(dst) < mel {
			dst = make([]byte, mel)
		}
		dst = dst[:mel]
		dst[0] = mode
		var got []byte
		if better {
			got = s2.EncodeBetter(dst[1:], src)
		} else {
			got = s2.Encode(dst[1:], src)
		}
		return dst[:len(got)+1]
	case blockTypeZstd:
		mel := len(src) + 50
		if cap(dst) < mel {
			dst = make([]byte, mel)
		}
		dst = dst[:mel]
		dst[0] = mode
		return zEncBest.EncodeAll(src, dst[:1])
	}
	panic("unknown compression mode")
}
