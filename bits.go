/*
 * MinIO Cloud Storage, (C) 2022 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package jsonskip

import (
	"encoding/binary"
	"math/bits"
)

// Word-at-a-time constants. Every byte lane of a uint64 is treated
// as one vector lane.
const (
	lanes01 = 0x0101010101010101
	lanes7f = 0x7f7f7f7f7f7f7f7f
	lanes80 = 0x8080808080808080

	evenBits = 0x5555555555555555
	oddBits  = ^uint64(evenBits)
)

// zeroLanes returns a word with 0x80 in every byte lane of x that is zero
// and 0x00 in every other lane. The result is exact, no lane borrows
// from its neighbour.
func zeroLanes(x uint64) uint64 {
	return ^((x&lanes7f + lanes7f) | x | lanes7f)
}

// eqLanes returns 0x80 in every lane of x equal to c.
func eqLanes(x uint64, c byte) uint64 {
	return zeroLanes(x ^ (lanes01 * uint64(c)))
}

// spaceLanes returns 0x80 in every lane of x holding JSON whitespace.
func spaceLanes(x uint64) uint64 {
	return eqLanes(x, ' ') | eqLanes(x, '\t') | eqLanes(x, '\n') | eqLanes(x, '\r')
}

// moveMask packs the high bit of each lane into one byte, lane 0 in bit 0.
func moveMask(x uint64) uint64 {
	return ((x & lanes80) * 0x0002040810204081) >> 56
}

// nibbleMask narrows lane flags to 4 bits per lane, lane 0 in bits 0-3.
// This is the layout a 128-bit compare followed by a shift-right-narrow
// by 4 produces.
func nibbleMask(x uint64) uint64 {
	full := ((x & lanes80) >> 7) * 0xff
	y := (full >> 4) & 0x00ff00ff00ff00ff
	y = (y | y>>8) & 0x0000ffff0000ffff
	return (y | y>>16) & 0xffffffff
}

// block64 is a 64 byte block loaded as eight little endian words.
type block64 [8]uint64

func loadBlock64(p []byte) (b block64) {
	_ = p[63]
	for i := range b {
		b[i] = binary.LittleEndian.Uint64(p[i*8:])
	}
	return b
}

// eq returns a bitmap with bit i set when byte i of the block equals c.
func (b *block64) eq(c byte) (m uint64) {
	for i, w := range b {
		m |= moveMask(eqLanes(w, c)) << (i * 8)
	}
	return m
}

func trailingZeroes(x uint64) int {
	return bits.TrailingZeros64(x)
}

func countOnes(x uint64) int {
	return bits.OnesCount64(x)
}

// prefixXor computes the running xor of x from bit 0 upwards.
// Bit i of the result is set when an odd number of bits at or below i
// are set in x. It is equivalent to a carry-less multiply by all ones.
func prefixXor(x uint64) uint64 {
	x ^= x << 1
	x ^= x << 2
	x ^= x << 4
	x ^= x << 8
	x ^= x << 16
	x ^= x << 32
	return x
}

// findOddBackslashSequences returns the positions directly following an
// odd length run of backslashes, i.e. the characters that are escaped.
// prevIterEndsOddBackslash is 0 or 1 and carries a run that is still
// open at the end of the previous block.
func findOddBackslashSequences(bsBits uint64, prevIterEndsOddBackslash *uint64) uint64 {
	startEdges := bsBits &^ (bsBits << 1)

	// flip lowest if we have an odd-length run at the end of the prior iteration
	evenStartMask := evenBits ^ *prevIterEndsOddBackslash
	evenStarts := startEdges & evenStartMask
	oddStarts := startEdges &^ evenStartMask
	evenCarries := bsBits + evenStarts

	oddCarries, iterEndsOddBackslash := bits.Add64(bsBits, oddStarts, 0)

	// bit zero is a potential end if the previous block had an open odd run
	oddCarries |= *prevIterEndsOddBackslash
	*prevIterEndsOddBackslash = iterEndsOddBackslash

	evenCarryEnds := evenCarries &^ bsBits
	oddCarryEnds := oddCarries &^ bsBits
	evenStartOddEnd := evenCarryEnds & oddBits
	oddStartEvenEnd := oddCarryEnds & evenBits
	return evenStartOddEnd | oddStartEvenEnd
}

// findQuoteMaskAndBits returns the mask of bytes inside a string. The
// opening quote is included, the closing quote is not. The unescaped quote
// positions are returned in quoteBits.
func findQuoteMaskAndBits(b *block64, oddEnds uint64, prevIterInsideQuote, quoteBits *uint64) (quoteMask uint64) {
	*quoteBits = b.eq('"') &^ oddEnds
	quoteMask = prefixXor(*quoteBits) ^ *prevIterInsideQuote

	// all ones if the block ended inside a string
	*prevIterInsideQuote = uint64(int64(quoteMask) >> 63)
	return quoteMask
}

// stringState carries the escape and in-string state between blocks.
type stringState struct {
	prevOddBackslash uint64
	prevInsideQuote  uint64
}

// stringBits returns the in-string mask of b and the unescaped quotes.
func (s *stringState) stringBits(b *block64) (inString, quotes uint64) {
	oddEnds := findOddBackslashSequences(b.eq('\\'), &s.prevOddBackslash)
	inString = findQuoteMaskAndBits(b, oddEnds, &s.prevInsideQuote, &quotes)
	return inString, quotes
}
