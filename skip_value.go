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
	"io"
)

// Little endian images of the literal bytes.
const (
	trueAtom = uint32(0x65757274) // "true"
	nullAtom = uint32(0x6c6c756e) // "null"
	alseAtom = uint32(0x65736c61) // "alse"
)

// isDelimiter reports the bytes that may directly follow a scalar value.
var isDelimiter = [256]bool{
	' ':  true,
	'\t': true,
	'\n': true,
	'\r': true,
	',':  true,
	':':  true,
	'}':  true,
	']':  true,
}

func eqBytes4(p []byte, v uint32) bool {
	return binary.LittleEndian.Uint32(p) == v
}

func atom(s string) uint32 {
	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
}

// SkipString skips a string body. *pos must be just past the opening
// quote. On success *pos is left one past the closing quote.
// false is returned, with *pos at n, if data[:n] ends first.
func SkipString(data []byte, pos *int, n int) bool {
	var prevOddBackslash uint64
	closing := func(b *block64) int {
		oddEnds := findOddBackslashSequences(b.eq('\\'), &prevOddBackslash)
		if quotes := b.eq('"') &^ oddEnds; quotes != 0 {
			return trailingZeroes(quotes)
		}
		return -1
	}

	p := *pos
	for p+64 <= n {
		b := loadBlock64(data[p:])
		if off := closing(&b); off >= 0 {
			*pos = p + off + 1
			return true
		}
		p += 64
	}
	if p < n {
		var tail [64]byte
		copy(tail[:], data[p:n])
		b := loadBlock64(tail[:])
		if off := closing(&b); off >= 0 {
			*pos = p + off + 1
			return true
		}
	}
	*pos = n
	return false
}

// SkipLiteral skips lit if data[*pos:n] starts with it.
func SkipLiteral(data []byte, pos *int, n int, lit string) bool {
	p := *pos
	if n-p < len(lit) {
		return false
	}
	var ok bool
	switch len(lit) {
	case 4:
		ok = eqBytes4(data[p:], atom(lit))
	case 5:
		ok = data[p] == lit[0] && eqBytes4(data[p+1:], atom(lit[1:]))
	default:
		ok = string(data[p:p+len(lit)]) == lit
	}
	if ok {
		*pos = p + len(lit)
	}
	return ok
}

// SkipNumber skips a JSON number starting at *pos.
func SkipNumber(data []byte, pos *int, n int) bool {
	p := *pos
	digits := func() int {
		start := p
		for p < n && data[p] >= '0' && data[p] <= '9' {
			p++
		}
		return p - start
	}

	if p < n && data[p] == '-' {
		p++
	}
	switch {
	case p >= n:
		return false
	case data[p] == '0':
		p++
	case data[p] >= '1' && data[p] <= '9':
		digits()
	default:
		return false
	}
	if p < n && data[p] == '.' {
		p++
		if digits() == 0 {
			return false
		}
	}
	if p < n && (data[p] == 'e' || data[p] == 'E') {
		p++
		if p < n && (data[p] == '+' || data[p] == '-') {
			p++
		}
		if digits() == 0 {
			return false
		}
	}
	*pos = p
	return true
}

// SkipOne skips whitespace and a single value, returning the offsets of
// the value. io.EOF is returned when only whitespace remains.
// Containers and strings are not validated beyond finding their end.
func (s *Scanner) SkipOne() (start, end int, err error) {
	c := s.SkipSpace()
	start = s.Pos - 1
	if start >= s.n {
		s.Pos = s.n
		return s.n, s.n, io.EOF
	}

	switch c {
	case '{':
		if !s.SkipContainer('{', '}') {
			return start, s.Pos, syntaxError(start, ErrUnterminatedContainer)
		}
	case '[':
		if !s.SkipContainer('[', ']') {
			return start, s.Pos, syntaxError(start, ErrUnterminatedContainer)
		}
	case '"':
		if !SkipString(s.buf, &s.Pos, s.n) {
			return start, s.Pos, syntaxError(start, ErrUnterminatedString)
		}
	case 't':
		if !s.skipAtom(start, trueAtom) {
			return start, s.Pos, syntaxError(start, ErrInvalidLiteral)
		}
	case 'n':
		if !s.skipAtom(start, nullAtom) {
			return start, s.Pos, syntaxError(start, ErrInvalidLiteral)
		}
	case 'f':
		if !s.skipAtom(start+1, alseAtom) {
			return start, s.Pos, syntaxError(start, ErrInvalidLiteral)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.Pos = start
		if !SkipNumber(s.buf, &s.Pos, s.n) || !s.atDelimiter() {
			return start, s.Pos, syntaxError(start, ErrInvalidNumber)
		}
	default:
		return start, s.Pos, syntaxError(start, ErrUnexpectedByte)
	}
	return start, s.Pos, nil
}

// skipAtom matches the four bytes at p against v. The padding after the
// input makes the 4 byte load safe even at the very end.
func (s *Scanner) skipAtom(p int, v uint32) bool {
	if p+4 > s.n || !eqBytes4(s.buf[p:], v) {
		return false
	}
	s.Pos = p + 4
	return s.atDelimiter()
}

func (s *Scanner) atDelimiter() bool {
	return s.Pos >= s.n || isDelimiter[s.buf[s.Pos]]
}
