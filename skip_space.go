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

// Scanner walks a JSON buffer one significant byte at a time.
//
// The bitmap of the last classified window is kept between calls, so
// consecutive tokens that land in the same window are found without
// classifying the window again.
//
// A Scanner is not safe for concurrent use. Several scanners may share
// the same input.
type Scanner struct {
	// Pos is the offset of the next byte to examine.
	// It may be moved freely between 0 and Len().
	Pos int

	buf []byte // input followed by at least Padding zero bytes
	n   int

	cls classifier
	w   int
	sh  uint

	// nonSpaceBits describes the window [nonSpaceEnd-w, nonSpaceEnd).
	nonSpaceEnd  int
	nonSpaceBits uint64
}

// Pad returns b with Padding zero bytes available after its length.
// b is returned unchanged if its capacity already holds them,
// otherwise a padded copy is returned.
func Pad(b []byte) []byte {
	if hasPadding(b) {
		return b
	}
	return padCopy(b)
}

func padCopy(b []byte) []byte {
	p := make([]byte, len(b), len(b)+Padding)
	copy(p, b)
	return p
}

func hasPadding(b []byte) bool {
	if cap(b)-len(b) < Padding {
		return false
	}
	for _, c := range b[len(b) : len(b)+Padding] {
		if c != 0 {
			return false
		}
	}
	return true
}

// NewScanner returns a scanner positioned at the start of data.
// data is never modified. It is scanned in place when it was returned
// by Pad, otherwise it is copied.
func NewScanner(data []byte, opts ...Option) (*Scanner, error) {
	o := defaultOptions()
	if err := o.apply(opts); err != nil {
		return nil, err
	}
	return newScanner(data, &o)
}

func newScanner(data []byte, o *options) (*Scanner, error) {
	cls, err := o.classifier()
	if err != nil {
		return nil, err
	}
	buf := data
	if o.copyInput || !hasPadding(data) {
		buf = padCopy(data)
	}
	return &Scanner{
		buf: buf[:len(data)+Padding],
		n:   len(data),
		cls: cls,
		w:   cls.width(),
		sh:  cls.shift(),
	}, nil
}

// Len returns the length of the input.
func (s *Scanner) Len() int {
	return s.n
}

// Bytes returns the input. The returned slice must not be modified.
func (s *Scanner) Bytes() []byte {
	return s.buf[:s.n]
}

// Width returns the classification window of the scanner.
func (s *Scanner) Width() Width {
	return Width(s.w)
}

// Window returns the end offset and bitmap of the cached window.
// end is 0 when nothing has been classified yet.
func (s *Scanner) Window() (end int, bits uint64) {
	return s.nonSpaceEnd, s.nonSpaceBits
}

// Reset moves the cursor to pos and drops the cached window.
func (s *Scanner) Reset(pos int) {
	s.Pos = pos
	s.nonSpaceEnd = 0
	s.nonSpaceBits = 0
}

// SkipSpace advances past whitespace and returns the first significant
// byte, leaving Pos one past it. At the end of the input 0 is returned
// and Pos is Len()+1.
func (s *Scanner) SkipSpace() byte {
	buf, pos := s.buf, s.Pos
	if pos > s.n {
		return 0
	}

	// fast path for single space
	if c := buf[pos]; !isSpace[c] {
		s.Pos = pos + 1
		return c
	}
	if c := buf[pos+1]; !isSpace[c] {
		s.Pos = pos + 2
		return c
	}

	// The rest of the cached window can answer without classifying again.
	end := s.nonSpaceEnd
	if cur, blockStart := pos+2, end-s.w; cur < end && cur >= blockStart {
		if invariantsEnabled {
			ref := scalarClassifier{w: s.w, sh: s.sh}
			assertf(ref.nonSpaceBits(buf[blockStart:]) == s.nonSpaceBits,
				"window cache for [%d,%d) does not match the input", blockStart, end)
		}
		mask := uint64(1)<<(uint(cur-blockStart)<<s.sh) - 1
		nonSpace := s.nonSpaceBits &^ mask
		if nonSpace != 0 {
			pos = blockStart + trailingZeroes(nonSpace)>>s.sh
			s.Pos = pos + 1
			return buf[pos]
		}
		// remainder of the window is whitespace
		pos = end
	}

	for {
		nonSpace := s.cls.nonSpaceBits(buf[pos:])
		if nonSpace != 0 {
			s.nonSpaceEnd = pos + s.w
			s.nonSpaceBits = nonSpace
			pos += trailingZeroes(nonSpace) >> s.sh
			s.Pos = pos + 1
			return buf[pos]
		}
		pos += s.w
	}
}
