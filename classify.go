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
	"fmt"

	"github.com/cockroachdb/errors"
)

// Width is the number of bytes classified in one window.
type Width int

const (
	// Width16 classifies 16 byte windows with 4 bits per byte.
	Width16 Width = 16
	// Width64 classifies 64 byte windows with 1 bit per byte.
	Width64 Width = 64

	// Padding is the number of bytes the scanner may read past the end of
	// the input. It covers the widest window.
	Padding = 64
)

func (w Width) String() string {
	switch w {
	case Width16:
		return "16"
	case Width64:
		return "64"
	}
	return fmt.Sprintf("invalid(%d)", int(w))
}

// classifier maps a window of bytes to a bitmap of its non-whitespace
// bytes. Each byte owns a group of 1<<shift() bits, all set when the byte
// is not whitespace. p must hold at least width() bytes.
type classifier interface {
	width() int
	shift() uint
	nonSpaceBits(p []byte) uint64
}

var isSpace = [256]bool{
	' ':  true,
	'\t': true,
	'\n': true,
	'\r': true,
}

// narrowClassifier handles a 16 byte window, 4 bits per byte.
type narrowClassifier struct{}

func (narrowClassifier) width() int  { return 16 }
func (narrowClassifier) shift() uint { return 2 }

func (narrowClassifier) nonSpaceBits(p []byte) uint64 {
	_ = p[15]
	lo := binary.LittleEndian.Uint64(p)
	hi := binary.LittleEndian.Uint64(p[8:])
	return nibbleMask(^spaceLanes(lo)) | nibbleMask(^spaceLanes(hi))<<32
}

// wideClassifier handles a 64 byte window, 1 bit per byte.
type wideClassifier struct{}

func (wideClassifier) width() int  { return 64 }
func (wideClassifier) shift() uint { return 0 }

func (wideClassifier) nonSpaceBits(p []byte) (m uint64) {
	_ = p[63]
	for i := 0; i < 8; i++ {
		w := binary.LittleEndian.Uint64(p[i*8:])
		m |= moveMask(^spaceLanes(w)) << (i * 8)
	}
	return m
}

// scalarClassifier is a byte at a time classifier for any window up to
// 64 bytes. It uses the same encoding as the vector classifiers of the
// same width and serves as their reference.
type scalarClassifier struct {
	w  int
	sh uint
}

func (s scalarClassifier) width() int  { return s.w }
func (s scalarClassifier) shift() uint { return s.sh }

func (s scalarClassifier) nonSpaceBits(p []byte) (m uint64) {
	group := uint64(1)<<(1<<s.sh) - 1
	for i, c := range p[:s.w] {
		if !isSpace[c] {
			m |= group << (uint(i) << s.sh)
		}
	}
	return m
}

func newClassifier(w Width) (classifier, error) {
	if scalarOnly {
		switch w {
		case Width16:
			return scalarClassifier{w: 16, sh: 2}, nil
		case Width64:
			return scalarClassifier{w: 64}, nil
		}
	}
	switch w {
	case Width16:
		return narrowClassifier{}, nil
	case Width64:
		return wideClassifier{}, nil
	}
	return nil, errors.Newf("unsupported window width %d", int(w))
}
