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
	"io"
)

// Span is the byte range [Start, End) of one top level value.
type Span struct {
	Start, End int
}

// Len returns the length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Bytes returns the value covered by the span.
func (s Span) Bytes(b []byte) []byte {
	return b[s.Start:s.End]
}

// SplitND returns the spans of all whitespace separated top level values
// in b. Newline delimited JSON is the usual input, but values may also
// share a line or span several lines.
// Values are located, not validated.
func SplitND(b []byte, opts ...Option) ([]Span, error) {
	o := defaultOptions()
	if err := o.apply(opts); err != nil {
		return nil, err
	}
	s, err := newScanner(b, &o)
	if err != nil {
		return nil, err
	}
	return s.appendSpans(nil)
}

// appendSpans appends the spans of the remaining values to dst.
func (s *Scanner) appendSpans(dst []Span) ([]Span, error) {
	for {
		start, end, err := s.SkipOne()
		if err == io.EOF {
			return dst, nil
		}
		if err != nil {
			return dst, err
		}
		dst = append(dst, Span{Start: start, End: end})
	}
}
