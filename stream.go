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
	"bufio"
	"io"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
)

const defaultChunkSize = 10 << 20

// Chunk is a run of complete lines read from a stream, with the spans of
// the values it holds.
type Chunk struct {
	// Data holds the lines. Spans index into it.
	Data []byte

	// Offset is the stream position of Data[0].
	Offset int64

	Spans []Span
}

// Stream is a chunk or an error delivered by SplitNDStream.
type Stream struct {
	Value *Chunk
	Error error
}

// SplitNDStream will read newline delimited JSON from r and deliver the
// value spans of each chunk on res. Chunks are split concurrently but
// delivered in stream order.
//
// A chunk is the configured chunk size plus the rest of the line it ends
// in, so a value spanning lines may be cut at a chunk boundary.
//
// The last Stream carries io.EOF if the input ended cleanly, otherwise the
// first error met. res is closed after it.
//
// Chunks sent back on reuse, which may be nil, have their buffers reused.
// A chunk must not be used after it has been sent back.
func SplitNDStream(r io.Reader, res chan<- Stream, reuse <-chan *Chunk, opts ...Option) {
	o := defaultOptions()
	err := o.apply(opts)
	if err == nil {
		_, err = o.classifier()
	}
	if err != nil {
		go func() {
			res <- Stream{Error: err}
			close(res)
		}()
		return
	}

	size := o.chunkSize
	conc := o.concurrency
	if conc <= 0 {
		conc = (runtime.GOMAXPROCS(0) + 1) / 2
	}
	buf := bufio.NewReaderSize(r, size)
	tmpPool := sync.Pool{New: func() interface{} {
		return make([]byte, size+1024)
	}}
	queue := make(chan chan Stream, conc)
	go func() {
		// Forward finished items in order.
		defer close(res)
		end := false
		for items := range queue {
			i := <-items
			select {
			case res <- i:
			default:
				if !end {
					// Block if we haven't returned an error
					res <- i
				}
			}
			if i.Error != nil {
				end = true
			}
		}
	}()
	go func() {
		defer close(queue)
		var offset int64
		for {
			tmp := tmpPool.Get().([]byte)
			tmp = tmp[:size]
			n, err := buf.Read(tmp)
			if err != nil && err != io.EOF {
				queueError(queue, errors.Wrap(err, "reading input"))
				return
			}
			tmp = tmp[:n]
			// Read until Newline
			if err != io.EOF {
				b, err2 := buf.ReadBytes('\n')
				if err2 != nil && err2 != io.EOF {
					queueError(queue, errors.Wrap(err2, "reading input"))
					return
				}
				tmp = append(tmp, b...)
				// Forward io.EOF
				err = err2
			}

			if len(tmp) > 0 {
				result := make(chan Stream)
				queue <- result
				go func(tmp []byte, offset int64) {
					chunk := &Chunk{}
					select {
					case v := <-reuse:
						if cap(v.Data) >= size+1024 {
							tmpPool.Put(v.Data[:0])
						}
						chunk = v
					default:
					}
					chunk.Data = zeroPad(tmp)
					chunk.Offset = offset
					result <- splitChunk(chunk, &o)
				}(tmp, offset)
				offset += int64(len(tmp))
			} else {
				tmpPool.Put(tmp)
			}
			if err != nil {
				// Should only really be io.EOF
				queueError(queue, err)
				return
			}
		}
	}()
}

func splitChunk(chunk *Chunk, o *options) Stream {
	s, err := newScanner(chunk.Data, o)
	if err == nil {
		chunk.Spans, err = s.appendSpans(chunk.Spans[:0])
	}
	if err != nil {
		return Stream{Error: errors.Wrapf(err, "splitting chunk at offset %d", chunk.Offset)}
	}
	return Stream{Value: chunk}
}

// zeroPad makes sure Padding zero bytes follow b within its capacity,
// so the scanner can use b in place.
func zeroPad(b []byte) []byte {
	if cap(b)-len(b) < Padding {
		return padCopy(b)
	}
	tail := b[len(b) : len(b)+Padding]
	for i := range tail {
		tail[i] = 0
	}
	return b
}

func queueError(queue chan chan Stream, err error) {
	result := make(chan Stream, 0)
	queue <- result
	result <- Stream{
		Value: nil,
		Error: err,
	}
}
