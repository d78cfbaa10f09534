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
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors wrapped by [SyntaxError].
var (
	ErrUnterminatedContainer = errors.New("unterminated object or array")
	ErrUnterminatedString    = errors.New("unterminated string")
	ErrInvalidLiteral        = errors.New("invalid literal")
	ErrInvalidNumber         = errors.New("invalid number")
	ErrUnexpectedByte        = errors.New("unexpected byte")
)

// SyntaxError reports the offset of the value that could not be skipped.
type SyntaxError struct {
	Offset int   // offset of the first byte of the value
	Err    error // one of the sentinel errors
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsonskip: %v at offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying sentinel for use with errors.Is.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(offset int, err error) error {
	return &SyntaxError{Offset: offset, Err: err}
}
