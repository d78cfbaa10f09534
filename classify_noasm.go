//go:build noasm
// +build noasm

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

const scalarOnly = true

// DefaultWidth returns the window width used when vector code is disabled.
func DefaultWidth() Width {
	return Width64
}

// CPU returns a short description of the host CPU for diagnostics.
func CPU() string {
	return "generic (noasm)"
}
