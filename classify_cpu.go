//go:build !noasm
// +build !noasm

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

import "github.com/klauspost/cpuid/v2"

const scalarOnly = false

// DefaultWidth returns the window width matching the vector unit of the
// host CPU. 256 bit and wider x86 vectors use 64 byte windows, ARM NEON
// uses 16 byte windows with a nibble mask.
func DefaultWidth() Width {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX2):
		return Width64
	case cpuid.CPU.Supports(cpuid.ASIMD):
		return Width16
	case cpuid.CPU.Supports(cpuid.SSE2):
		return Width16
	}
	return Width64
}

// CPU returns a short description of the host CPU for diagnostics.
func CPU() string {
	if name := cpuid.CPU.BrandName; name != "" {
		return name
	}
	return cpuid.CPU.VendorID.String()
}
