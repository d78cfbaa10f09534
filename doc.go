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

// Package jsonskip locates JSON values without parsing them.
//
// A Scanner finds the next significant byte of a buffer by classifying
// whole windows of input at once and keeping the bitmap of the last
// window between calls. SkipContainer finds the end of an object or
// array using block masks for strings and escapes. On top of these,
// SplitND and SplitNDStream split newline delimited JSON into values.
//
// Input is never validated beyond what is needed to find value
// boundaries.
//
// The scanner may read up to Padding bytes past the end of its input.
// Use Pad to avoid a copy of the input.
package jsonskip
