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

import "github.com/cockroachdb/errors"

// assertf panics when cond is false and the package was built with the
// invariants tag. Violations are programmer errors, never input errors.
func assertf(cond bool, format string, args ...interface{}) {
	if invariantsEnabled && !cond {
		panic(errors.AssertionFailedf(format, args...))
	}
}
