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

// SkipContainer skips the body of an object or array. *pos must be just
// past the opening left delimiter. On success *pos is left one past the
// matching right delimiter and true is returned. Delimiters inside
// strings are ignored. false is returned if data[:n] ends first, and
// *pos is then left at n.
//
// No byte at or after n is read.
func SkipContainer(data []byte, pos *int, n int, left, right byte) bool {
	var (
		st            stringState
		lbraceNum     int
		rbraceNum     int
		lastLbraceNum int
	)

	// skipBlock counts the delimiters of one block. It returns the offset
	// of the closing delimiter within the block, or -1.
	skipBlock := func(b *block64) int {
		inString, _ := st.stringBits(b)
		lastLbraceNum = lbraceNum
		rbrace := b.eq(right) &^ inString
		lbrace := b.eq(left) &^ inString

		// traverse each closing delimiter
		for rbrace != 0 {
			rbraceNum++
			lbraceNum = lastLbraceNum + countOnes((rbrace-1)&lbrace)
			if lbraceNum < rbraceNum {
				assertf(rbraceNum == lbraceNum+1, "unbalanced count %d/%d", lbraceNum, rbraceNum)
				return trailingZeroes(rbrace)
			}
			rbrace &= rbrace - 1
		}
		lbraceNum = lastLbraceNum + countOnes(lbrace)
		return -1
	}

	p := *pos
	for p+64 <= n {
		b := loadBlock64(data[p:])
		if off := skipBlock(&b); off >= 0 {
			*pos = p + off + 1
			return true
		}
		p += 64
	}

	// Process the last bytes in a zeroed block so nothing past n is read.
	if p < n {
		var tail [64]byte
		copy(tail[:], data[p:n])
		b := loadBlock64(tail[:])
		if off := skipBlock(&b); off >= 0 {
			*pos = p + off + 1
			return true
		}
	}
	*pos = n
	return false
}

// SkipContainer skips the body of the container whose opening delimiter
// was just returned by SkipSpace.
func (s *Scanner) SkipContainer(left, right byte) bool {
	return SkipContainer(s.buf, &s.Pos, s.n, left, right)
}
