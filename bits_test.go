package jsonskip

import (
	"strings"
	"testing"
)

const demoJSON = `{"Image":{"Width":800,"Height":600,"Title":"View from 15th Floor","Thumbnail":{"Url":"http://www.example.com/image/481989943","Height":125,"Width":100},"Animated":false,"IDs":[116,943,234,38793]}}`

func TestFindOddBackslashSequences(t *testing.T) {

	testCases := []struct {
		prevEndsOdd      uint64
		input            string
		expected         uint64
		endsOddBackslash uint64
	}{
		{0, `                                                                `, 0x0, 0},
		{0, `\"                                                              `, 0x2, 0},
		{0, `  \"                                                            `, 0x8, 0},
		{0, `        \"                                                      `, 0x200, 0},
		{0, `                           \"                                   `, 0x10000000, 0},
		{0, `                               \"                               `, 0x100000000, 0},
		{0, `                                                              \"`, 0x8000000000000000, 0},
		{0, `                                                               \`, 0x0, 1},
		{0, `\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"`, 0xaaaaaaaaaaaaaaaa, 0},
		{0, `"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\`, 0x5555555555555554, 1},
		{1, `                                                                `, 0x1, 0},
		{1, `\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"`, 0xaaaaaaaaaaaaaaa8, 0},
		{1, `"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\"\`, 0x5555555555555555, 1},
	}

	for i, tc := range testCases {
		prevIterEndsOddBackslash := tc.prevEndsOdd
		b := loadBlock64([]byte(tc.input))
		mask := findOddBackslashSequences(b.eq('\\'), &prevIterEndsOddBackslash)

		if mask != tc.expected {
			t.Errorf("TestFindOddBackslashSequences(%d): got: 0x%x want: 0x%x", i, mask, tc.expected)
		}

		if prevIterEndsOddBackslash != tc.endsOddBackslash {
			t.Errorf("TestFindOddBackslashSequences(%d): got: %v want: %v", i, prevIterEndsOddBackslash, tc.endsOddBackslash)
		}
	}

	// prepend test string with longer space, making sure the carry into the next block is fine
	for i := uint(1); i <= 128; i++ {
		test := strings.Repeat(" ", int(i-1)) + `\"` + strings.Repeat(" ", 62+64)

		prevIterEndsOddBackslash := uint64(0)
		lo, hi := loadBlock64([]byte(test)), loadBlock64([]byte(test[64:]))
		maskLo := findOddBackslashSequences(lo.eq('\\'), &prevIterEndsOddBackslash)
		maskHi := findOddBackslashSequences(hi.eq('\\'), &prevIterEndsOddBackslash)

		if i < 64 {
			if maskLo != 1<<i || maskHi != 0 {
				t.Errorf("TestFindOddBackslashSequences(%d): got: lo = 0x%x; hi = 0x%x  want: 0x%x 0x0", i, maskLo, maskHi, uint64(1)<<i)
			}
		} else {
			if maskLo != 0 || maskHi != 1<<(i-64) {
				t.Errorf("TestFindOddBackslashSequences(%d): got: lo = 0x%x; hi = 0x%x  want:  0x0 0x%x", i, maskLo, maskHi, uint64(1)<<(i-64))
			}
		}
	}
}

func TestFindQuoteMaskAndBits(t *testing.T) {

	testCases := []struct {
		input    string
		expected uint64
	}{
		{`  ""                                                              `, 0x4},
		{`  "-"                                                             `, 0xc},
		{`  "--"                                                            `, 0x1c},
		{`  "---"                                                           `, 0x3c},
		{`  "-------------"                                                 `, 0xfffc},
		{`  "---------------------------------------"                       `, 0x3fffffffffc},
		{`"----------------------------------------------------------------"`, 0xffffffffffffffff},
	}

	for i, tc := range testCases {
		oddEnds := uint64(0)
		prevIterInsideQuote, quoteBits := uint64(0), uint64(0)

		b := loadBlock64([]byte(tc.input))
		mask := findQuoteMaskAndBits(&b, oddEnds, &prevIterInsideQuote, &quoteBits)

		if mask != tc.expected {
			t.Errorf("TestFindQuoteMaskAndBits(%d): got: 0x%x want: 0x%x", i, mask, tc.expected)
		}
	}
}

func TestQuoteMaskCarry(t *testing.T) {
	// A string opened in the first block and closed in the second.
	input := strings.Repeat(" ", 60) + `"abc` + `def"` + strings.Repeat(" ", 60)

	var st stringState
	lo, hi := loadBlock64([]byte(input)), loadBlock64([]byte(input[64:]))
	maskLo, _ := st.stringBits(&lo)
	maskHi, quotes := st.stringBits(&hi)

	if want := uint64(0xf) << 60; maskLo != want {
		t.Errorf("TestQuoteMaskCarry: lo got: 0x%x want: 0x%x", maskLo, want)
	}
	if want := uint64(0x7); maskHi != want {
		t.Errorf("TestQuoteMaskCarry: hi got: 0x%x want: 0x%x", maskHi, want)
	}
	if want := uint64(0x8); quotes != want {
		t.Errorf("TestQuoteMaskCarry: quotes got: 0x%x want: 0x%x", quotes, want)
	}
	if st.prevInsideQuote != 0 {
		t.Errorf("TestQuoteMaskCarry: still inside quote")
	}
}

func TestFindWhitespace(t *testing.T) {

	testCases := []struct {
		input      string
		expectedWs uint64
	}{
		{`aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa`, 0x0},
		{` aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa`, 0x1},
		{`:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa`, 0x0},
		{` :aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa`, 0x1},
		{`: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa`, 0x2},
		{`aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa `, 0x8000000000000000},
		{`aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa:`, 0x0},
		{`a a a a a a a a a a a a a a a a a a a a a a a a a a a a a a a a `, 0xaaaaaaaaaaaaaaaa},
		{` a a a a a a a a a a a a a a a a a a a a a a a a a a a a a a a a`, 0x5555555555555555},
		{`a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:`, 0x0},
		{`:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a:a`, 0x0},
		{`                                                                `, 0xffffffffffffffff},
		{`{                                                               `, 0xfffffffffffffffe},
		{`}                                                               `, 0xfffffffffffffffe},
		{`"                                                               `, 0xfffffffffffffffe},
		{`::::::::::::::::::::::::::::::::::::::::::::::::::::::::::::::::`, 0x0},
		{`{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{`, 0x0},
		{`}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}}`, 0x0},
		{`  :                                                             `, 0xfffffffffffffffb},
		{`    :                                                           `, 0xffffffffffffffef},
		{`      :     :      :          :             :                  :`, 0x7fffefffbff7efbf},
		{demoJSON, 0x421000000000000},
	}

	for i, tc := range testCases {
		nonSpace := wideClassifier{}.nonSpaceBits([]byte(tc.input))

		if ws := ^nonSpace; ws != tc.expectedWs {
			t.Errorf("TestFindWhitespace(%d): got: 0x%x want: 0x%x", i, ws, tc.expectedWs)
		}
	}
}

func TestPrefixXor(t *testing.T) {
	testCases := []struct {
		input    uint64
		expected uint64
	}{
		{0x0, 0x0},
		{0x1, 0xffffffffffffffff},
		{0x9, 0x7},
		{0x8000000000000000, 0x8000000000000000},
		{0x0000000000100004, 0x00000000000ffffc},
	}

	for i, tc := range testCases {
		if got := prefixXor(tc.input); got != tc.expected {
			t.Errorf("TestPrefixXor(%d): got: 0x%x want: 0x%x", i, got, tc.expected)
		}
	}
}
