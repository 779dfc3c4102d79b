package dtmf

import "strings"

// Pair is the low (row) and high (column) frequency of a keypad symbol, in Hz.
type Pair struct {
	Low  float64
	High float64
}

var (
	rows    = [4]float64{697, 770, 852, 941}
	columns = [4]float64{1209, 1336, 1477, 1633}

	// keypad is laid out as printed on a telephone, with the extended A-D column on the right.
	keypad = [4][4]rune{
		{'1', '2', '3', 'A'},
		{'4', '5', '6', 'B'},
		{'7', '8', '9', 'C'},
		{'*', '0', '#', 'D'},
	}
)

// Lookup returns the frequency pair of a keypad symbol. Symbols are case-sensitive; callers
// upper-case input with Normalize first.
func Lookup(symbol rune) (Pair, bool) {
	for r, row := range keypad {
		for c, k := range row {
			if k == symbol {
				return Pair{Low: rows[r], High: columns[c]}, true
			}
		}
	}
	return Pair{}, false
}

// Symbols returns the 16 keypad symbols, row by row.
func Symbols() []rune {
	out := make([]rune, 0, len(keypad)*len(keypad[0]))
	for _, row := range keypad {
		out = append(out, row[:]...)
	}
	return out
}

// Normalize removes comma separators and upper-cases the sequence. Characters that are not
// keypad symbols are kept; rendering skips them.
func Normalize(seq string) string {
	return strings.ToUpper(strings.ReplaceAll(seq, ",", ""))
}
