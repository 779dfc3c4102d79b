package dtmf

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		symbol    rune
		low, high float64
	}{
		{'1', 697, 1209}, {'2', 697, 1336}, {'3', 697, 1477}, {'A', 697, 1633},
		{'4', 770, 1209}, {'5', 770, 1336}, {'6', 770, 1477}, {'B', 770, 1633},
		{'7', 852, 1209}, {'8', 852, 1336}, {'9', 852, 1477}, {'C', 852, 1633},
		{'*', 941, 1209}, {'0', 941, 1336}, {'#', 941, 1477}, {'D', 941, 1633},
	}

	for _, tt := range tests {
		pair, ok := Lookup(tt.symbol)
		if !ok {
			t.Errorf("Lookup(%q): not found", tt.symbol)
			continue
		}
		if pair.Low != tt.low || pair.High != tt.high {
			t.Errorf("Lookup(%q) = (%v, %v), expected (%v, %v)", tt.symbol, pair.Low, pair.High, tt.low, tt.high)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, r := range []rune{'a', 'd', 'E', ',', ' ', '-', 'p', 'w', 0} {
		if _, ok := Lookup(r); ok {
			t.Errorf("Lookup(%q): expected not found", r)
		}
	}
}

func TestSymbols(t *testing.T) {
	symbols := Symbols()
	if len(symbols) != 16 {
		t.Fatalf("expected 16 symbols, got %d", len(symbols))
	}
	if string(symbols) != "123A456B789C*0#D" {
		t.Errorf("unexpected symbol order %q", string(symbols))
	}

	// the returned slice is a copy
	symbols[0] = 'X'
	if _, ok := Lookup('1'); !ok {
		t.Error("mutating Symbols() changed the keypad")
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"1,2,3":     "123",
		"060123456": "060123456",
		"a,b,c,d":   "ABCD",
		"*#,,":      "*#",
		"":          "",
		"12x3":      "12X3",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, expected %q", in, got, want)
		}
	}
}
