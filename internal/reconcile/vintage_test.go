package reconcile

import "testing"

func TestInferVintage(t *testing.T) {
	cases := []struct {
		name string
		year int
		ok   bool
	}{
		{"ttc-bus-delay-data-2022.xlsx", 2022, true},
		{"delay_data_2025.json", 2025, true},
		{"TTC Bus Delay Data since 2025", 2025, true},
		{"bus-delays.csv", 0, false},
		{"report-1999.xlsx", 0, false},
		{"file-202212345.bin", 0, false}, // embedded in a longer digit run
		{"2014-delays.xlsx", 2014, true},
	}

	for _, tc := range cases {
		year, ok := InferVintage(tc.name)
		if ok != tc.ok || year != tc.year {
			t.Errorf("InferVintage(%q) = (%d, %v), expected (%d, %v)", tc.name, year, ok, tc.year, tc.ok)
		}
	}
}
