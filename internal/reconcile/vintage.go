package reconcile

import "strconv"

// InferVintage extracts the source year from a filename: the first 4-digit
// run beginning "20" that is not part of a longer digit run.
func InferVintage(name string) (int, bool) {
	for i := 0; i+4 <= len(name); i++ {
		if name[i] != '2' || name[i+1] != '0' {
			continue
		}
		if !isDigit(name[i+2]) || !isDigit(name[i+3]) {
			continue
		}
		// Reject tokens embedded in longer digit runs.
		if i > 0 && isDigit(name[i-1]) {
			continue
		}
		if i+4 < len(name) && isDigit(name[i+4]) {
			continue
		}
		year, err := strconv.Atoi(name[i : i+4])
		if err != nil {
			continue
		}
		return year, true
	}
	return 0, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
