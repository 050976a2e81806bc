package numberutils

// IsDigits checks if the given string contains only ASCII digits (0-9).
// It returns true if all characters in the string are digits, false otherwise.
func IsDigits(str string) bool {
	for i := 0; i < len(str); i++ {
		if str[i] < '0' || str[i] > '9' {
			return false
		}
	}
	return true
}

// IsFixedLengthDigits reports whether str is exactly n ASCII digits.
func IsFixedLengthDigits(str string, n int) bool {
	return len(str) == n && IsDigits(str)
}
