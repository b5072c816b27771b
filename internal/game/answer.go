package game

// CheckAnswer reports whether the selected options add up to the expected
// sum. The expected sum comes from the client; issued problems are not
// tracked server side.
func CheckAnswer(selected []int, expected int) bool {
	sum := 0
	for _, n := range selected {
		sum += n
	}
	return sum == expected
}
