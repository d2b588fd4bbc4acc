package racket

// RawValue sums the point values of a set of cards: face value for 2-10,
// 10 for face cards, 11 for aces.
func RawValue(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.PointValue()
	}
	return total
}
