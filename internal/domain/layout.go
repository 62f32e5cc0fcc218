package domain

import (
	"fmt"
	"strconv"
)

// RowRange assigns a tier to the rows FromRow through ToRow, inclusive.
type RowRange struct {
	Tier    SeatTier
	FromRow byte
	ToRow   byte
}

type SeatLayout struct {
	Ranges      []RowRange
	SeatsPerRow int
}

// GenerateSeats expands the layout into seats named row letter plus seat
// number, e.g. C7. Ranges are emitted in the given order.
func (l SeatLayout) GenerateSeats() ([]Seat, error) {
	if l.SeatsPerRow <= 0 {
		return nil, fmt.Errorf("seats per row must be positive, got %d", l.SeatsPerRow)
	}

	var seats []Seat
	seen := make(map[byte]bool)

	for _, rr := range l.Ranges {
		if !rr.Tier.Valid() {
			return nil, fmt.Errorf("unknown seat tier %q", rr.Tier)
		}

		if rr.FromRow < 'A' || rr.ToRow > 'Z' || rr.FromRow > rr.ToRow {
			return nil, fmt.Errorf("invalid row range %c-%c", rr.FromRow, rr.ToRow)
		}

		for row := rr.FromRow; row <= rr.ToRow; row++ {
			if seen[row] {
				return nil, fmt.Errorf("row %c belongs to more than one range", row)
			}
			seen[row] = true

			for number := 1; number <= l.SeatsPerRow; number++ {
				seats = append(seats, Seat{
					ID:     string(row) + strconv.Itoa(number),
					Row:    string(row),
					Number: number,
					Tier:   rr.Tier,
				})
			}
		}
	}

	return seats, nil
}
