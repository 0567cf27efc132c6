package aggregator

import (
	"fmt"

	"github.com/pable/brtiers/internal/model"
)

// Bracket offsets in tenths, indexed by the rating's fractional digit.
// The rating scale steps unevenly around .3 and .7, so each digit has its own set.
var bracketOffsets = map[int][3]model.BR{
	0: {3, 7, 10},
	3: {4, 7, 10},
	7: {3, 6, 10},
}

// Bracket returns the three ratings that, together with b, make up the four
// matchmaking tiers a vehicle at b can land in: b itself is the full downtier,
// followed by downtier, uptier and full uptier.
func Bracket(b model.BR) ([3]model.BR, error) {
	offs, ok := bracketOffsets[b.Frac()]
	if !ok {
		return [3]model.BR{}, fmt.Errorf("%w: BR %s has fractional digit %d", model.ErrInvalidBracket, b, b.Frac())
	}
	return [3]model.BR{b + offs[0], b + offs[1], b + offs[2]}, nil
}
