package advisor

// A term label is a one-letter season code followed by a 4-digit year,
// e.g. "F2024" or "S2025". Spring sorts before Fall within a year.

type TermKey struct {
	Year       int
	SeasonRank int
}

const (
	seasonRankSpring = 1
	seasonRankFall   = 2
)

// sentinelTermKey sorts after every well-formed term key.
var sentinelTermKey = TermKey{Year: 9999, SeasonRank: 9}

func TermToSortKey(label string) TermKey {
	if len(label) != 5 {
		return sentinelTermKey
	}

	year := 0
	for _, digit := range label[1:] {
		if digit < '0' || digit > '9' {
			return sentinelTermKey
		}
		year = year*10 + int(digit-'0')
	}

	switch label[0] {
	case 'S':
		return TermKey{Year: year, SeasonRank: seasonRankSpring}
	case 'F':
		return TermKey{Year: year, SeasonRank: seasonRankFall}
	}
	return sentinelTermKey
}

func (k TermKey) Less(other TermKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.SeasonRank < other.SeasonRank
}

func (k TermKey) Valid() bool {
	return k != sentinelTermKey
}
