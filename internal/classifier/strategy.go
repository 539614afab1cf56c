package classifier

// Strategy selects how similarity and keyword scores are combined into a
// base score. It is a closed enumeration; unknown persisted values decode
// to Hybrid at the boundary.
type Strategy int

const (
	StrategyHybrid Strategy = iota
	StrategySimilarityOnly
	StrategyKeywordOnly
)

// ParseStrategy decodes a stored strategy string. The second return is
// false for unrecognized values, in which case Hybrid is returned; the
// caller logs the fallback since stored drift is not a request error.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "hybrid":
		return StrategyHybrid, true
	case "similarity_only":
		return StrategySimilarityOnly, true
	case "keyword_only":
		return StrategyKeywordOnly, true
	default:
		return StrategyHybrid, false
	}
}

// ValidStrategy reports whether s names a known strategy.
func ValidStrategy(s string) bool {
	_, ok := ParseStrategy(s)
	return ok
}

func (s Strategy) String() string {
	switch s {
	case StrategySimilarityOnly:
		return "similarity_only"
	case StrategyKeywordOnly:
		return "keyword_only"
	default:
		return "hybrid"
	}
}
