package trailer

// MatcherKind distinguishes ValueMatcher variants. Equals is the only
// variant required by spec §4.B; the type is kept open ("extensible") so
// additional matchers can be added without breaking callers that switch
// on Kind with a default case.
type MatcherKind int

const (
	MatchEquals MatcherKind = iota
)

// ValueMatcher decides whether an accumulated value satisfies a filter.
type ValueMatcher struct {
	Kind MatcherKind
	Want Value
}

// Equals builds an Equals matcher.
func Equals(want Value) ValueMatcher { return ValueMatcher{Kind: MatchEquals, Want: want} }

// Matches reports whether got satisfies the matcher.
func (m ValueMatcher) Matches(got Value) bool {
	switch m.Kind {
	case MatchEquals:
		return m.Want.Equal(got)
	default:
		return false
	}
}

// Filter is a single (TrailerSpec, ValueMatcher) constraint (spec §4.B).
type Filter struct {
	Spec    Spec
	Matcher ValueMatcher
}

// NewFilter builds a Filter.
func NewFilter(spec Spec, matcher ValueMatcher) Filter {
	return Filter{Spec: spec, Matcher: matcher}
}

// FilterSet is a collection of Filters ANDed together. An empty FilterSet
// matches everything (spec §4.B, §8 testable property 5).
type FilterSet []Filter

// Specs returns the TrailerSpecs this filter set cares about, for building
// the accumulator that will be matched against.
func (fs FilterSet) Specs() []Spec {
	specs := make([]Spec, len(fs))
	for i, f := range fs {
		specs[i] = f.Spec
	}
	return specs
}

// Matches reports whether every filter's spec key is present in snapshot
// and its matcher accepts the accumulated value.
func (fs FilterSet) Matches(snapshot map[string]Value) bool {
	if len(fs) == 0 {
		return true
	}
	for _, f := range fs {
		v, ok := snapshot[f.Spec.Key]
		if !ok {
			return false
		}
		if !f.Matcher.Matches(v) {
			return false
		}
	}
	return true
}
