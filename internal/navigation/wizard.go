package navigation

import (
	"github.com/climatelens/risk-analytics/internal/domain"
)

// DetailsURL is the details page for the state's current property
func DetailsURL(s State) string {
	return DetailsPath + "?" + Encode(s)
}

// AnalysisURL is the analysis page for every property in the state.
// The wizard position is not carried onto the analysis page.
func AnalysisURL(s State) string {
	out := s.clone()
	out.Current = 0
	return AnalysisPath + "?" + Encode(out)
}

// Next stores form as the current property's data and advances. After the
// last property it returns the analysis URL.
func Next(s State, form domain.PropertyFormData) (State, string) {
	out := s.clone()
	if id, ok := out.CurrentID(); ok {
		out.Data[id] = form
	}
	if out.IsLast() {
		return out, AnalysisURL(out)
	}
	out.Current++
	return out, DetailsURL(out)
}

// Back returns to the previous property, or to search from the first one.
// Data already entered is carried along unchanged.
func Back(s State) (State, string) {
	out := s.clone()
	if out.Current <= 1 {
		return out, SearchPath
	}
	out.Current--
	return out, DetailsURL(out)
}
