// Package navigation implements the query-string contract that carries the
// selected properties, the wizard position and the entered form data between
// the search, details and analysis pages.
package navigation

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/climatelens/risk-analytics/internal/domain"
	"github.com/goccy/go-json"
)

// Query parameter names
const (
	ParamProperties = "properties"
	ParamCurrent    = "current"
	ParamData       = "data"
)

// Page paths used by the wizard
const (
	SearchPath   = "/asset/search"
	DetailsPath  = "/asset/details"
	AnalysisPath = "/asset/analysis"
)

var (
	ErrInvalidPropertyID = errors.New("invalid property id")
	ErrInvalidCurrent    = errors.New("invalid current index")
	ErrInvalidData       = errors.New("invalid property data")
)

// State is the typed navigation state. Current is 1-based.
type State struct {
	PropertyIDs []int
	Current     int
	Data        map[int]domain.PropertyFormData
}

// NewState starts a wizard over ids at the first property
func NewState(ids ...int) State {
	return State{
		PropertyIDs: append([]int{}, ids...),
		Current:     1,
		Data:        map[int]domain.PropertyFormData{},
	}
}

// CurrentID returns the property id at the current position
func (s State) CurrentID() (int, bool) {
	if s.Current < 1 || s.Current > len(s.PropertyIDs) {
		return 0, false
	}
	return s.PropertyIDs[s.Current-1], true
}

// IsLast reports whether the wizard is on its final property
func (s State) IsLast() bool { return s.Current >= len(s.PropertyIDs) }

// clone copies the state so callers can never share the id slice or data map
func (s State) clone() State {
	out := State{
		PropertyIDs: append([]int{}, s.PropertyIDs...),
		Current:     s.Current,
		Data:        make(map[int]domain.PropertyFormData, len(s.Data)),
	}
	for k, v := range s.Data {
		out.Data[k] = v
	}
	return out
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// encodeData serialises the form data map keyed by decimal id strings
func encodeData(data map[int]domain.PropertyFormData) (string, error) {
	keyed := make(map[string]domain.PropertyFormData, len(data))
	for id, f := range data {
		keyed[strconv.Itoa(id)] = f
	}
	b, err := json.Marshal(keyed)
	if err != nil {
		return "", fmt.Errorf("failed to encode property data: %w", err)
	}
	return string(b), nil
}

// Encode renders the state as a query string without the leading "?".
// Current is omitted when zero and data when empty.
func Encode(s State) string {
	var b strings.Builder
	b.WriteString(ParamProperties + "=" + joinIDs(s.PropertyIDs))
	if s.Current > 0 {
		b.WriteString("&" + ParamCurrent + "=" + strconv.Itoa(s.Current))
	}
	if len(s.Data) > 0 {
		if data, err := encodeData(s.Data); err == nil {
			b.WriteString("&" + ParamData + "=" + url.QueryEscape(data))
		}
	}
	return b.String()
}

func parseValues(rawQuery string) (url.Values, error) {
	return url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
}

// unwrapData undoes the extra encoding layer some clients apply to the data parameter
func unwrapData(v string) string {
	v = strings.TrimSpace(v)
	for i := 0; i < 2 && v != "" && !strings.HasPrefix(v, "{"); i++ {
		u, err := url.QueryUnescape(v)
		if err != nil || u == v {
			break
		}
		v = strings.TrimSpace(u)
	}
	return v
}

func decodeData(raw string) (map[int]domain.PropertyFormData, error) {
	out := map[int]domain.PropertyFormData{}
	raw = unwrapData(raw)
	if raw == "" {
		return out, nil
	}
	var keyed map[string]domain.PropertyFormData
	if err := json.Unmarshal([]byte(raw), &keyed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	for k, f := range keyed {
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: key %q is not a property id", ErrInvalidData, k)
		}
		out[id] = f
	}
	return out, nil
}

func parseIDs(raw string, strict bool) ([]int, error) {
	ids := []int{}
	if strings.TrimSpace(raw) == "" {
		return ids, nil
	}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			if strict {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPropertyID, part)
			}
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Parse decodes a query string and rejects any malformed parameter
func Parse(rawQuery string) (State, error) {
	values, err := parseValues(rawQuery)
	if err != nil {
		return State{}, fmt.Errorf("failed to parse query: %w", err)
	}
	ids, err := parseIDs(values.Get(ParamProperties), true)
	if err != nil {
		return State{}, err
	}
	s := State{PropertyIDs: ids, Current: 1}
	if raw := values.Get(ParamCurrent); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 || (len(ids) > 0 && n > len(ids)) {
			return State{}, fmt.Errorf("%w: %q", ErrInvalidCurrent, raw)
		}
		s.Current = n
	}
	if s.Data, err = decodeData(values.Get(ParamData)); err != nil {
		return State{}, err
	}
	return s, nil
}

// ParseOrDefault decodes a query string and never fails. Malformed ids are
// dropped, a missing or out of range current becomes 1 and malformed data
// becomes an empty map.
func ParseOrDefault(rawQuery string) State {
	// ParseQuery keeps every well-formed pair even when it reports an error
	values, _ := parseValues(rawQuery)
	ids, _ := parseIDs(values.Get(ParamProperties), false)
	s := State{PropertyIDs: ids, Current: 1}
	if n, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamCurrent))); err == nil && n >= 1 && (len(ids) == 0 || n <= len(ids)) {
		s.Current = n
	}
	if data, err := decodeData(values.Get(ParamData)); err == nil {
		s.Data = data
	} else {
		s.Data = map[int]domain.PropertyFormData{}
	}
	return s
}

// SortedDataIDs returns the ids that carry form data, ascending
func (s State) SortedDataIDs() []int {
	ids := make([]int, 0, len(s.Data))
	for id := range s.Data {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
