package scene

import (
	"sort"
	"strconv"
)

// Style is a bag of presentation attributes keyed by their SVG names, such
// as "fill" or "font-size".
type Style map[string]string

// Merge returns a new style holding base overlaid by every override in
// order; later keys win.
func Merge(base Style, overrides ...Style) Style {
	out := make(Style, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, o := range overrides {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// Keys returns the attribute names in lexical order.
func (s Style) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value for key or def when it is unset.
func (s Style) Get(key, def string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return def
}

// Float returns the numeric value of key, or def when it is unset or not a
// number. A trailing "px" is accepted.
func (s Style) Float(key string, def float64) float64 {
	v, ok := s[key]
	if !ok {
		return def
	}
	l, err := ParseLength(v)
	if err != nil || l.Unit != UnitNumber {
		return def
	}
	return l.Value
}

// FormatFloat formats v with the shortest representation.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
