package main

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/utils/set"
)

// Filter holds the permitted country and state codes. A station passes
// only when both its country and its state are permitted.
type Filter struct {
	Countries set.Set[string]
	States    set.Set[string]
}

// NewFilter builds a Filter from country and state codes. Codes are trimmed
// and upper-cased; empty entries are ignored.
func NewFilter(countries, states []string) Filter {
	return Filter{
		Countries: normalizeCodes(countries),
		States:    normalizeCodes(states),
	}
}

// DefaultFilter returns the compiled-in filter
func DefaultFilter() Filter {
	return NewFilter(defaultCountries, defaultStates)
}

// Match reports whether the station passes both filters
func (f Filter) Match(s Station) bool {
	return f.Countries.Has(s.Country) && f.States.Has(s.State)
}

// Validate checks that both sets are populated and every country is a known ISO code
func (f Filter) Validate() error {
	if f.Countries.Len() == 0 {
		return errors.New("at least one country code is required")
	}
	if f.States.Len() == 0 {
		return errors.New("at least one state code is required")
	}

	for _, code := range f.Countries.SortedList() {
		if _, ok := GetCountryName(code); !ok {
			return fmt.Errorf("unknown country code %q", code)
		}
	}

	return nil
}

func (f Filter) String() string {
	return fmt.Sprintf("countries=%s states=%s",
		strings.Join(f.Countries.SortedList(), ","),
		strings.Join(f.States.SortedList(), ","))
}

func normalizeCodes(codes []string) set.Set[string] {
	s := set.New[string]()
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			s.Insert(code)
		}
	}
	return s
}
