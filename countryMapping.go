// countryMapping.go
package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

// CountryCode represents a mapping between country code and name
type CountryCode struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

//go:embed assets/countries.json
var embeddedCountries embed.FS

// loadCountryCodeMap parses the embedded country list once
var loadCountryCodeMap = sync.OnceValues(func() (map[string]string, error) {
	fileContent, err := embeddedCountries.ReadFile("assets/countries.json")
	if err != nil {
		return nil, fmt.Errorf("error reading embedded countries file: %w", err)
	}

	var countries []CountryCode
	if err := json.Unmarshal(fileContent, &countries); err != nil {
		return nil, fmt.Errorf("error parsing embedded countries file: %w", err)
	}

	countryCodeMap := make(map[string]string, len(countries))
	for _, country := range countries {
		countryCodeMap[country.Code] = country.Name
	}
	return countryCodeMap, nil
})

// GetCountryName returns the full name for an ISO 3166 alpha-2 code
func GetCountryName(code string) (string, bool) {
	countryCodeMap, err := loadCountryCodeMap()
	if err != nil {
		return "", false
	}
	name, ok := countryCodeMap[code]
	return name, ok
}
