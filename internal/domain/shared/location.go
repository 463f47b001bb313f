package shared

import "strings"

// UnknownLocation labels stops whose position could not be reverse geocoded.
const UnknownLocation = "Unknown Location"

// maxLocationLen caps display strings that cannot be reduced to "City, ST".
const maxLocationLen = 50

// stateAbbrevs maps full U.S. state names (plus DC) to USPS two-letter codes.
var stateAbbrevs = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
	"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS",
	"Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK",
	"Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT",
	"Vermont": "VT", "Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
	"Wisconsin": "WI", "Wyoming": "WY", "District of Columbia": "DC",
}

// StateAbbrev converts a full state name to its two-letter code. Unknown
// non-empty names fall back to their first two letters uppercased, matching
// the loose normalization applied to geocoder output. Empty input yields "".
func StateAbbrev(name string) string {
	if name == "" {
		return ""
	}
	if abbr, ok := stateAbbrevs[name]; ok {
		return abbr
	}
	if len(name) < 2 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(name[:2])
}

// FormatLocation reduces a geocoder display name to "City, ST" when a state
// can be recognized among its comma-separated parts, either as an existing
// two-letter code or as a full state name. Names that cannot be reduced are
// truncated to 50 characters. Empty input yields UnknownLocation.
func FormatLocation(name string) string {
	if name == "" {
		return UnknownLocation
	}

	parts := strings.Split(name, ",")
	if len(parts) >= 2 {
		city := strings.TrimSpace(parts[0])
		for _, part := range parts[1:] {
			part = strings.TrimSpace(part)
			if isUpperTwoLetter(part) {
				return city + ", " + part
			}
			if abbr, ok := stateAbbrevs[part]; ok {
				return city + ", " + abbr
			}
		}
	}

	if len(name) > maxLocationLen {
		return name[:maxLocationLen]
	}
	return name
}

func isUpperTwoLetter(s string) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z' && s[1] >= 'A' && s[1] <= 'Z'
}
