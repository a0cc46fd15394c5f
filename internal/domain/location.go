package domain

import "strings"

// Location is a resolved place: coordinates, time zone, and naming details
// as returned by the geocoding provider.
type Location struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Zone    string  `json:"zone"`
	Country string  `json:"country,omitempty"`
	State   string  `json:"state,omitempty"`

	// LocalNames maps lowercase ISO language codes to place names, with the
	// provider's untagged name stored under "default".
	LocalNames map[string]string `json:"local_names,omitempty"`
}

// languageAliases lets callers pass human-readable language names where an
// ISO code is expected.
var languageAliases = map[string]string{
	"english":  "en",
	"arabic":   "ar",
	"japanese": "ja",
}

// LocalizedName returns the place name for the requested language. It
// accepts ISO codes ("ja") and the aliases "english", "arabic", and
// "japanese", and falls back to Name when no localized form is known.
func (l Location) LocalizedName(language string) string {
	if language == "" {
		return l.Name
	}
	key := strings.ToLower(language)
	if code, ok := languageAliases[key]; ok {
		key = code
	}
	if name, ok := l.LocalNames[key]; ok {
		return name
	}
	return l.Name
}

// Position returns the observer position for this location.
func (l Location) Position() Position {
	return Position{Lat: l.Lat, Lon: l.Lon, Zone: l.Zone}
}

// String renders "Name, State, Country", skipping empty parts.
func (l Location) String() string {
	parts := make([]string, 0, 3)
	parts = append(parts, l.Name)
	if l.State != "" {
		parts = append(parts, l.State)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, ", ")
}
