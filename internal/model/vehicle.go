package model

import "strings"

// Vehicle is the decoded-attributes snapshot stored on a contract. Decoding
// happens outside this service; values arrive as strings and may be partial.
type Vehicle struct {
	VIN          string `json:"vin"`
	Year         string `json:"year,omitempty"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Trim         string `json:"trim,omitempty"`
	BodyClass    string `json:"bodyClass,omitempty"`
	Engine       string `json:"engine,omitempty"`
	Transmission string `json:"transmission,omitempty"`
}

// NormalizeVIN uppercases and strips whitespace and separators.
func NormalizeVIN(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidVIN reports whether the normalized VIN is exactly 17 alphanumerics.
func ValidVIN(vin string) bool {
	if len(vin) != 17 {
		return false
	}
	for _, r := range vin {
		ok := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}
