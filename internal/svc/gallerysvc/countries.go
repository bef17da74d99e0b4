package gallerysvc

import "strings"

// countryCodes maps country names as reported by metadata providers to
// ISO 3166-1 alpha-2 codes used by the flag CDN.
//
//nolint:gochecknoglobals
var countryCodes = map[string]string{
	"argentina":      "ar",
	"australia":      "au",
	"austria":        "at",
	"belgium":        "be",
	"brazil":         "br",
	"canada":         "ca",
	"china":          "cn",
	"czech republic": "cz",
	"denmark":        "dk",
	"finland":        "fi",
	"france":         "fr",
	"germany":        "de",
	"greece":         "gr",
	"hong kong":      "hk",
	"hungary":        "hu",
	"iceland":        "is",
	"india":          "in",
	"iran":           "ir",
	"ireland":        "ie",
	"israel":         "il",
	"italy":          "it",
	"japan":          "jp",
	"mexico":         "mx",
	"netherlands":    "nl",
	"new zealand":    "nz",
	"norway":         "no",
	"poland":         "pl",
	"portugal":       "pt",
	"russia":         "ru",
	"south africa":   "za",
	"south korea":    "kr",
	"spain":          "es",
	"sweden":         "se",
	"switzerland":    "ch",
	"taiwan":         "tw",
	"thailand":       "th",
	"turkey":         "tr",
	"united kingdom": "gb",
	"united states":  "us",
	"west germany":   "de",
}

// ExtractCountryCodes resolves a comma separated list of country names to
// ISO alpha-2 codes. Unknown names are skipped.
func ExtractCountryCodes(countries string) []string {
	var codes []string

	for _, name := range strings.Split(countries, ",") {
		code, ok := countryCodes[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}

		codes = append(codes, code)
	}

	return codes
}
