// Package gst implements Indian GST tax computation: jurisdiction
// normalization, per-line CGST/SGST/IGST splits, financial-year helpers, and
// rupee amount rendering.
package gst

import "strings"

// stateAliases maps free-text variations and abbreviations of Indian state
// and union-territory names to their canonical lowercase form. Covers full
// names, 2-letter GST codes, and common colloquial forms.
var stateAliases = map[string]string{
	// Andhra Pradesh
	"andhra pradesh": "andhra pradesh",
	"ap":             "andhra pradesh",
	"andhra":         "andhra pradesh",

	// Arunachal Pradesh
	"arunachal pradesh": "arunachal pradesh",
	"arunachal":         "arunachal pradesh",
	"ar":                "arunachal pradesh",

	// Assam
	"assam": "assam",
	"as":    "assam",

	// Bihar
	"bihar": "bihar",
	"br":    "bihar",

	// Chhattisgarh
	"chhattisgarh": "chhattisgarh",
	"chattisgarh":  "chhattisgarh",
	"cg":           "chhattisgarh",
	"ct":           "chhattisgarh",

	// Goa
	"goa": "goa",
	"ga":  "goa",

	// Gujarat
	"gujarat": "gujarat",
	"gj":      "gujarat",

	// Haryana
	"haryana": "haryana",
	"hr":      "haryana",

	// Himachal Pradesh
	"himachal pradesh": "himachal pradesh",
	"himachal":         "himachal pradesh",
	"hp":               "himachal pradesh",

	// Jharkhand
	"jharkhand": "jharkhand",
	"jh":        "jharkhand",

	// Karnataka
	"karnataka": "karnataka",
	"ka":        "karnataka",
	"kn":        "karnataka",

	// Kerala
	"kerala": "kerala",
	"kl":     "kerala",

	// Madhya Pradesh
	"madhya pradesh": "madhya pradesh",
	"madhya":         "madhya pradesh",
	"mp":             "madhya pradesh",

	// Maharashtra
	"maharashtra": "maharashtra",
	"mh":          "maharashtra",

	// Manipur
	"manipur": "manipur",
	"mn":      "manipur",

	// Meghalaya
	"meghalaya": "meghalaya",
	"ml":        "meghalaya",
	"meg":       "meghalaya",

	// Mizoram
	"mizoram": "mizoram",
	"mz":      "mizoram",

	// Nagaland
	"nagaland": "nagaland",
	"nl":       "nagaland",

	// Odisha
	"odisha": "odisha",
	"orissa": "odisha",
	"od":     "odisha",
	"or":     "odisha",

	// Punjab
	"punjab": "punjab",
	"pb":     "punjab",

	// Rajasthan
	"rajasthan": "rajasthan",
	"rj":        "rajasthan",

	// Sikkim
	"sikkim": "sikkim",
	"sk":     "sikkim",

	// Tamil Nadu
	"tamil nadu": "tamil nadu",
	"tamilnadu":  "tamil nadu",
	"tn":         "tamil nadu",

	// Telangana
	"telangana": "telangana",
	"ts":        "telangana",
	"tg":        "telangana",

	// Tripura
	"tripura": "tripura",
	"tr":      "tripura",

	// Uttar Pradesh
	"uttar pradesh": "uttar pradesh",
	"up":            "uttar pradesh",

	// Uttarakhand
	"uttarakhand": "uttarakhand",
	"uttaranchal": "uttarakhand",
	"uk":          "uttarakhand",
	"ua":          "uttarakhand",

	// West Bengal
	"west bengal": "west bengal",
	"wb":          "west bengal",

	// Union territories
	"andaman and nicobar islands": "andaman and nicobar islands",
	"andaman":                     "andaman and nicobar islands",
	"an":                          "andaman and nicobar islands",

	"chandigarh": "chandigarh",
	"ch":         "chandigarh",

	"dadra and nagar haveli and daman and diu": "dadra and nagar haveli and daman and diu",
	"dadra and nagar haveli":                   "dadra and nagar haveli and daman and diu",
	"daman and diu":                            "dadra and nagar haveli and daman and diu",
	"dadra":                                    "dadra and nagar haveli and daman and diu",
	"daman":                                    "dadra and nagar haveli and daman and diu",
	"dnh":                                      "dadra and nagar haveli and daman and diu",
	"dd":                                       "dadra and nagar haveli and daman and diu",
	"dn":                                       "dadra and nagar haveli and daman and diu",

	"delhi":     "delhi",
	"new delhi": "delhi",
	"dl":        "delhi",

	"jammu and kashmir": "jammu and kashmir",
	"jammu":             "jammu and kashmir",
	"kashmir":           "jammu and kashmir",
	"jk":                "jammu and kashmir",
	"j&k":               "jammu and kashmir",

	"ladakh": "ladakh",
	"la":     "ladakh",

	"lakshadweep": "lakshadweep",
	"ld":          "lakshadweep",

	"puducherry":  "puducherry",
	"pondicherry": "puducherry",
	"py":          "puducherry",
}

// NormalizeState maps a free-text state name or abbreviation to its
// canonical lowercase key. Input is lowercased, trimmed, and inner
// whitespace collapsed before lookup. Unmapped input is returned cleaned,
// not rejected, so unseen values pass through as already-canonical.
func NormalizeState(state string) string {
	if state == "" {
		return ""
	}

	cleaned := strings.Join(strings.Fields(strings.ToLower(state)), " ")

	if canonical, ok := stateAliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// InterState reports whether a sale from companyState to customerState
// crosses a state boundary. Both sides are normalized before comparison.
// A missing state on either side is treated as intra-state so IGST is never
// charged when the jurisdiction is unknown.
func InterState(customerState, companyState string) bool {
	cust := NormalizeState(customerState)
	comp := NormalizeState(companyState)

	if cust == "" || comp == "" {
		return false
	}
	return cust != comp
}
