package offerprovider

// Carriers commonly seen on Indian domestic routes. Codes outside this
// map pass through unchanged as both name and code.
var airlineNames = map[string]string{
	"AI": "Air India",
	"IX": "Air India Express",
	"6E": "IndiGo",
	"QP": "Akasa Air",
	"SG": "SpiceJet",
	"UK": "Vistara",
	"G8": "Go First",
	"9I": "Alliance Air",
	"S5": "Star Air",
}

// AirlineName resolves a carrier code to a display name, falling back
// to the raw code when unknown.
func AirlineName(code string) string {
	if name, ok := airlineNames[code]; ok {
		return name
	}

	return code
}
