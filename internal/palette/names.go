package palette

import "strings"

// colorNames is the built-in hex -> friendly-name table. It matches the
// colors in data/palettes.json and is deliberately an unexported package
// constant: lookups are side-effect-free and nothing can patch it at
// runtime.
var colorNames = map[string]string{
	"#16697a": "Caribbean Current",
	"#dbf4a7": "Mindaro",
	"#a24936": "Chestnut",
	"#7ebce6": "Maya Blue",
	"#e6beae": "Pale Dogwood",
	"#79af91": "Cambridge Blue",
	"#bf9f6f": "Lion",
	"#996662": "Rose Taupe",
	"#90838e": "Taupe Gray",
	"#b2bdca": "French Gray",
	"#030f11": "Caribbean Current Darkest",
	"#061e22": "Caribbean Current Darker",
	"#0d3c45": "Caribbean Current Dark",
	"#135967": "Caribbean Current Medium Dark",
	"#19778a": "Caribbean Current Medium",
	"#2095ac": "Caribbean Current Medium Light",
	"#26b3cf": "Caribbean Current Light",
	"#41c2dc": "Caribbean Current Lighter",
	"#64cde3": "Caribbean Current Very Light",
	"#86d8e9": "Caribbean Current Extra Light",
	"#a9e3ef": "Caribbean Current Ultra Light",
	"#cbeef6": "Caribbean Current Palest",
	"#eef9fc": "Caribbean Current Lightest",
}

// Name returns the friendly name for a hex code from the built-in table.
// Matching is case-insensitive and the leading '#' is optional; unknown
// codes come back unchanged.
func Name(hex string) string {
	key := strings.ToLower(hex)
	if !strings.HasPrefix(key, "#") {
		key = "#" + key
	}
	if name, ok := colorNames[key]; ok {
		return name
	}
	return hex
}
