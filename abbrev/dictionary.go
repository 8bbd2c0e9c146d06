package abbrev

// fillerTokens are dropped entirely before abbreviation; they carry no
// meaning for a tool name and are common enough in generated operationIds
// to be worth a pass of their own before reaching for the dictionary.
var fillerTokens = map[string]bool{
	"controller": true,
	"api":        true,
	"service":    true,
	"method":     true,
	"the":        true,
	"and":        true,
	"for":        true,
	"with":       true,
}

// abbreviations maps a whole token to its shortened form. Unlisted tokens,
// including "get", pass through unchanged.
var abbreviations = map[string]string{
	"management":    "mgmt",
	"user":          "usr",
	"service":       "svc",
	"resource":      "resrc",
	"update":        "upd",
	"configuration": "config",
	"authority":     "auth",
	"list":          "lst",
}
