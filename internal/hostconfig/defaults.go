package hostconfig

// Defaults holds the demo host's configuration keys and their default
// values. "pager" and "theme" mirror footprint-tools-cli's own config
// keys; "remainder_separator" and "name_comparer" are new, specific to a
// command-dispatch host.
var Defaults = map[string]func() string{
	"pager":               func() string { return "less -FRSX" },
	"theme":               func() string { return "default" },
	"remainder_separator": func() string { return " " },
	"name_comparer":       func() string { return "ordinal-ignore-case" },
	"enable_log":          func() string { return "true" },
}

// Get returns key's current value, checking the settings file first and
// falling back to Defaults.
func Get(key string) (string, bool) {
	lines, err := ReadLines()
	if err != nil {
		if fn, ok := Defaults[key]; ok {
			return fn(), true
		}
		return "", false
	}

	cfg := Parse(lines)
	if v, ok := cfg[key]; ok {
		return v, true
	}
	if fn, ok := Defaults[key]; ok {
		return fn(), true
	}
	return "", false
}

// GetAll returns every configuration value, user overrides merged over
// Defaults.
func GetAll() (map[string]string, error) {
	out := make(map[string]string, len(Defaults))
	for k, fn := range Defaults {
		out[k] = fn()
	}

	lines, err := ReadLines()
	if err != nil {
		return out, err
	}
	for k, v := range Parse(lines) {
		out[k] = v
	}
	return out, nil
}
