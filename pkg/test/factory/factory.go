package factory

// withDefaults fills in the default keys the caller left unset, so generated
// counters never leak into fields the suites assert on. Everything is merged
// into a single map because fabricator's Build only reads the first overrides
// map it receives.
func withDefaults(customData []map[string]any, defaults map[string]any) []map[string]any {
	merged := map[string]any{}

	for key, value := range defaults {
		merged[key] = value
	}
	for _, data := range customData {
		for key, value := range data {
			merged[key] = value
		}
	}

	return []map[string]any{merged}
}
