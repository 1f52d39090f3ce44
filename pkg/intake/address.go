package intake

import "strings"

// parseAddressParts splits a free-form service address into street, city,
// state, and zip. Intake addresses arrive either comma separated or with
// line breaks between the parts, so newlines are normalized to commas
// first. Missing parts come back empty rather than erroring; the form does
// not enforce a shape.
func parseAddressParts(address string) (street, city, state, zip string) {
	normalized := strings.NewReplacer("\r\n", ",", "\n", ",").Replace(address)

	var parts []string
	for _, p := range strings.Split(normalized, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		street = parts[0]
	}
	if len(parts) > 1 {
		city = parts[1]
	}
	if len(parts) > 2 {
		tokens := strings.Fields(parts[2])
		if len(tokens) > 0 {
			state = tokens[0]
		}
		if len(tokens) > 1 {
			zip = tokens[1]
		}
	}
	return street, city, state, zip
}

// firstNonEmpty returns the first value with content, trimmed.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
