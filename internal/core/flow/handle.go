package flow

import "strings"

// PrimaryOutput is the conventional output port read when an edge does not
// name a source handle.
const PrimaryOutput = "output"

// OutputKey converts a source handle token ("out-value") to the output port
// key it names ("value"). Handles that do not carry the "out-" prefix fall
// back to the primary output.
func OutputKey(handle string) string {
	if strings.HasPrefix(handle, "out-") {
		return handle[len("out-"):]
	}
	return PrimaryOutput
}

// InputKey converts a target handle token to an input port key. Handle IDs
// are kebab-case ("in-on-off"); input ports are camelCase ("onOff").
func InputKey(handle string) string {
	if !strings.HasPrefix(handle, "in-") {
		return handle
	}

	parts := strings.Split(handle[len("in-"):], "-")
	if len(parts) == 1 {
		return parts[0]
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for _, word := range parts[1:] {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}
