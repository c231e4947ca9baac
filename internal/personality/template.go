// Package personality holds the fixed communication-style profiles and
// composes personality-conditioned messages for JournalPipe sessions.
package personality

import "regexp"

var slotPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// RenderSlots substitutes {name} slots in a template from the given map.
// Slots with no mapping are replaced by missing rather than left in the
// output, so templates never leak raw slot markers.
func RenderSlots(template string, slots map[string]string, missing string) string {
	return slotPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := slots[name]; ok {
			return v
		}
		return missing
	})
}
