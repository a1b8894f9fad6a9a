package locator

import "regexp"

// The salvage path recovers marker attributes from markup the strict decoder
// rejects (unterminated tags, stray ampersands, truncated bodies). It is a
// best-effort text scan, not a parser.
var (
	markerPattern     = regexp.MustCompile(`<marker\s+([^>]+?)/?>`)
	doubleQuotedAttrs = regexp.MustCompile(`(\w+)="([^"]*)"`)
	singleQuotedAttrs = regexp.MustCompile(`(\w+)='([^']*)'`)
)

// salvageMinAttrs is the attribute count below which the single-quoted scan is
// also attempted for a marker.
const salvageMinAttrs = 5

// SalvageMarkers extracts attribute maps from marker-like substrings of raw.
// Double-quoted attributes are matched first; single-quoted attributes are
// only consulted when a marker yielded fewer than salvageMinAttrs of them.
// Markers with no recognizable attributes are skipped.
func SalvageMarkers(raw string) []map[string]string {
	var out []map[string]string

	for _, m := range markerPattern.FindAllStringSubmatch(raw, -1) {
		body := m[1]
		attrs := make(map[string]string)

		for _, kv := range doubleQuotedAttrs.FindAllStringSubmatch(body, -1) {
			attrs[kv[1]] = kv[2]
		}
		if len(attrs) < salvageMinAttrs {
			for _, kv := range singleQuotedAttrs.FindAllStringSubmatch(body, -1) {
				if _, ok := attrs[kv[1]]; !ok {
					attrs[kv[1]] = kv[2]
				}
			}
		}

		if len(attrs) > 0 {
			out = append(out, attrs)
		}
	}

	return out
}
