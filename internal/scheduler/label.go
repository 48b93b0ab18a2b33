package scheduler

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxLabelNameLen = 32

// labelNamespace scopes the per-name UUID so labels cannot collide with
// UUIDs minted by anything else.
var labelNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("cronman"))

// entryLabel derives the launchd label for an entry name. The sanitized
// fragment keeps labels readable in `launchctl list`; the name-derived UUID
// keeps them unique even when sanitization collapses different names to the
// same fragment. The same name always yields the same label, so re-saving a
// list never orphans agents.
func entryLabel(prefix, name string) string {
	return prefix + "." + sanitizeName(name) + "." + deterministicID(name)
}

// sanitizeName keeps letters, digits and underscores and truncates the rest.
func sanitizeName(name string) string {
	var b strings.Builder
	count := 0
	for _, r := range name {
		if count >= maxLabelNameLen {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			count++
		}
	}
	return b.String()
}

func deterministicID(name string) string {
	return uuid.NewSHA1(labelNamespace, []byte(name)).String()
}

// displayNameFromLabel recovers an approximate display name from a label,
// for descriptors written before the display name was embedded in them.
func displayNameFromLabel(prefix, label string) string {
	name := strings.TrimPrefix(label, prefix+".")
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return strings.ReplaceAll(name, "_", " ")
}
