package crontab

import (
	"fmt"
	"strings"
)

const namePrefix = "# NAME:"

// Parse reads crontab-style text into entries. A `# NAME: <name>` line names
// the entry on the following line; a cron line prefixed with `# ` is disabled.
// Entries without a NAME line get a synthesized "Unnamed (<n>)" name. Cron
// lines with fewer than six tokens are dropped. Parse never fails: empty or
// unrecognized input yields an empty list.
func Parse(content string) []Entry {
	var entries []Entry

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, namePrefix) {
			name := strings.TrimSpace(strings.TrimPrefix(line, namePrefix))
			if i+1 >= len(lines) {
				continue
			}
			next := strings.TrimSpace(lines[i+1])
			i++

			enabled := true
			cronLine := next
			if strings.HasPrefix(next, "# ") && !strings.HasPrefix(next, namePrefix) {
				enabled = false
				cronLine = strings.TrimPrefix(next, "# ")
			}

			if entry, ok := parseCronLine(cronLine, name, enabled); ok {
				entries = append(entries, entry)
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		name := fmt.Sprintf("Unnamed (%d)", len(entries)+1)
		if entry, ok := parseCronLine(line, name, true); ok {
			entries = append(entries, entry)
		}
	}

	return entries
}

// parseCronLine splits a cron line into the 5 schedule fields and the command
// remainder. The remainder is kept verbatim so command spacing survives.
func parseCronLine(line, name string, enabled bool) (Entry, bool) {
	parts := strings.SplitN(line, " ", 6)
	if len(parts) < 6 {
		return Entry{}, false
	}

	return Entry{
		Name:     name,
		Schedule: strings.Join(parts[:5], " "),
		Command:  parts[5],
		Enabled:  enabled,
	}, true
}

// Serialize renders entries in input order, one NAME line and one cron line
// each. Parse(Serialize(entries)) returns entries unchanged.
func Serialize(entries []Entry) string {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(fmt.Sprintf("# NAME: %s\n", entry.Name))
		b.WriteString(entry.CrontabLine() + "\n")
	}
	return b.String()
}
