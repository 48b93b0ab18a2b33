package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cronman/cronman/internal/crontab"
)

// calendarTrigger holds the StartCalendarInterval fields of a launch agent.
// A nil field means the corresponding cron field was "*". A trigger with
// every field nil is valid: launchd fires such a job every minute.
type calendarTrigger struct {
	Minute  *int
	Hour    *int
	Day     *int
	Month   *int
	Weekday *int
}

var calendarFields = [5]struct {
	name     string
	min, max int
}{
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day", 1, 31},
	{"month", 1, 12},
	{"weekday", 0, 7},
}

// scheduleToTrigger converts a 5-field cron expression into calendar fields.
// launchd cannot express ranges, lists, steps or shortcuts, so those are
// rejected rather than approximated. Weekday 7 is normalized to 0; both mean
// Sunday.
func scheduleToTrigger(schedule string) (calendarTrigger, error) {
	var trigger calendarTrigger

	if strings.HasPrefix(strings.TrimSpace(schedule), "@") {
		return trigger, fmt.Errorf("shortcut syntax %q is not supported; use explicit minute/hour/day values", schedule)
	}

	parts := strings.Fields(schedule)
	if len(parts) != 5 {
		return trigger, fmt.Errorf("schedule %q must have exactly 5 fields, got %d", schedule, len(parts))
	}

	targets := [5]**int{&trigger.Minute, &trigger.Hour, &trigger.Day, &trigger.Month, &trigger.Weekday}
	for i, part := range parts {
		if part == "*" {
			continue
		}
		field := calendarFields[i]

		switch {
		case strings.Contains(part, "-"):
			return trigger, fmt.Errorf("unsupported range %q in %s field; launchd accepts only exact values or *", part, field.name)
		case strings.Contains(part, ","):
			return trigger, fmt.Errorf("unsupported list %q in %s field; launchd accepts only exact values or *", part, field.name)
		case strings.Contains(part, "/"):
			return trigger, fmt.Errorf("unsupported step %q in %s field; launchd accepts only exact values or *", part, field.name)
		}

		value, err := strconv.Atoi(part)
		if err != nil {
			return trigger, fmt.Errorf("invalid value %q in %s field; must be a number or *", part, field.name)
		}
		if value < field.min || value > field.max {
			return trigger, fmt.Errorf("%s %d out of range %d-%d", field.name, value, field.min, field.max)
		}
		if i == 4 && value == 7 {
			value = 0
		}

		*targets[i] = &value
	}

	return trigger, nil
}

// commandMetachars would reach /bin/sh unescaped. Commands containing any of
// them are rejected outright instead of quoted; pipelines have to live in a
// script of their own.
const commandMetachars = "|&;\n\r`$"

func validateCommand(command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("command is empty")
	}
	if i := strings.IndexAny(command, commandMetachars); i >= 0 {
		return fmt.Errorf("command contains shell metacharacter %q", command[i])
	}
	return nil
}

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>CronmanTaskName</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
        <string>/bin/sh</string>
        <string>-c</string>
        <string>%s</string>
    </array>
    <key>StartCalendarInterval</key>
    <dict>
%s    </dict>
    <key>StandardOutPath</key>
    <string>%s/%s.stdout</string>
    <key>StandardErrorPath</key>
    <string>%s/%s.stderr</string>
</dict>
</plist>
`

// buildPlist renders the launch agent descriptor for one entry. The display
// name rides along in CronmanTaskName so Load can recover it verbatim.
func buildPlist(label, name, command string, trigger calendarTrigger, logDir string) string {
	var calendar strings.Builder
	writeField := func(key string, value *int) {
		if value != nil {
			calendar.WriteString(fmt.Sprintf("        <key>%s</key>\n        <integer>%d</integer>\n", key, *value))
		}
	}
	writeField("Month", trigger.Month)
	writeField("Day", trigger.Day)
	writeField("Weekday", trigger.Weekday)
	writeField("Hour", trigger.Hour)
	writeField("Minute", trigger.Minute)

	return fmt.Sprintf(plistTemplate,
		label,
		escapeXML(name),
		escapeXML(command),
		calendar.String(),
		logDir, label,
		logDir, label,
	)
}

// parsePlist reads an entry back out of a descriptor. The format is our own,
// so plain string scanning beats a full XML parser here; anything missing
// degrades to a usable default instead of failing.
func parsePlist(doc, prefix string) crontab.Entry {
	name, ok := plistString(doc, "CronmanTaskName")
	if ok {
		name = unescapeXML(name)
	} else {
		label, _ := plistString(doc, "Label")
		if label == "" {
			label = "Unknown"
		}
		name = displayNameFromLabel(prefix, label)
	}

	var command string
	if cmd, ok := programCommand(doc); ok {
		command = unescapeXML(cmd)
	}

	return crontab.Entry{
		Name:     name,
		Schedule: triggerSchedule(doc),
		Command:  command,
		Enabled:  true,
	}
}

// triggerSchedule rebuilds the cron expression from the calendar fields.
// Absent fields come back as "*" and stored values are kept as written; a
// weekday stored as 7 by hand stays 7.
func triggerSchedule(doc string) string {
	keys := [5]string{"Minute", "Hour", "Day", "Month", "Weekday"}
	parts := make([]string, 5)
	for i, key := range keys {
		if value, ok := plistIntegerText(doc, key); ok {
			parts[i] = value
		} else {
			parts[i] = "*"
		}
	}
	return strings.Join(parts, " ")
}

// plistString returns the first <string> value following <key>key</key>.
func plistString(doc, key string) (string, bool) {
	return tagValueAfterKey(doc, key, "string")
}

// plistIntegerText returns the raw text of the first <integer> value
// following <key>key</key>.
func plistIntegerText(doc, key string) (string, bool) {
	return tagValueAfterKey(doc, key, "integer")
}

func tagValueAfterKey(doc, key, tag string) (string, bool) {
	keyPattern := "<key>" + key + "</key>"
	openTag := "<" + tag + ">"
	closeTag := "</" + tag + ">"

	i := strings.Index(doc, keyPattern)
	if i < 0 {
		return "", false
	}
	rest := doc[i+len(keyPattern):]

	j := strings.Index(rest, openTag)
	if j < 0 {
		return "", false
	}
	rest = rest[j+len(openTag):]

	k := strings.Index(rest, closeTag)
	if k < 0 {
		return "", false
	}
	return rest[:k], true
}

// programCommand extracts the shell command: the third string in the
// ProgramArguments array, after /bin/sh and -c.
func programCommand(doc string) (string, bool) {
	i := strings.Index(doc, "<key>ProgramArguments</key>")
	if i < 0 {
		return "", false
	}
	rest := doc[i:]

	for n := 0; n < 3; n++ {
		j := strings.Index(rest, "<string>")
		if j < 0 {
			return "", false
		}
		rest = rest[j+len("<string>"):]
	}

	end := strings.Index(rest, "</string>")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// The two replacers are exact inverses: both run in a single pass, so
// escaping "&lt;" and unescaping the result gives "&lt;" back instead of
// collapsing it to "<".
var (
	xmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"'", "&apos;",
		`"`, "&quot;",
	)
	xmlUnescaper = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&apos;", "'",
		"&quot;", `"`,
	)
)

func escapeXML(s string) string   { return xmlEscaper.Replace(s) }
func unescapeXML(s string) string { return xmlUnescaper.Replace(s) }
