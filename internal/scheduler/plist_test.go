package scheduler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestScheduleToTrigger(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		want     calendarTrigger
	}{
		{"all wildcards yield empty trigger", "* * * * *", calendarTrigger{}},
		{"minute and hour", "0 2 * * *", calendarTrigger{Minute: intPtr(0), Hour: intPtr(2)}},
		{"every field set", "30 14 1 6 5", calendarTrigger{
			Minute: intPtr(30), Hour: intPtr(14), Day: intPtr(1), Month: intPtr(6), Weekday: intPtr(5),
		}},
		{"weekday 7 normalized to 0", "0 0 * * 7", calendarTrigger{
			Minute: intPtr(0), Hour: intPtr(0), Weekday: intPtr(0),
		}},
		{"boundary values", "59 23 31 12 0", calendarTrigger{
			Minute: intPtr(59), Hour: intPtr(23), Day: intPtr(31), Month: intPtr(12), Weekday: intPtr(0),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scheduleToTrigger(tt.schedule)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduleToTriggerRejects(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		errWord  string
	}{
		{"shortcut", "@daily", "shortcut"},
		{"range", "0-30 * * * *", "range"},
		{"step", "*/15 * * * *", "step"},
		{"list", "1,15 * * * *", "list"},
		{"minute too large", "60 0 * * *", "out of range"},
		{"hour too large", "* 24 * * *", "out of range"},
		{"day zero", "* * 0 * *", "out of range"},
		{"month too large", "* * * 13 *", "out of range"},
		{"weekday too large", "* * * * 8", "out of range"},
		{"not a number", "abc * * * *", "must be a number"},
		{"four fields", "* * * *", "5 fields"},
		{"six fields", "* * * * * *", "5 fields"},
		{"empty", "", "5 fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scheduleToTrigger(tt.schedule)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errWord)
		})
	}
}

func TestValidateCommand(t *testing.T) {
	valid := []string{
		"/bin/backup.sh",
		"echo hello world",
		"/usr/local/bin/sync --verbose --dest '/tmp/a b'",
	}
	for _, command := range valid {
		assert.NoError(t, validateCommand(command), command)
	}

	invalid := []string{
		"",
		"   ",
		"echo a | grep b",
		"run & echo done",
		"first; second",
		"echo `date`",
		"echo $HOME",
		"line one\nline two",
		"ending\r",
	}
	for _, command := range invalid {
		assert.Error(t, validateCommand(command), fmt.Sprintf("%q", command))
	}
}

func TestEscapeUnescapeXML(t *testing.T) {
	raw := []string{
		"plain text",
		"a & b",
		"<tag>",
		`quoted "text" and 'more'`,
		`x < y > z & w`,
		"&amp;", // raw text that happens to look escaped
	}
	for _, s := range raw {
		assert.Equal(t, s, unescapeXML(escapeXML(s)), s)
	}

	escaped := []string{
		"a &amp; b",
		"&lt;tag&gt;",
		"&quot;q&quot; &apos;a&apos;",
		"&amp;lt;", // escaped form of "&lt;"
	}
	for _, s := range escaped {
		assert.Equal(t, s, escapeXML(unescapeXML(s)), s)
	}
}

func TestBuildPlist(t *testing.T) {
	trigger, err := scheduleToTrigger("30 2 1 6 7")
	require.NoError(t, err)

	label := "com.cronman.Report.0000"
	got := buildPlist(label, `Report & "Étude"`, "echo '<done>'", trigger, "/tmp/logs")

	want := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>com.cronman.Report.0000</string>
    <key>CronmanTaskName</key>
    <string>Report &amp; &quot;Étude&quot;</string>
    <key>ProgramArguments</key>
    <array>
        <string>/bin/sh</string>
        <string>-c</string>
        <string>echo &apos;&lt;done&gt;&apos;</string>
    </array>
    <key>StartCalendarInterval</key>
    <dict>
        <key>Month</key>
        <integer>6</integer>
        <key>Day</key>
        <integer>1</integer>
        <key>Weekday</key>
        <integer>0</integer>
        <key>Hour</key>
        <integer>2</integer>
        <key>Minute</key>
        <integer>30</integer>
    </dict>
    <key>StandardOutPath</key>
    <string>/tmp/logs/com.cronman.Report.0000.stdout</string>
    <key>StandardErrorPath</key>
    <string>/tmp/logs/com.cronman.Report.0000.stderr</string>
</dict>
</plist>
`
	assert.Equal(t, want, got)
}

func TestBuildPlistEmptyTrigger(t *testing.T) {
	got := buildPlist("com.cronman.T.0", "T", "true", calendarTrigger{}, "/tmp")

	assert.Contains(t, got, "    <key>StartCalendarInterval</key>\n    <dict>\n    </dict>\n")
}

func TestParsePlistRoundTrip(t *testing.T) {
	trigger, err := scheduleToTrigger("15 8 * 3 *")
	require.NoError(t, err)

	name := `Mail & Sync`
	command := `osascript -e 'tell app "Mail" to check'`
	label := entryLabel("com.cronman", name)
	doc := buildPlist(label, name, command, trigger, "/tmp/logs")

	entry := parsePlist(doc, "com.cronman")

	assert.Equal(t, name, entry.Name)
	assert.Equal(t, command, entry.Command)
	assert.Equal(t, "15 8 * 3 *", entry.Schedule)
	assert.True(t, entry.Enabled)
}

func TestParsePlistLegacyLabelFallback(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>com.cronman.Old_Style_Job.deadbeef</string>
    <key>ProgramArguments</key>
    <array>
        <string>/bin/sh</string>
        <string>-c</string>
        <string>/bin/old.sh</string>
    </array>
    <key>StartCalendarInterval</key>
    <dict>
        <key>Hour</key>
        <integer>4</integer>
    </dict>
</dict>
</plist>
`
	entry := parsePlist(doc, "com.cronman")

	assert.Equal(t, "Old Style Job", entry.Name)
	assert.Equal(t, "/bin/old.sh", entry.Command)
	assert.Equal(t, "* 4 * * *", entry.Schedule)
}

func TestParsePlistMissingPieces(t *testing.T) {
	entry := parsePlist("<dict></dict>", "com.cronman")

	assert.Equal(t, "Unknown", entry.Name)
	assert.Equal(t, "", entry.Command)
	assert.Equal(t, "* * * * *", entry.Schedule)
	assert.True(t, entry.Enabled)
}

func TestParsePlistKeepsStoredWeekday(t *testing.T) {
	// A hand-edited descriptor may carry Weekday 7; Load reports it as
	// stored instead of re-normalizing.
	doc := strings.ReplaceAll(
		buildPlist("com.cronman.W.0", "W", "true", calendarTrigger{Weekday: intPtr(0)}, "/tmp"),
		"<integer>0</integer>", "<integer>7</integer>",
	)

	entry := parsePlist(doc, "com.cronman")

	assert.Equal(t, "* * * * 7", entry.Schedule)
}

func TestTriggerScheduleFieldOrder(t *testing.T) {
	trigger, err := scheduleToTrigger("1 2 3 4 5")
	require.NoError(t, err)

	doc := buildPlist("com.cronman.O.0", "O", "true", trigger, "/tmp")

	assert.Equal(t, "1 2 3 4 5", triggerSchedule(doc))
}
