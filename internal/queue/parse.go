package queue

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

const invalidLineMessage = `Invalid format. Use: "Task description [number]" or "Task description number"`

// ParsedLine is the result of parsing one line of bulk-import text.
type ParsedLine struct {
	LineNumber  int    `json:"lineNumber"`
	Original    string `json:"original"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	Valid       bool   `json:"valid"`
	Assumed     bool   `json:"assumed,omitempty"` // no count found, defaulted to 1
	Error       string `json:"error,omitempty"`
}

type linePattern struct {
	re *regexp.Regexp
	// countFirst is set when the number precedes the description.
	countFirst bool
}

// Checked in order; the first pattern that yields a count in range wins.
var linePatterns = []linePattern{
	{re: regexp.MustCompile(`^(.+?)[\s\x{3000}]+(\d+)$`)},
	{re: regexp.MustCompile(`^(.+?)[\s\x{3000}]*[\[(（](\d+)[\])）]$`)},
	{re: regexp.MustCompile(`^(\d+)[.\s\x{3000}]+(.+)$`), countFirst: true},
	{re: regexp.MustCompile(`^(\d+)[：:、][\s\x{3000}]*(.+)$`), countFirst: true},
	{re: regexp.MustCompile(`^(\d+)[）)][\s\x{3000}]*(.+)$`), countFirst: true},
}

var strippedForFallback = regexp.MustCompile(`[\[\]()（）0-9]`)

// ParseBulk parses multi-line text into one entry per non-blank line.
// Lines are numbered after blank lines are dropped.
func ParseBulk(text string) []ParsedLine {
	var out []ParsedLine
	n := 0
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		n++
		out = append(out, ParseLine(line, n))
	}
	return out
}

// ParseLine parses a single line. It never fails: a line no rule accepts
// comes back with Valid unset and a diagnostic in Error.
func ParseLine(line string, lineNumber int) ParsedLine {
	line = strings.TrimSpace(line)
	folded := foldDigits(line)

	for _, p := range linePatterns {
		m := p.re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		desc, num := m[1], m[2]
		if p.countFirst {
			desc, num = m[2], m[1]
		}
		desc = strings.TrimSpace(desc)
		count, err := strconv.Atoi(num)
		if err != nil || desc == "" || count < MinSessions || count > MaxSessions {
			continue
		}
		return ParsedLine{
			LineNumber:  lineNumber,
			Original:    line,
			Description: desc,
			Count:       count,
			Valid:       true,
		}
	}

	if looksLikeTask(folded) {
		return ParsedLine{
			LineNumber:  lineNumber,
			Original:    line,
			Description: line,
			Count:       1,
			Valid:       true,
			Assumed:     true,
		}
	}

	return ParsedLine{
		LineNumber:  lineNumber,
		Original:    line,
		Description: line,
		Error:       invalidLineMessage,
	}
}

func looksLikeTask(line string) bool {
	clean := strings.TrimSpace(strippedForFallback.ReplaceAllString(line, ""))
	if clean == "" {
		return false
	}
	for _, r := range clean {
		if unicode.Is(unicode.Han, r) || (r < utf8.RuneSelf && unicode.IsLetter(r)) {
			return true
		}
	}
	return utf8.RuneCountInString(clean) > 2
}

// foldDigits narrows full-width digits (０-９) so the patterns above see
// plain ASCII numbers.
func foldDigits(s string) string {
	t := runes.If(runes.Predicate(func(r rune) bool { return r >= '０' && r <= '９' }), width.Narrow, nil)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Valid returns only the importable entries.
func Valid(lines []ParsedLine) []ParsedLine {
	var out []ParsedLine
	for _, l := range lines {
		if l.Valid {
			out = append(out, l)
		}
	}
	return out
}

// Import appends one task per valid parsed line. Counts are kept as-is;
// nothing is split.
func Import(tasks []Task, lines []ParsedLine) ([]Task, []Task, error) {
	var added []Task
	out := tasks
	for _, l := range Valid(lines) {
		var t Task
		var err error
		out, t, err = Add(out, l.Description, l.Count)
		if err != nil {
			return tasks, nil, err
		}
		added = append(added, t)
	}
	return out, added, nil
}
