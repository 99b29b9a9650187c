package task

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

type field int

const (
	fieldName field = iota
	fieldOverview
	fieldSubTeam
	fieldPreRequisites
	fieldRequiredFor
	fieldStartDate
	fieldDeadline
	fieldTotalDays
	fieldPerson
	fieldCompleted
	fieldSpotsNeeded
	fieldCount
)

// headerAliases lists, per field, the accepted column labels in priority order.
var headerAliases = [fieldCount][]string{
	fieldName:          {"Task", "Task Name"},
	fieldOverview:      {"Simple Overview", "Overview", "Description"},
	fieldSubTeam:       {"Sub-Team", "Sub Team", "Team"},
	fieldPreRequisites: {"Pre-Requisites", "Prerequisites"},
	fieldRequiredFor:   {"Required For", "RequiredFor"},
	fieldStartDate:     {"Start-Date", "Start Date"},
	fieldDeadline:      {"Deadline", "Due Date"},
	fieldTotalDays:     {"Total Days", "Duration"},
	fieldPerson:        {"Person Responsible", "Owner"},
	fieldCompleted:     {"Completed", "Status"},
	fieldSpotsNeeded:   {"Spots Needed", "Spots", "Slots"},
}

var normalizedAliases = func() [fieldCount][]string {
	var out [fieldCount][]string
	for f, names := range headerAliases {
		for _, name := range names {
			out[f] = append(out[f], normalizeHeader(name))
		}
	}
	return out
}()

var completedTokens = map[string]bool{
	"true":     true,
	"yes":      true,
	"y":        true,
	"1":        true,
	"done":     true,
	"complete": true,
}

// strictLayouts are the ISO forms tried before natural-language parsing.
var strictLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
}

// Normalizer converts raw feed rows into task records.
type Normalizer struct {
	// Now supplies "today" for tasks without a start date.
	Now func() time.Time

	// Location is used to read natural-language dates. Defaults to time.Local.
	Location *time.Location
}

// NewNormalizer returns a Normalizer using the given clock (time.Now if nil).
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{Now: now, Location: time.Local}
}

// Normalize converts rows using the wall clock for "today".
func Normalize(rows []Row) []Task {
	return NewNormalizer(nil).Normalize(rows)
}

// Normalize converts rows into tasks in input order. IDs are the 1-based row
// positions; rows with neither a name nor an overview are dropped after IDs
// are assigned.
func (n *Normalizer) Normalize(rows []Row) []Task {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	today := FormatDay(Today(now()))

	tasks := make([]Task, 0, len(rows))
	for i, row := range rows {
		c := indexRow(row)

		t := Task{
			ID:                strconv.Itoa(i + 1),
			Name:              c.text(fieldName, DefaultName),
			Overview:          c.text(fieldOverview, ""),
			SubTeam:           c.text(fieldSubTeam, DefaultSubTeam),
			PreRequisites:     splitList(c.value(fieldPreRequisites)),
			RequiredFor:       splitList(c.value(fieldRequiredFor)),
			TotalDays:         positiveInt(c.value(fieldTotalDays), DefaultTotalDays),
			PersonResponsible: c.text(fieldPerson, DefaultPerson),
			Completed:         completedTokens[strings.ToLower(c.value(fieldCompleted))],
			SpotsNeeded:       positiveInt(c.value(fieldSpotsNeeded), DefaultSpotsNeeded),
		}

		t.StartDate = today
		if d, ok := n.parseDate(c.value(fieldStartDate)); ok {
			t.StartDate = d
		}
		if d, ok := n.parseDate(c.value(fieldDeadline)); ok {
			t.Deadline = d
		}

		if t.Name == DefaultName && t.Overview == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// parseDate tries the strict ISO layouts, then natural month-first forms.
func (n *Normalizer) parseDate(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, layout := range strictLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return plausibleDay(t)
		}
	}
	loc := n.Location
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return "", false
	}
	return plausibleDay(t)
}

// Years outside this window are typos or forms without a year ("1/2").
const (
	minYear = 1900
	maxYear = 2999
)

func plausibleDay(t time.Time) (string, bool) {
	if y := t.Year(); y < minYear || y > maxYear {
		return "", false
	}
	return FormatDay(t), true
}

// rowCells is a row keyed by normalized header label.
type rowCells map[string]string

// indexRow keys row by normalized label. When several labels normalize alike
// the one sorting first wins, so the result never depends on map order.
func indexRow(row Row) rowCells {
	c := make(rowCells, len(row))
	for _, k := range slices.Sorted(maps.Keys(row)) {
		key := normalizeHeader(k)
		if _, taken := c[key]; !taken {
			c[key] = row[k]
		}
	}
	return c
}

// value returns the trimmed cell of the first alias column present in the row.
func (c rowCells) value(f field) string {
	for _, alias := range normalizedAliases[f] {
		if v, ok := c[alias]; ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (c rowCells) text(f field, def string) string {
	if v := c.value(f); v != "" {
		return v
	}
	return def
}

// normalizeHeader lowercases a label and strips all whitespace.
func normalizeHeader(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// positiveInt parses the leading integer of s ("5 days" is 5). Values that
// do not parse or are below 1 yield def.
func positiveInt(s string, def int) int {
	n, ok := leadingInt(s)
	if !ok || n < 1 {
		return def
	}
	return n
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
