package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pomitik/tik/internal/duration"
)

// Group aggregates the entries sharing one name.
type Group struct {
	Name  string
	Count int
	Total time.Duration
}

// Section is one time window of the summary.
type Section struct {
	Title  string
	Count  int
	Total  time.Duration
	Groups []Group
}

// Styles controls summary rendering.
type Styles struct {
	Title    lipgloss.Style
	Meta     lipgloss.Style
	Name     lipgloss.Style
	Count    lipgloss.Style
	Duration lipgloss.Style
	None     lipgloss.Style
}

// DefaultStyles returns the summary color scheme. Colors degrade to
// plain text automatically on dumb terminals and pipes.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Meta:     lipgloss.NewStyle().Faint(true),
		Name:     lipgloss.NewStyle(),
		Count:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Duration: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		None:     lipgloss.NewStyle().Faint(true),
	}
}

// Summarize buckets entries into Today and This-week sections relative
// to now. Weeks start on Monday, in now's location.
func Summarize(entries []Entry, now time.Time) []Section {
	loc := now.Location()
	today := dayOf(now)
	monday := today.AddDate(0, 0, -daysSinceMonday(now))

	var todayEntries, weekEntries []Entry

	for _, e := range entries {
		day := dayOf(e.CompletedAt.In(loc))
		if day.Equal(today) {
			todayEntries = append(todayEntries, e)
		}

		if !day.Before(monday) {
			weekEntries = append(weekEntries, e)
		}
	}

	return []Section{
		buildSection("Today", todayEntries),
		buildSection("This week", weekEntries),
	}
}

func buildSection(title string, entries []Entry) Section {
	section := Section{Title: title, Count: len(entries)}

	totals := make(map[string]*Group)

	for _, e := range entries {
		section.Total += e.Duration()

		g, ok := totals[e.Name]
		if !ok {
			g = &Group{Name: e.Name}
			totals[e.Name] = g
		}

		g.Count++
		g.Total += e.Duration()
	}

	for _, g := range totals {
		section.Groups = append(section.Groups, *g)
	}

	// Longest total first; names break ties so output stays stable.
	sort.Slice(section.Groups, func(i, j int) bool {
		if section.Groups[i].Total != section.Groups[j].Total {
			return section.Groups[i].Total > section.Groups[j].Total
		}

		return section.Groups[i].Name < section.Groups[j].Name
	})

	return section
}

// Render returns the styled summary text for the given sections.
func Render(sections []Section, st *Styles) string {
	if st == nil {
		st = DefaultStyles()
	}

	var b strings.Builder

	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}

		renderSection(&b, section, st)
	}

	return b.String()
}

func renderSection(b *strings.Builder, section Section, st *Styles) {
	noun := "sessions"
	if section.Count == 1 {
		noun = "session"
	}

	b.WriteString(st.Title.Render(section.Title))
	b.WriteString(st.Meta.Render(fmt.Sprintf(" (%d %s, %s):", section.Count, noun, duration.FormatHuman(section.Total))))
	b.WriteString("\n")

	if len(section.Groups) == 0 {
		b.WriteString(st.None.Render("  (none)"))
		b.WriteString("\n")
		return
	}

	for _, g := range section.Groups {
		b.WriteString("  ")
		b.WriteString(st.Name.Render(fmt.Sprintf("%-14s", g.Name)))

		if g.Count > 1 {
			b.WriteString(" ")
			b.WriteString(st.Count.Render(fmt.Sprintf("x%-4d", g.Count)))
			b.WriteString(" ")
		} else {
			b.WriteString("       ")
		}

		b.WriteString(st.Duration.Render(duration.FormatHuman(g.Total)))
		b.WriteString("\n")
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
