package views

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/theme"
)

// Project is one entry of the portfolio list.
type Project struct {
	Title   string
	Summary string
	Detail  string
	Slides  []string
}

// Portfolio lists projects. At most one project is expanded; expanding one
// collapses the others.
type Portfolio struct {
	items    []Project
	expanded int
	cursor   int
	slide    int
	every    time.Duration
}

// NewPortfolio creates the list. The expanded project's slides advance every
// interval; zero disables the slideshow.
func NewPortfolio(items []Project, every time.Duration) *Portfolio {
	return &Portfolio{items: items, expanded: -1, every: every}
}

func (p *Portfolio) Items() []Project { return p.items }
func (p *Portfolio) Cursor() int { return p.cursor }

// Expanded returns the index of the expanded project, or -1.
func (p *Portfolio) Expanded() int { return p.expanded }

func (p *Portfolio) Expand(i int) {
	if i < 0 || i >= len(p.items) {
		return
	}
	p.expanded = i
	p.cursor = i
	p.slide = 0
}

func (p *Portfolio) Collapse() {
	p.expanded = -1
}

// Slide returns the current slide of the expanded project.
func (p *Portfolio) Slide() string {
	if p.expanded < 0 {
		return ""
	}
	slides := p.items[p.expanded].Slides
	if len(slides) == 0 {
		return ""
	}
	return slides[p.slide%len(slides)]
}

// slideMsg advances the slideshow of the expanded project.
type slideMsg struct{}

// Init starts the slideshow ticker.
func (p *Portfolio) Init() tea.Cmd {
	if p.every <= 0 {
		return nil
	}
	return tea.Tick(p.every, func(time.Time) tea.Msg { return slideMsg{} })
}

// Update handles keys for the list and advances the slideshow. The slideshow
// loops: after the last slide it starts over.
func (p *Portfolio) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case slideMsg:
		if p.expanded >= 0 {
			p.slide++
		}
		return p.Init()
	case tea.KeyMsg:
		if len(p.items) == 0 {
			return nil
		}
		switch msg.String() {
		case "up", "k":
			p.cursor = max(p.cursor-1, 0)
		case "down", "j":
			p.cursor = min(p.cursor+1, len(p.items)-1)
		case "enter", " ":
			if p.expanded == p.cursor {
				p.Collapse()
			} else {
				p.Expand(p.cursor)
			}
		case "esc":
			p.Collapse()
		}
	}
	return nil
}

// View renders the list with the expanded project's detail and slide.
func (p *Portfolio) View(pal theme.Palette, width int) string {
	title := lipgloss.NewStyle().Foreground(pal.Accent).Bold(true)
	muted := lipgloss.NewStyle().Foreground(pal.Muted)
	text := lipgloss.NewStyle().Foreground(pal.Foreground)
	body := lipgloss.NewStyle().Foreground(pal.Foreground).Width(max(width-8, 10))
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Accent).
		Padding(0, 1).
		Width(max(width-4, 10))

	var b strings.Builder
	for i, it := range p.items {
		marker := "  "
		if i == p.cursor {
			marker = "▸ "
		}
		if i == p.expanded {
			detail := title.Render(it.Title) + "\n" + body.Render(it.Detail)
			if s := p.Slide(); s != "" {
				detail += "\n\n" + muted.Render(s)
			}
			b.WriteString(card.Render(detail))
			b.WriteString("\n")
			continue
		}
		style := muted
		if p.expanded < 0 {
			style = text
		}
		b.WriteString(marker + title.Render(it.Title) + " " + style.Render(it.Summary))
		b.WriteString("\n")
	}
	return b.String()
}
