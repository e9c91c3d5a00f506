package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#00AFAF", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	subject lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
}

func NewPalette(s, e, w, h string) *Palette {
	return &Palette{
		subject: NewStyle(s),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
	}
}

// Subject highlights the header line of an unavailable video.
func (p *Palette) Subject(s string) string { return p.subject.Render(s) }

// Error styles search failures.
func (p *Palette) Error(s string) string { return p.err.Render(s) }

func (p *Palette) Warn(s string) string { return p.warn.Render(s) }

// Help styles the acknowledgement prompt.
func (p *Palette) Help(s string) string { return p.help.Render(s) }

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
