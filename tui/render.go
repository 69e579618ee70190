package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"

	"ticket-booking-cli/model"
	"ticket-booking-cli/store"
)

const (
	defaultColumns  = 5
	noMatchMessage  = "No seats match the criteria."
	titleBlockWidth = 31
)

type theme struct {
	title     lipgloss.Style
	option    lipgloss.Style
	prompt    lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	failure   lipgloss.Style
	faint     lipgloss.Style
	available lipgloss.Style
	reserved  lipgloss.Style
	broken    lipgloss.Style
}

func newTheme(r *lipgloss.Renderer) theme {
	return theme{
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		option:    r.NewStyle().Foreground(lipgloss.Color("4")),
		prompt:    r.NewStyle().Foreground(lipgloss.Color("6")),
		success:   r.NewStyle().Foreground(lipgloss.Color("2")),
		warning:   r.NewStyle().Foreground(lipgloss.Color("3")),
		failure:   r.NewStyle().Foreground(lipgloss.Color("1")),
		faint:     r.NewStyle().Faint(true),
		available: r.NewStyle().Foreground(lipgloss.Color("2")),
		reserved:  r.NewStyle().Foreground(lipgloss.Color("3")),
		broken:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// plainRenderer renders without any escape sequences.
func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func (t theme) statusStyle(status model.SeatStatus) lipgloss.Style {
	switch status {
	case model.StatusAvailable:
		return t.available
	case model.StatusReserved:
		return t.reserved
	case model.StatusBroken:
		return t.broken
	default:
		return t.faint
	}
}

func (t theme) hint(text string) string {
	return t.faint.Render(text)
}

// statusMarkers wraps a seat number so statuses stay distinguishable without color.
func statusMarkers(status model.SeatStatus) (string, string) {
	switch status {
	case model.StatusAvailable:
		return "[", "]"
	case model.StatusReserved:
		return "<", ">"
	case model.StatusBroken:
		return "#", "#"
	default:
		return "?", "?"
	}
}

func seatToken(seat model.Seat) string {
	left, right := statusMarkers(seat.Status)
	return fmt.Sprintf("%s%02d%s", left, seat.Number, right)
}

type titleBlock struct {
	top string
	mid string
	bot string
}

func titleBarBlock(width int, label string) titleBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}

	top := "╔" + strings.Repeat("═", width-2) + "╗"
	bot := "╚" + strings.Repeat("═", width-2) + "╝"

	padding := width - len(label) - 2
	left := padding / 2
	right := padding - left
	mid := "║" + strings.Repeat(" ", left) + label + strings.Repeat(" ", right) + "║"
	return titleBlock{top: top, mid: mid, bot: bot}
}

func renderTitle(label string, th theme) string {
	block := titleBarBlock(titleBlockWidth, label)
	return strings.Join([]string{
		th.title.Render(block.top),
		th.title.Render(block.mid),
		th.title.Render(block.bot),
	}, "\n")
}

func renderLegend(th theme) string {
	parts := make([]string, 0, len(model.Statuses()))
	for _, status := range model.Statuses() {
		left, right := statusMarkers(status)
		parts = append(parts, th.statusStyle(status).Render(left+right+" "+status.String()))
	}
	return strings.Join(parts, " | ")
}

// renderGrid draws every seat, columns per row, followed by a counts line.
func renderGrid(seats *store.SeatStore, columns int, th theme) string {
	if columns < 1 {
		columns = defaultColumns
	}

	var b strings.Builder
	b.WriteString(renderTitle("Seat Status", th))
	b.WriteString("\n")
	b.WriteString(renderLegend(th))
	b.WriteString("\n\n")

	for i, seat := range seats.All() {
		if i > 0 && i%columns == 0 {
			b.WriteString("\n")
		} else if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(th.statusStyle(seat.Status).Render(seatToken(seat)))
	}
	b.WriteString("\n\n")
	b.WriteString(th.hint(seatCounts(seats)))
	return b.String()
}

func seatCounts(seats *store.SeatStore) string {
	parts := make([]string, 0, len(model.Statuses())+1)
	for _, status := range model.Statuses() {
		parts = append(parts, fmt.Sprintf("%s: %d", status, seats.Count(status)))
	}
	parts = append(parts, fmt.Sprintf("Total: %d", seats.Size()))
	return strings.Join(parts, " • ")
}

// renderFiltered lists the seats accepted by keep, in number order.
func renderFiltered(seats []model.Seat, keep func(model.Seat) bool, th theme) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Seat", "Status"})

	found := false
	for _, seat := range seats {
		if !keep(seat) {
			continue
		}
		found = true
		t.AppendRow(table.Row{
			fmt.Sprintf("Seat #%d", seat.Number),
			th.statusStyle(seat.Status).Render(seat.Status.String()),
		})
	}
	if !found {
		return noMatchMessage
	}
	return t.Render()
}

type seatFilter int

const (
	filterNone seatFilter = iota
	filterAll
	filterAvailable
	filterReserved
	filterBroken
)

func (f seatFilter) next() seatFilter {
	if f >= filterBroken {
		return filterNone
	}
	return f + 1
}

func (f seatFilter) label() string {
	switch f {
	case filterAll:
		return "all seats"
	case filterAvailable:
		return "available seats"
	case filterReserved:
		return "reserved seats"
	case filterBroken:
		return "broken seats"
	default:
		return "grid"
	}
}

func (f seatFilter) keep(seat model.Seat) bool {
	switch f {
	case filterAvailable:
		return seat.IsAvailable()
	case filterReserved:
		return seat.IsReserved()
	case filterBroken:
		return seat.IsBroken()
	default:
		return true
	}
}
