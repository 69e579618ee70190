package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ticket-booking-cli/service"
)

type appState int

const (
	stateMenu appState = iota
	stateSeatPrompt
	stateShowSeats
	stateTerminated
)

// Options configures both front ends.
type Options struct {
	Booking *service.Booking
	Columns int
	NoColor bool
	Logger  *slog.Logger
}

func (o Options) columns() int {
	if o.Columns < 1 {
		return defaultColumns
	}
	return o.Columns
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// renderer picks the lipgloss renderer for out. A nil out means the program's
// own terminal.
func (o Options) renderer(out io.Writer) *lipgloss.Renderer {
	if o.NoColor {
		return plainRenderer()
	}
	if out == nil {
		return lipgloss.DefaultRenderer()
	}
	return lipgloss.NewRenderer(out)
}

type appModel struct {
	booking *service.Booking
	logger  *slog.Logger
	theme   theme
	columns int

	state   appState
	pending menuOption
	filter  seatFilter
	notice  string

	width  int
	height int

	menuList  list.Model
	seatInput textinput.Model
}

type menuItem struct {
	option menuOption
}

func (i menuItem) Title() string {
	return fmt.Sprintf("%d. %s", int(i.option), i.option.label())
}

func (i menuItem) Description() string {
	return ""
}

func (i menuItem) FilterValue() string {
	return i.option.label()
}

func New(opts Options) tea.Model {
	m := appModel{
		booking: opts.Booking,
		logger:  opts.logger(),
		theme:   newTheme(opts.renderer(nil)),
		columns: opts.columns(),
		state:   stateMenu,
	}

	m.menuList = newList("Menu", buildMenuItems())

	input := textinput.New()
	input.Placeholder = "seat number"
	input.CharLimit = 6
	input.Width = 12
	input.PromptStyle = m.theme.prompt
	m.seatInput = input

	return m
}

// Run starts the full-screen UI and prints the farewell once the exit option
// has been chosen.
func Run(opts Options) error {
	final, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(appModel); ok && m.state == stateTerminated {
		fmt.Println(m.theme.success.Render(farewellMessage))
	}
	return nil
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeList()
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}
		m = next
	}

	var cmd tea.Cmd
	switch m.state {
	case stateMenu:
		m.menuList, cmd = m.menuList.Update(msg)
	case stateSeatPrompt:
		m.seatInput, cmd = m.seatInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	if m.state == stateTerminated {
		return m.theme.success.Render(farewellMessage) + "\n"
	}

	var body string
	switch m.state {
	case stateMenu:
		body = m.menuList.View()
	case stateSeatPrompt:
		body = m.gridView() + "\n\n" + m.seatInput.View()
	case stateShowSeats:
		body = m.seatsView()
	}
	if m.notice != "" {
		body += "\n\n" + m.notice
	}
	return m.headerView() + "\n\n" + body
}

func (m appModel) headerView() string {
	title := renderTitle(appTitle, m.theme)
	hints := "ctrl+c quit • j/k move • 1-7 or enter choose"
	switch m.state {
	case stateSeatPrompt:
		hints = "ctrl+c quit • esc back • enter confirm seat"
	case stateShowSeats:
		hints = fmt.Sprintf("ctrl+c quit • esc back • f cycle list (%s)", m.filter.label())
	}
	return title + "\n" + m.theme.hint(hints)
}

func (m appModel) gridView() string {
	return renderGrid(m.booking.Seats(), m.columns, m.theme)
}

func (m appModel) seatsView() string {
	if m.filter == filterNone {
		return m.gridView()
	}
	seats := m.booking.Seats().All()
	title := m.theme.title.Render(strings.ToUpper(m.filter.label()[:1]) + m.filter.label()[1:])
	return title + "\n" + renderFiltered(seats, m.filter.keep, m.theme)
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		return m.goBack(), nil, true
	}

	switch m.state {
	case stateMenu:
		switch msg.Type {
		case tea.KeyEnter:
			item, ok := m.menuList.SelectedItem().(menuItem)
			if !ok {
				return m, nil, true
			}
			return m.selectOption(item.option)
		case tea.KeyRunes, tea.KeySpace:
			if isListNavKey(msg) {
				return m, nil, false
			}
			option, err := parseMenuChoice(string(msg.Runes))
			if err != nil {
				m.logger.Debug("menu choice rejected", "error", err)
				m.notice = m.theme.failure.Render(invalidChoice)
				return m, nil, true
			}
			m.menuList.Select(int(option) - 1)
			return m.selectOption(option)
		}
	case stateSeatPrompt:
		if msg.Type == tea.KeyEnter {
			return m.submitSeat()
		}
	case stateShowSeats:
		switch msg.String() {
		case "f":
			m.filter = m.filter.next()
			return m, nil, true
		case "enter":
			return m.goBack(), nil, true
		}
		return m, nil, true
	}
	return m, nil, false
}

// isListNavKey reports whether msg is one of the menu list's letter
// navigation keys, which must not be read as a menu choice.
func isListNavKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "j", "k", "g", "G":
		return true
	}
	return false
}

func (m appModel) selectOption(option menuOption) (appModel, tea.Cmd, bool) {
	m.notice = ""
	m.logger.Debug("menu option selected", "option", int(option), "label", option.label())

	switch option {
	case optionExit:
		m.state = stateTerminated
		return m, tea.Quit, true
	case optionViewAvailable, optionViewAll:
		// Both views show the full grid.
		m.filter = filterNone
		m.state = stateShowSeats
		return m, nil, true
	}

	m.pending = option
	m.state = stateSeatPrompt
	m.seatInput.Reset()
	m.seatInput.Prompt = option.seatPrompt()
	return m, m.seatInput.Focus(), true
}

func (m appModel) submitSeat() (appModel, tea.Cmd, bool) {
	op, ok := m.pending.operation()
	if !ok {
		return m.goBack(), nil, true
	}
	outcome, err := m.booking.Apply(op, parseSeatNumber(m.seatInput.Value()))
	if err != nil {
		m.logger.Debug("operation rejected", "op", op.String(), "invalid_seat", service.IsInvalidSeat(err), "error", err)
	}
	m.notice = resultLine(outcome, err, m.theme)
	m.seatInput.Blur()
	m.state = stateMenu
	return m, nil, true
}

func (m appModel) goBack() appModel {
	switch m.state {
	case stateSeatPrompt:
		m.seatInput.Blur()
		m.state = stateMenu
	case stateShowSeats:
		m.state = stateMenu
	}
	return m
}

func (m *appModel) resizeList() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 8
	if h < len(menuOptions())+2 {
		h = len(menuOptions()) + 2
	}
	m.menuList.SetSize(m.width, h)
}

func buildMenuItems() []list.Item {
	items := make([]list.Item, 0, len(menuOptions()))
	for _, option := range menuOptions() {
		items = append(items, menuItem{option: option})
	}
	return items
}

func newList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	l := list.New(items, delegate, 40, len(items)+4)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	return l
}
