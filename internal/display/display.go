// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent collection status bar and an input
// prompt at the bottom of the terminal. All application output is
// printed above the rendered area via Program.Println,
// ensuring concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	emptyValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

const prompt = "recipes> "

// Status is the snapshot shown in the status bar.
type Status struct {
	Filter  string
	Search  string
	Sort    string
	Visible int
	Total   int
	Cart    int
}

// StatusSource supplies the status bar contents. It is polled from the
// Bubble Tea goroutine and must be safe for concurrent use.
type StatusSource interface {
	Status() Status
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking).  Other goroutines may
// safely call [UI.Println], the Print* helpers, and read from
// [UI.InputChan] at any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	source  StatusSource
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(source StatusSource) *UI {
	return &UI{
		source:  source,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}


// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a conversational line.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintHeading prints a recipe title or section header.
func (u *UI) PrintHeading(text string) {
	u.Println(headingStyle.Render("  " + text))
}

// PrintListItem prints one numbered line of a recipe listing.
func (u *UI) PrintListItem(n int, name, category string, favorite bool) {
	star := "  "
	if favorite {
		star = favoriteStyle.Render("★ ")
	}
	u.Println(fmt.Sprintf("  %s%s %s %s",
		secondaryStyle.Render(fmt.Sprintf("%3d.", n)),
		star,
		primaryStyle.Render(name),
		secondaryStyle.Render("("+category+")")))
}

// PrintBody prints primary text such as instructions.
func (u *UI) PrintBody(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("recipes") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop.  Blocks until quit.
func (u *UI) Run() error {
	m := newModel(u.source, u.inputCh, u.readyCh, u.PrintUserInput)
	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	source  StatusSource
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string) // prints user input into scrollback
	status  Status
	width   int
}

func newModel(source StatusSource, inputCh chan<- string, readyCh chan struct{}, echoFn func(string)) model {
	ti := textinput.New()
	// Plain-text prompt: styled prompts add ANSI bytes that break the
	// textinput width math for long input.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		source:  source,
		input:   ti,
		inputCh: inputCh,
		readyCh: readyCh,
		echoFn:  echoFn,
	}
	m.refresh()
	return m
}

// Messages.
type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so it runs outside Update.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	if m.source != nil {
		m.status = m.source.Status()
	}
}

func (m model) titleStr() string {
	return fmt.Sprintf("RecipeBox (%d/%d)", m.status.Visible, m.status.Total)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderBar(m.status, m.width))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

// renderBar draws the status bar at width columns (80 if unknown).
func renderBar(st Status, width int) string {
	search := emptyValueStyle.Render("none")
	if st.Search != "" {
		search = valueStyle.Render(fmt.Sprintf("%q", st.Search))
	}

	parts := []string{
		labelStyle.Render("filter: ") + valueStyle.Render(st.Filter),
		labelStyle.Render("search: ") + search,
		labelStyle.Render("sort: ") + valueStyle.Render(st.Sort),
		labelStyle.Render("showing: ") + valueStyle.Render(fmt.Sprintf("%d/%d", st.Visible, st.Total)),
		labelStyle.Render("cart: ") + valueStyle.Render(fmt.Sprintf("%d", st.Cart)),
	}
	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}
