// Package tui hosts facet surfaces inside an interactive terminal program.
// The model renders a grid of widgets above a scrollable stack of views,
// with an activity footer fed by the update journal. Registry updates are
// bridged into the program loop as messages, so the screen follows the
// store without polling.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/facet-ui/facet/action"
	"github.com/facet-ui/facet/journal"
	"github.com/facet-ui/facet/notify"
	"github.com/facet-ui/facet/observability"
	"github.com/facet-ui/facet/registry"
	"github.com/facet-ui/facet/render"
)

const (
	// updateBuffer is the bridge channel capacity per category.
	updateBuffer = 16
	// minViewportHeight keeps the views pane usable on tiny terminals.
	minViewportHeight = 3

	defaultJournalLines = 5
	statusClearAfter    = 4 * time.Second
)

// UpdateMsg carries a registry update into the program loop.
type UpdateMsg struct {
	Update notify.Update
}

// ActionResultMsg reports a completed action dispatch.
type ActionResultMsg struct {
	Name   string
	Result action.Result
	Err    error
}

type tickMsg time.Time

type clearStatusMsg struct{}

// Option configures a Model during construction.
type Option func(*Model)

// WithJournal attaches the update journal shown in the activity footer.
func WithJournal(j journal.Journal) Option {
	return func(m *Model) {
		m.journal = j
	}
}

// WithObserver sets the observer passed to the surfaces and render
// environments.
func WithObserver(o observability.Observer) Option {
	return func(m *Model) {
		m.observer = o
	}
}

// WithClock overrides the time source surfaced to children at key "now".
func WithClock(clock func() time.Time) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// WithCategories overrides which registry categories the grid and the stack
// render.
func WithCategories(widgets, views string) Option {
	return func(m *Model) {
		m.widgetCategory = widgets
		m.viewCategory = views
	}
}

// WithGridConfig overrides the widget grid configuration.
func WithGridConfig(cfg render.GridConfig) Option {
	return func(m *Model) {
		m.gridCfg = cfg
	}
}

// WithStackConfig overrides the view stack configuration.
func WithStackConfig(cfg render.StackConfig) Option {
	return func(m *Model) {
		m.stackCfg = cfg
	}
}

// WithJournalLines sets how many journal entries the activity footer shows.
func WithJournalLines(n int) Option {
	return func(m *Model) {
		m.journalLines = n
	}
}

// WithKeyMap replaces the default keybindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// Model is the bubbletea model hosting both surfaces. Construct with New;
// the zero value is not usable.
type Model struct {
	widgets *render.Grid
	views   *render.Stack

	widgetStore *registry.Store
	viewStore   *registry.Store

	journal  journal.Journal
	observer observability.Observer
	clock    func() time.Time
	keys     KeyMap

	widgetCategory string
	viewCategory   string
	gridCfg        render.GridConfig
	stackCfg       render.StackConfig
	journalLines   int

	viewport    viewport.Model
	gridFrame   render.Frame
	stackFrame  render.Frame
	status      string
	showHelp    bool
	showJournal bool
	ready       bool
	width       int
	height      int
}

// New builds a Model over the root store. The grid renders the widget
// category and the stack renders the view category; both sub-stores are
// created on first access.
func New(root *registry.Store, opts ...Option) Model {
	m := Model{
		observer:       observability.NoOpObserver{},
		clock:          time.Now,
		keys:           DefaultKeyMap(),
		widgetCategory: "widgets",
		viewCategory:   "views",
		gridCfg:        render.DefaultGridConfig(),
		stackCfg:       render.DefaultStackConfig(),
		journalLines:   defaultJournalLines,
		showJournal:    true,
		status:         "ready",
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.gridCfg.Observer == nil {
		m.gridCfg.Observer = m.observer
	}
	if m.stackCfg.Observer == nil {
		m.stackCfg.Observer = m.observer
	}

	m.widgetStore = root.Category(m.widgetCategory)
	m.viewStore = root.Category(m.viewCategory)
	m.widgets = render.NewGrid(m.widgetStore, m.gridCfg)
	m.views = render.NewStack(m.viewStore, m.stackCfg)

	return m
}

// Close detaches both surfaces from their stores.
func (m Model) Close() {
	m.widgets.Close()
	m.views.Close()
}

// Init schedules the first clock tick.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles all messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil

	case UpdateMsg:
		m.status = describeUpdate(msg.Update)
		m.refresh()
		return m, nil

	case ActionResultMsg:
		if msg.Err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("%s: %v", msg.Name, msg.Err))
		} else if msg.Result.IsError {
			m.status = errorStyle.Render(fmt.Sprintf("%s: %s", msg.Name, msg.Result.Output))
		} else if msg.Result.Output != "" {
			m.status = fmt.Sprintf("%s: %s", msg.Name, msg.Result.Output)
		} else {
			m.status = fmt.Sprintf("%s: done", msg.Name)
		}
		// The action may have mutated the stores.
		m.refresh()
		return m, tea.Tick(statusClearAfter, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The help overlay swallows everything except dismiss and quit.
	if m.showHelp {
		if key.Matches(msg, m.keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Journal):
		m.showJournal = !m.showJournal
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.status = "refreshed"
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Action):
		return m.dispatchAction(msg.String())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// dispatchAction runs the nth registered action, where digit "1" is the
// first action in List order. The handler runs asynchronously; its outcome
// arrives as an ActionResultMsg.
func (m Model) dispatchAction(digit string) (tea.Model, tea.Cmd) {
	idx := int(digit[0] - '1')
	actions := action.List()
	if idx < 0 || idx >= len(actions) {
		m.status = fmt.Sprintf("no action bound to %s", digit)
		return m, nil
	}

	name := actions[idx].Name
	m.status = fmt.Sprintf("running %s", name)
	return m, func() tea.Msg {
		result, err := action.Execute(context.Background(), name, nil)
		return ActionResultMsg{Name: name, Result: result, Err: err}
	}
}

// refresh re-renders both surfaces and resizes the views pane around the
// other screen sections. No-op until the first window size arrives.
func (m *Model) refresh() {
	if m.width == 0 {
		return
	}

	env := render.NewEnv(m.observer).With("now", m.clock())
	m.gridFrame = m.widgets.Render(env.WithSize(m.width, 0))

	chrome := lipgloss.Height(m.headerView()) + m.gridHeight() + lipgloss.Height(m.footerView())
	vh := m.height - chrome
	if vh < minViewportHeight {
		vh = minViewportHeight
	}

	m.stackFrame = m.views.Render(env.WithSize(m.width, vh))

	if !m.ready {
		m.viewport = viewport.New(m.width, vh)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vh
	}
	m.viewport.SetContent(m.stackFrame.Output)
}

// View renders the entire UI.
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.showHelp {
		return m.helpView()
	}

	sections := []string{m.headerView()}
	if m.gridFrame.Output != "" {
		sections = append(sections, m.gridFrame.Output)
	}
	sections = append(sections, m.viewport.View(), m.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	counts := countStyle.Render(fmt.Sprintf("%d widgets  %d views",
		m.widgetStore.Len(), m.viewStore.Len()))

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("facet"),
		counts,
	)
	if m.status != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top,
			header,
			statusStyle.Render(m.status),
		)
	}

	line := strings.Repeat("─", max(m.width, 1))
	return lipgloss.JoinVertical(lipgloss.Left, header, line)
}

func (m Model) gridHeight() int {
	if m.gridFrame.Output == "" {
		return 0
	}
	return lipgloss.Height(m.gridFrame.Output)
}

func (m Model) footerView() string {
	var sections []string
	if m.showJournal && m.journal != nil {
		for _, u := range m.journal.Tail(m.journalLines) {
			sections = append(sections, journalLineStyle.Render(formatUpdate(u)))
		}
	}
	sections = append(sections, m.helpBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) helpBar() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts,
			helpKeyStyle.Render(b.Help().Key)+" "+helpDescStyle.Render(b.Help().Desc))
	}
	return strings.Join(parts, "  ")
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("facet keys"))
	b.WriteString("\n")

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "%s %s\n",
				helpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)),
				helpDescStyle.Render(h.Desc))
		}
		b.WriteString("\n")
	}

	if actions := action.List(); len(actions) > 0 {
		b.WriteString(helpTitleStyle.Render("actions"))
		b.WriteString("\n")
		for i, act := range actions {
			if i >= 9 {
				break
			}
			fmt.Fprintf(&b, "%s %s\n",
				helpKeyStyle.Render(fmt.Sprintf("%-10d", i+1)),
				helpDescStyle.Render(act.Name+"  "+act.Description))
		}
	}

	return b.String()
}

func describeUpdate(u notify.Update) string {
	return fmt.Sprintf("%s %s/%s", u.Op, u.Store, u.Key)
}

func formatUpdate(u notify.Update) string {
	return fmt.Sprintf("%s  %-7s %s/%s",
		u.Time.Format("15:04:05"), u.Op, u.Store, u.Key)
}

// Run starts the terminal host and blocks until the user quits or ctx ends.
// Updates from both rendered categories are forwarded into the program so
// the screen follows the store.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())

	stop := m.bridge(ctx, p)
	defer stop()

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}

// bridge forwards updates from both category stores to the program. The
// returned func detaches the subscriptions.
func (m Model) bridge(ctx context.Context, p *tea.Program) func() {
	stores := []*registry.Store{m.widgetStore, m.viewStore}
	stops := make([]func(), 0, len(stores))

	for _, store := range stores {
		stream, sub := store.Updates(ctx, updateBuffer)
		go func() {
			for {
				u, err := stream.Receive(ctx)
				if err != nil {
					return
				}
				p.Send(UpdateMsg{Update: u})
			}
		}()
		stops = append(stops, func() { store.Unsubscribe(sub) })
	}

	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}
