package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glossnet/internal/datasource"
	"github.com/vanderheijden86/glossnet/pkg/access"
	"github.com/vanderheijden86/glossnet/pkg/config"
	"github.com/vanderheijden86/glossnet/pkg/debug"
	"github.com/vanderheijden86/glossnet/pkg/model"
	"github.com/vanderheijden86/glossnet/pkg/network"
	"github.com/vanderheijden86/glossnet/pkg/panel"
	"github.com/vanderheijden86/glossnet/pkg/watcher"
)

// View width below which only one pane is shown at a time.
const splitViewThreshold = 80

// writeClipboard and openURL are swapped out in tests.
var (
	writeClipboard = clipboard.WriteAll
	openURL        = openInBrowser
)

// openInBrowser hands url to the platform opener without waiting for it.
func openInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// focus represents which pane has keyboard focus
type focus int

const (
	focusList focus = iota
	focusDetail
)

// screen is the top-level state of the program.
type screen int

const (
	screenGate screen = iota
	screenLoading
	screenError
	screenMain
)

// DatasetLoadedMsg carries freshly loaded rows.
type DatasetLoadedMsg struct {
	Entries []model.Entry
	Source  datasource.DataSource
	Reload  bool
}

// DatasetErrorMsg reports a failed load.
type DatasetErrorMsg struct {
	Err    error
	Reload bool
}

// FileChangedMsg is sent when the watched dataset changes on disk.
type FileChangedMsg struct{}

// WatchErrorMsg reports a watcher failure such as the file being removed.
type WatchErrorMsg struct {
	Err error
}

type frameTickMsg struct {
	id int
}

// LoadDatasetCmd loads the dataset off the update loop.
func LoadDatasetCmd(path string, reload bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		entries, src, err := datasource.LoadEntries(path)
		debug.LogTiming("ui: load dataset", time.Since(start))
		if err != nil {
			return DatasetErrorMsg{Err: err, Reload: reload}
		}
		return DatasetLoadedMsg{Entries: entries, Source: src, Reload: reload}
	}
}

// WatchFileCmd waits for the next change or failure reported by w.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.Changed():
			return FileChangedMsg{}
		case err := <-w.Errors():
			return WatchErrorMsg{Err: err}
		}
	}
}

func frameTickCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return frameTickMsg{id: id} })
}

// selection records the entry the session last reported. The session's
// callback writes it; the model reads it after every event.
type selection struct {
	entry   model.Entry
	changed bool
}

func (s *selection) set(e model.Entry) {
	s.entry = e
	s.changed = true
}

// Options configures NewModel.
type Options struct {
	Config config.Config
	// DataPath is a dataset file or a directory to search. Empty uses
	// Config.Data.Path.
	DataPath string
	// Gate guards the viewer. Nil means no prompt.
	Gate    *access.Gate
	Watcher *watcher.Watcher
	View    network.View
	Seed    uint64
}

// Model is the main Bubble Tea model for the glossary viewer
type Model struct {
	cfg      config.Config
	dataPath string
	mediaDir string
	seed     uint64
	theme    Theme

	gate      *access.Gate
	gateModel GateModel
	watcher   *watcher.Watcher

	screen  screen
	focused focus
	loadErr error

	session   *network.Session
	source    datasource.DataSource
	stats     network.Stats
	sel       *selection
	startView network.View
	// Rows waiting for the first window size.
	pending *DatasetLoadedMsg

	list      list.Model
	viewport  viewport.Model
	renderer  *MarkdownRenderer
	graph     GraphModel
	detailRow int

	width          int
	height         int
	ready          bool
	isSplitView    bool
	splitPaneRatio float64
	frameInterval  time.Duration
	tickID         int

	statusMsg     string
	statusIsError bool
}

// NewModel creates the viewer. Nothing is loaded until Init runs.
func NewModel(opts Options) Model {
	cfg := opts.Config
	dataPath := opts.DataPath
	if dataPath == "" {
		dataPath = cfg.Data.Path
	}

	theme := TestTheme()
	delegate := TermDelegate{Theme: theme}

	// Default dimensions until the first WindowSizeMsg
	const defaultWidth = 120
	const defaultHeight = 40

	l := list.New(nil, delegate, defaultWidth, defaultHeight-3)
	l.Styles.Title = lipgloss.NewStyle()
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.Styles.StatusBar = lipgloss.NewStyle()
	l.Styles.PaginationStyle = lipgloss.NewStyle()
	l.Styles.HelpStyle = lipgloss.NewStyle()
	l.Styles.FilterPrompt = lipgloss.NewStyle().Foreground(theme.Primary)
	l.Styles.FilterCursor = lipgloss.NewStyle().Foreground(theme.Primary)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	ratio := cfg.UI.SplitRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = config.DefaultConfig().UI.SplitRatio
	}
	interval := cfg.FrameInterval()
	if interval <= 0 {
		interval = config.DefaultConfig().FrameInterval()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Network.Seed
	}

	m := Model{
		cfg:            cfg,
		dataPath:       dataPath,
		mediaDir:       cfg.ResolvedMediaDir(),
		seed:           seed,
		theme:          theme,
		gate:           opts.Gate,
		watcher:        opts.Watcher,
		screen:         screenLoading,
		focused:        focusList,
		sel:            &selection{},
		startView:      opts.View,
		list:           l,
		viewport:       viewport.New(defaultWidth/2, defaultHeight-4),
		renderer:       NewMarkdownRendererWithTheme(defaultWidth/2-2, theme),
		graph:          NewGraphModel(theme),
		detailRow:      -1,
		width:          defaultWidth,
		height:         defaultHeight,
		isSplitView:    true,
		splitPaneRatio: ratio,
		frameInterval:  interval,
	}
	if m.gate != nil && !m.gate.Granted() {
		m.screen = screenGate
		m.gateModel = NewGateModel(m.gate, theme)
	}
	return m
}

// Init loads the dataset, or, behind a locked gate, only starts the prompt.
// The load then waits for the passkey.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.screen == screenGate {
		cmds = append(cmds, m.gateModel.Init())
	} else {
		cmds = append(cmds, LoadDatasetCmd(m.dataPath, false))
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.recalculateSizes()
		if m.pending != nil {
			pending := *m.pending
			m.pending = nil
			var cmd tea.Cmd
			m, cmd = m.handleLoaded(pending)
			cmds = append(cmds, cmd)
		}
		if m.screen == screenGate {
			var cmd tea.Cmd
			m.gateModel, cmd = m.gateModel.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case DatasetLoadedMsg:
		return m.handleLoaded(msg)

	case DatasetErrorMsg:
		return m.handleLoadError(msg), nil

	case FileChangedMsg:
		debug.Log("ui: dataset changed on disk")
		if m.screen != screenGate {
			cmds = append(cmds, LoadDatasetCmd(m.dataPath, true))
		}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case WatchErrorMsg:
		if errors.Is(msg.Err, watcher.ErrFileRemoved) {
			m.setStatus("Dataset was removed; showing the last loaded copy", true)
		} else {
			m.setStatus(fmt.Sprintf("Watch: %v", msg.Err), true)
		}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case frameTickMsg:
		if msg.id != m.tickID || !m.animating() {
			return m, nil
		}
		m.graph.Render(m.session, true)
		return m, frameTickCmd(m.tickID, m.frameInterval)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenGate:
		return m.updateGate(msg)
	case screenError, screenLoading:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "q", "esc":
				return m, tea.Quit
			case "r":
				m.screen = screenLoading
				m.loadErr = nil
				return m, LoadDatasetCmd(m.dataPath, false)
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeys(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}

	// Filtering runs asynchronously and reports back through list messages.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateGate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.gateModel, cmd = m.gateModel.Update(msg)
	if m.gateModel.IsCancelRequested() {
		return m, tea.Quit
	}
	if m.gateModel.IsGranted() {
		return m.afterGate()
	}
	return m, cmd
}

// afterGate leaves the gate and starts the dataset load.
func (m Model) afterGate() (tea.Model, tea.Cmd) {
	if w := m.gateModel.Warning(); w != "" {
		m.setStatus(w, true)
	}
	m.screen = screenLoading
	m.loadErr = nil
	return m, LoadDatasetCmd(m.dataPath, false)
}

func (m Model) handleLoaded(msg DatasetLoadedMsg) (Model, tea.Cmd) {
	if m.screen == screenGate {
		// Nothing is built until the passkey is accepted.
		debug.Log("ui: dropping dataset loaded behind the gate")
		return m, nil
	}
	if !m.ready {
		m.pending = &msg
		return m, nil
	}

	view := m.startView
	var keepTerm string
	if m.session != nil {
		view = m.session.View()
		if n := m.session.Selected(); n != nil {
			keepTerm = n.Term()
		}
	}

	sel := &selection{}
	s := network.NewSession(m.graph.Sizer(),
		network.WithSeed(m.seed),
		network.WithView(view),
		network.WithOnSelect(sel.set),
	)
	if err := s.Load(msg.Entries); err != nil {
		return m.handleLoadError(DatasetErrorMsg{Err: err, Reload: msg.Reload}), nil
	}
	if keepTerm != "" {
		for _, n := range s.Nodes() {
			if n.Term() == keepTerm {
				_ = s.Select(n)
				break
			}
		}
	}

	m.session = s
	m.sel = sel
	m.source = msg.Source
	m.stats = network.Analyze(s.Nodes())
	m.loadErr = nil
	m.list.ResetFilter()
	m.list.SetItems(itemsFromNodes(s.Nodes()))
	m.detailRow = -1
	m.syncSelection()

	if msg.Reload {
		m.setStatus(fmt.Sprintf("Reloaded %d terms", len(s.Nodes())), false)
	}
	m.screen = screenMain
	return m, m.startAnimation()
}

// handleLoadError shows the error screen, unless a session is already up, in
// which case a failed reload keeps it and only reports.
func (m Model) handleLoadError(msg DatasetErrorMsg) Model {
	debug.Log("ui: load failed: %v", msg.Err)
	if m.screen == screenGate {
		return m
	}
	if msg.Reload && m.session != nil {
		m.setStatus(fmt.Sprintf("Reload failed: %v", msg.Err), true)
		return m
	}
	m.loadErr = msg.Err
	m.screen = screenError
	return m
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing a filter owns the keyboard.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.followListCursor()
		return m, cmd
	}

	m.statusMsg = ""
	m.statusIsError = false

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.currentView() == network.ViewNetwork {
			return m, m.setView(network.ViewDirectory)
		}
		return m, m.setView(network.ViewNetwork)
	case "1":
		return m, m.setView(network.ViewDirectory)
	case "2":
		return m, m.setView(network.ViewNetwork)
	case "y":
		m.copySelected()
		return m, nil
	case "o":
		m.openSelectedLink()
		return m, nil
	case "r":
		m.setStatus("Reloading…", false)
		return m, LoadDatasetCmd(m.dataPath, true)
	case "L":
		return m.lock()
	case "pgdown", "ctrl+d":
		m.viewport.HalfViewDown()
		return m, nil
	case "pgup", "ctrl+u":
		m.viewport.HalfViewUp()
		return m, nil
	}

	if m.focused == focusDetail {
		switch msg.String() {
		case "esc", "enter":
			m.focused = focusList
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.currentView() == network.ViewNetwork {
		switch msg.String() {
		case "n", "right", "j", "down":
			m.cycleSelection(1)
			return m, nil
		case "p", "left", "k", "up":
			m.cycleSelection(-1)
			return m, nil
		case "enter":
			m.focused = focusDetail
			return m, nil
		}
		return m, nil
	}

	if msg.String() == "enter" {
		m.focused = focusDetail
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.followListCursor()
	return m, cmd
}

// handleMouse hovers and presses nodes in the network pane.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.session == nil || m.currentView() != network.ViewNetwork || !m.leftPaneVisible() {
		return m
	}
	// Header row plus the panel border.
	col, row := msg.X-1, msg.Y-2
	x, y, ok := m.graph.PointAt(col, row)
	if !ok {
		m.session.ClearPointer()
		if msg.X > m.graph.Cols()+1 && msg.Button == tea.MouseButtonWheelDown {
			m.viewport.LineDown(3)
		} else if msg.X > m.graph.Cols()+1 && msg.Button == tea.MouseButtonWheelUp {
			m.viewport.LineUp(3)
		}
		return m
	}
	m.session.SetPointer(x, y)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.session.Press(x, y)
		m.syncSelection()
	}
	return m
}

func (m *Model) setView(v network.View) tea.Cmd {
	if m.session == nil || m.currentView() == v {
		return nil
	}
	m.session.SetView(v)
	m.session.ClearPointer()
	if v == network.ViewDirectory {
		m.tickID++
		return nil
	}
	return m.startAnimation()
}

// startAnimation paints the current positions at once and starts a fresh
// tick chain. Older chains die on their next tick.
func (m *Model) startAnimation() tea.Cmd {
	if !m.animating() {
		return nil
	}
	m.tickID++
	m.graph.Render(m.session, false)
	return frameTickCmd(m.tickID, m.frameInterval)
}

func (m Model) animating() bool {
	return m.screen == screenMain && m.session != nil && m.session.View() == network.ViewNetwork
}

func (m *Model) cycleSelection(delta int) {
	nodes := m.session.Nodes()
	if len(nodes) == 0 {
		return
	}
	i := m.session.Index(m.session.Selected())
	i = (i + delta + len(nodes)) % len(nodes)
	if err := m.session.SelectIndex(i); err != nil {
		debug.Log("ui: %v", err)
	}
	m.syncSelection()
}

// followListCursor selects the node under the list cursor.
func (m *Model) followListCursor() {
	if m.session == nil {
		return
	}
	item, ok := m.list.SelectedItem().(TermItem)
	if !ok {
		return
	}
	if cur := m.session.Selected(); cur != nil && cur.ID == item.Entry.Row {
		return
	}
	if err := m.session.SelectID(item.Entry.Row); err != nil {
		debug.Log("ui: %v", err)
	}
	m.syncSelection()
}

// syncSelection pushes a new selection into the detail pane and the list.
func (m *Model) syncSelection() {
	if !m.sel.changed {
		return
	}
	m.sel.changed = false
	m.updateViewportContent()

	if m.list.FilterState() == list.Filtering {
		return
	}
	for i, it := range m.list.VisibleItems() {
		if ti, ok := it.(TermItem); ok && ti.Entry.Row == m.sel.entry.Row {
			if m.list.Index() != i {
				m.list.Select(i)
			}
			break
		}
	}
}

func (m *Model) updateViewportContent() {
	if m.session == nil || m.session.Selected() == nil {
		m.viewport.SetContent(m.theme.MutedText.Render("No term selected"))
		return
	}
	e := m.sel.entry
	p := panel.Build(e, panel.DirResolver(m.mediaDir))
	m.viewport.SetContent(m.renderer.Render(p.Markdown()))
	if e.Row != m.detailRow {
		m.viewport.GotoTop()
		m.detailRow = e.Row
	}
}

// openSelectedLink opens the first URL in the selected term's panel.
func (m *Model) openSelectedLink() {
	if m.session == nil || m.session.Selected() == nil {
		return
	}
	links := panel.Build(m.sel.entry, panel.DirResolver(m.mediaDir)).Links()
	if len(links) == 0 {
		m.setStatus("No link for this term", false)
		return
	}
	if err := openURL(links[0]); err != nil {
		m.setStatus(fmt.Sprintf("Open: %v", err), true)
		return
	}
	msg := "Opened " + links[0]
	if len(links) > 1 {
		msg += fmt.Sprintf(" (1 of %d)", len(links))
	}
	m.setStatus(msg, false)
}

func (m *Model) copySelected() {
	if m.session == nil || m.session.Selected() == nil {
		return
	}
	term := m.session.Selected().Term()
	if err := writeClipboard(term); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %q", term), false)
}

// lock forgets the stored grant and returns to the passkey prompt.
func (m Model) lock() (tea.Model, tea.Cmd) {
	if m.gate == nil {
		return m, nil
	}
	if err := m.gate.Revoke(); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	// Locking forgets the dataset; the next grant loads it afresh.
	m.tickID++
	m.session = nil
	m.sel = &selection{}
	m.stats = network.Stats{}
	m.pending = nil
	m.list.ResetFilter()
	m.list.SetItems(nil)
	m.focused = focusList
	m.updateViewportContent()
	m.graph.Render(nil, false)
	m.screen = screenGate
	m.gateModel = NewGateModel(m.gate, m.theme)
	m.gateModel.width, m.gateModel.height = m.width, m.height
	return m, m.gateModel.Init()
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
}

func (m Model) currentView() network.View {
	if m.session == nil {
		return m.startView
	}
	return m.session.View()
}

func (m Model) leftPaneVisible() bool {
	return m.isSplitView || m.focused == focusList
}

func (m Model) bodyHeight() int {
	// 1 for the header, 1 for the footer
	h := m.height - 2
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) recalculateSizes() {
	m.isSplitView = m.width >= splitViewThreshold
	inner := m.bodyHeight() - 2

	var leftInner, rightInner int
	if m.isSplitView {
		// Two bordered panels
		avail := m.width - 4
		if avail < 10 {
			avail = 10
		}
		leftInner = int(float64(avail) * m.splitPaneRatio)
		rightInner = avail - leftInner
	} else {
		leftInner = max(m.width-2, 10)
		rightInner = leftInner
	}

	m.list.SetSize(leftInner, inner)
	m.graph.SetSize(leftInner, inner)
	m.viewport.Width = rightInner
	m.viewport.Height = inner
	m.renderer.SetWidthWithTheme(rightInner-2, m.theme)
	m.updateViewportContent()

	if m.session != nil && m.currentView() == network.ViewNetwork {
		m.session.Measure()
		m.graph.Render(m.session, false)
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.screen {
	case screenGate:
		return m.gateModel.View()
	case screenLoading:
		body = m.renderLoadingScreen()
	case screenError:
		body = m.renderErrorScreen()
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderBody())
	}

	finalStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height)
	return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter()))
}

func (m Model) renderLoadingScreen() string {
	t := m.theme
	lines := []string{t.PrimaryBold.Render("Loading glossary..."), "", t.MutedText.Render(m.dataPath)}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderErrorScreen() string {
	t := m.theme
	msg := "unknown error"
	if m.loadErr != nil {
		msg = m.loadErr.Error()
	}
	lines := []string{
		t.ErrorText.Render("✗ Could not load the glossary"),
		"",
		t.Base.Width(clamp(m.width-8, 20, 100)).Render(msg),
		"",
		t.MutedText.Render("r retry • q quit"),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	t := m.theme
	tab := func(key, label string, active bool) string {
		s := fmt.Sprintf(" %s %s ", key, label)
		if active {
			return t.Header.Render(s)
		}
		return t.SecondaryText.Render(s)
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top,
		t.PrimaryBold.Render(" GLOSSNET "),
		tab("1", "Directory", m.currentView() == network.ViewDirectory),
		tab("2", "Network", m.currentView() == network.ViewNetwork),
	)
	right := ""
	if m.source.Path != "" {
		right = t.MutedText.Render(filepath.Base(m.source.Path) + " ")
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderBody() string {
	t := m.theme
	panelHeight := m.bodyHeight() - 2

	var left string
	if m.currentView() == network.ViewNetwork {
		left = m.graph.View()
	} else {
		left = m.list.View()
	}

	listStyle, detailStyle := t.FocusedPanel, t.Panel
	if m.focused == focusDetail {
		listStyle, detailStyle = t.Panel, t.FocusedPanel
	}

	leftView := listStyle.
		Width(m.graph.Cols()).
		Height(panelHeight).
		MaxHeight(panelHeight + 2).
		Render(left)
	detailView := detailStyle.
		Width(m.viewport.Width).
		Height(panelHeight).
		MaxHeight(panelHeight + 2).
		Render(m.viewport.View())

	switch {
	case m.isSplitView:
		return lipgloss.JoinHorizontal(lipgloss.Top, leftView, detailView)
	case m.focused == focusDetail:
		return detailView
	default:
		return leftView
	}
}

func (m Model) renderFooter() string {
	t := m.theme
	if m.statusMsg != "" {
		prefix, style := "✓ ", t.SuccessText
		if m.statusIsError {
			prefix, style = "✗ ", t.ErrorText
		}
		return style.MaxWidth(m.width).Render(prefix + m.statusMsg)
	}
	if m.screen != screenMain {
		return ""
	}

	st := m.stats
	parts := []string{
		fmt.Sprintf("%d terms", st.Nodes),
		fmt.Sprintf("%d links", st.Edges),
		fmt.Sprintf("%d clusters", st.Components),
	}
	if st.Hub != "" {
		parts = append(parts, "hub: "+st.Hub)
	}
	info := t.SecondaryText.Render(strings.Join(parts, " · "))

	var hints string
	switch {
	case m.focused == focusDetail:
		hints = "esc back • j/k scroll • y copy • o open link • q quit"
	case m.currentView() == network.ViewNetwork:
		hints = "click select • n/p cycle • tab directory • enter detail • q quit"
	default:
		hints = "/ filter • enter detail • tab network • r reload • q quit"
	}
	hintView := t.MutedText.Render(hints)

	gap := m.width - lipgloss.Width(info) - lipgloss.Width(hintView)
	if gap < 1 {
		return hintView
	}
	return info + strings.Repeat(" ", gap) + hintView
}

// FocusState returns the current focus as a string, for tests.
func (m Model) FocusState() string {
	switch {
	case m.screen == screenGate:
		return "gate"
	case m.screen == screenLoading:
		return "loading"
	case m.screen == screenError:
		return "error"
	case m.focused == focusDetail:
		return "detail"
	default:
		return "list"
	}
}

// Session returns the loaded session, or nil.
func (m Model) Session() *network.Session { return m.session }

// CurrentView returns the view being shown.
func (m Model) CurrentView() network.View { return m.currentView() }

// StatusMessage returns the footer message and whether it is an error.
func (m Model) StatusMessage() (string, bool) { return m.statusMsg, m.statusIsError }
