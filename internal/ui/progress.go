package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"phpfix/internal/driver"
)

// maxRows ограничивает список файлов на экране
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	counts  map[driver.Status]int
	// recent holds indices of files in the order they last changed.
	recent []int
	width  int
	done   bool
}

type fileItem struct {
	path   string
	status string
	stage  driver.Stage
	final  bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders fix progress
// for files, fed by events until the channel is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: string(driver.StatusQueued)})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		counts:  make(map[driver.Status]int),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	finished := 0
	for _, n := range m.counts {
		finished += n
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, finished, len(m.items))
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, idx := range m.visible() {
		item := m.items[idx]
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", statusStyled, truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

// visible picks the files in work first, then the most recently finished.
func (m *progressModel) visible() []int {
	rows := make([]int, 0, maxRows)
	for i := len(m.recent) - 1; i >= 0 && len(rows) < maxRows; i-- {
		if !m.items[m.recent[i]].final {
			rows = append(rows, m.recent[i])
		}
	}
	for i := len(m.recent) - 1; i >= 0 && len(rows) < maxRows; i-- {
		if m.items[m.recent[i]].final {
			rows = append(rows, m.recent[i])
		}
	}
	if len(m.recent) == 0 {
		for i := 0; i < len(m.items) && i < maxRows; i++ {
			rows = append(rows, i)
		}
	}
	return rows
}

func (m *progressModel) summary() string {
	parts := make([]string, 0, 4)
	for _, st := range []driver.Status{driver.StatusFixed, driver.StatusClean, driver.StatusCached, driver.StatusError} {
		parts = append(parts, styleStatus(string(st)).Render(fmt.Sprintf("%s %d", st, m.counts[st])))
	}
	return "  " + strings.Join(parts, "  ")
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if item.final {
		return nil
	}
	if label := statusLabel(ev.Stage, ev.Status); label != "" {
		item.status = label
		item.stage = ev.Stage
	}
	if ev.Status.Final() {
		item.final = true
		m.counts[ev.Status]++
	}
	m.touch(idx)

	totalProgress := 0.0
	for _, it := range m.items {
		if it.final {
			totalProgress += 1.0
		} else {
			totalProgress += progressFromStage(it.stage)
		}
	}
	return m.prog.SetPercent(totalProgress / float64(len(m.items)))
}

func (m *progressModel) touch(idx int) {
	for i, v := range m.recent {
		if v == idx {
			m.recent = append(m.recent[:i], m.recent[i+1:]...)
			break
		}
	}
	m.recent = append(m.recent, idx)
}

func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageRead:
		return 0.1
	case driver.StageFix:
		return 0.5
	case driver.StageWrite:
		return 0.9
	default:
		return 0.0
	}
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusWorking:
		return stageLabel(stage)
	case "":
		return ""
	default:
		return string(status)
	}
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageRead:
		return "reading"
	case driver.StageFix:
		return "fixing"
	case driver.StageWrite:
		return "writing"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case string(driver.StatusFixed):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case string(driver.StatusClean), string(driver.StatusCached):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case string(driver.StatusError):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "reading", "fixing", "writing":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// Truncate сам вычитает ширину хвоста
	return runewidth.Truncate(value, width, "...")
}
