package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mpataki/figgen/internal/models"
	"github.com/mpataki/figgen/internal/storage"
)

type View int

const (
	ViewRunList View = iota
	ViewRunDetail
	ViewOutput
)

// App is the read-only run browser. It polls storage while a run is live and
// never mutates a run beyond delete.
type App struct {
	store *storage.Storage

	view            View
	runs            []*models.Run
	selectedIdx     int
	selectedRun     *models.Run
	iterations      []*models.Iteration
	selectedIterIdx int
	outputContent   string
	confirmDelete   bool

	width  int
	height int
	err    error
}

func NewApp(store *storage.Storage) *App {
	return &App{
		store: store,
		view:  ViewRunList,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadRuns, a.tickCmd())
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) hasLiveRuns() bool {
	for _, run := range a.runs {
		if run.Status == models.RunStatusRunning || run.Status == models.RunStatusPending {
			return true
		}
	}
	return false
}

type tickMsg time.Time

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case runsLoadedMsg:
		a.runs = msg.runs
		a.err = msg.err
		if a.selectedIdx >= len(a.runs) && a.selectedIdx > 0 {
			a.selectedIdx = len(a.runs) - 1
		}
		return a, nil

	case tickMsg:
		// Only refresh while something is live; keep ticking to notice
		// runs started from another terminal
		if a.view == ViewRunList && a.hasLiveRuns() {
			return a, tea.Batch(a.loadRuns, a.tickCmd())
		}
		return a, a.tickCmd()

	case runDetailMsg:
		a.selectedRun = msg.run
		a.iterations = msg.iterations
		a.err = msg.err
		if a.err == nil {
			a.view = ViewRunDetail
		}
		return a, nil

	case runDeletedMsg:
		a.err = msg.err
		a.confirmDelete = false
		return a, a.loadRuns

	case outputLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.outputContent = msg.content
			a.view = ViewOutput
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.view {
	case ViewRunList:
		return a.handleRunListKey(msg)
	case ViewRunDetail:
		return a.handleRunDetailKey(msg)
	case ViewOutput:
		return a.handleOutputKey(msg)
	}
	return a, nil
}

func (a *App) handleRunListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmDelete {
		switch msg.String() {
		case "y":
			a.confirmDelete = false
			if len(a.runs) > 0 && a.selectedIdx < len(a.runs) {
				return a, a.deleteRun(a.runs[a.selectedIdx].RunID)
			}
		default:
			a.confirmDelete = false
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.selectedIdx > 0 {
			a.selectedIdx--
		}

	case "down", "j":
		if a.selectedIdx < len(a.runs)-1 {
			a.selectedIdx++
		}

	case "enter":
		if len(a.runs) > 0 && a.selectedIdx < len(a.runs) {
			return a, a.loadRunDetail(a.runs[a.selectedIdx].RunID)
		}

	case "r":
		return a, a.loadRuns

	case "d":
		if len(a.runs) > 0 && a.selectedIdx < len(a.runs) {
			a.confirmDelete = true
		}
	}

	return a, nil
}

func (a *App) handleRunDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.view = ViewRunList
		a.selectedRun = nil
		a.iterations = nil
		a.selectedIterIdx = 0

	case "ctrl+c":
		return a, tea.Quit

	case "up", "k":
		if a.selectedIterIdx > 0 {
			a.selectedIterIdx--
		}

	case "down", "j":
		if a.selectedIterIdx < len(a.iterations)-1 {
			a.selectedIterIdx++
		}

	case "enter", "o":
		if len(a.iterations) > 0 && a.selectedIterIdx < len(a.iterations) && a.selectedRun != nil {
			iter := a.iterations[a.selectedIterIdx]
			return a, a.loadOutput(a.selectedRun.WorkDir, iter.Index)
		}
	}

	return a, nil
}

func (a *App) handleOutputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.view = ViewRunDetail
		a.outputContent = ""

	case "ctrl+c":
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) View() string {
	switch a.view {
	case ViewRunList:
		return a.viewRunList()
	case ViewRunDetail:
		return a.viewRunDetail()
	case ViewOutput:
		return a.viewOutput()
	}
	return ""
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	statusRunning  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	statusComplete = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusPending  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func (a *App) viewRunList() string {
	s := titleStyle.Render("figgen") + "\n\n"

	if a.err != nil {
		s += fmt.Sprintf("Error: %v\n", a.err)
	}

	if len(a.runs) == 0 {
		s += "No runs yet. Start one with 'figgen generate' or 'figgen plot'.\n"
	} else {
		s += "Recent Runs\n"
		s += "───────────\n"

		for i, run := range a.runs {
			line := a.formatRunLine(run)
			isSelected := i == a.selectedIdx
			isLive := run.Status == models.RunStatusRunning || run.Status == models.RunStatusPending

			if isSelected {
				line = selectedStyle.Render("▶ " + line)
			} else if !isLive {
				line = "  " + dimStyle.Render(line)
			} else {
				line = "  " + line
			}
			s += line + "\n"
		}
	}

	if a.confirmDelete {
		s += "\n" + statusFailed.Render("Delete selected run? [y/n]")
	} else {
		s += "\n" + helpStyle.Render("[enter] view  [d] delete  [r] refresh  [q] quit")
	}

	return s
}

func (a *App) formatRunLine(run *models.Run) string {
	status := a.formatStatus(run.Status)
	age := a.formatAge(run.CreatedAt)
	intent := truncate(run.Intent, 35)
	return fmt.Sprintf("%-28s %-7s %s  %-6s  %s", run.RunID, run.Mode, status, age, intent)
}

func (a *App) formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		days := int(d.Hours() / 24)
		return fmt.Sprintf("%dd", days)
	}
}

func (a *App) formatStatus(status models.RunStatus) string {
	switch status {
	case models.RunStatusRunning:
		return statusRunning.Render("● running")
	case models.RunStatusComplete:
		return statusComplete.Render("✓ complete")
	case models.RunStatusFailed:
		return statusFailed.Render("✗ failed")
	case models.RunStatusPending:
		return statusPending.Render("○ pending")
	default:
		return string(status)
	}
}

func (a *App) viewRunDetail() string {
	if a.selectedRun == nil {
		return "No run selected"
	}

	run := a.selectedRun

	header := fmt.Sprintf("Run %s (%s)", run.RunID, run.Mode)
	s := titleStyle.Render(header) + "  " + a.formatStatus(run.Status) + "\n\n"

	s += labelStyle.Render("Intent: ") + run.Intent + "\n"
	s += labelStyle.Render("Workdir: ") + dimStyle.Render(run.WorkDir) + "\n"
	if run.FinalPath != nil {
		s += labelStyle.Render("Final: ") + dimStyle.Render(*run.FinalPath) + "\n"
	}
	if run.Error != nil {
		s += labelStyle.Render("Error: ") + statusFailed.Render(*run.Error) + "\n"
	}
	s += "\n"

	s += "Iterations\n"
	s += "──────────\n"

	if len(a.iterations) == 0 {
		s += "(no iterations yet)\n"
	} else {
		for i, iter := range a.iterations {
			verdict := statusComplete.Render("clean")
			if len(iter.Suggestions) > 0 {
				verdict = statusRunning.Render(fmt.Sprintf("%d issues", len(iter.Suggestions)))
			}

			revised := ""
			if iter.Revised {
				revised = dimStyle.Render("revised")
			}

			duration := dimStyle.Render(formatDuration(time.Duration(iter.DurationMS) * time.Millisecond))

			line := fmt.Sprintf("%d. %-10s %6s  %s", iter.Index, verdict, duration, revised)
			if i == a.selectedIterIdx {
				line = selectedStyle.Render("▶ " + line)
			} else {
				line = "  " + line
			}
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("[↑/↓] select  [enter] details  [esc] back  [q] quit")

	return s
}

func (a *App) viewOutput() string {
	s := titleStyle.Render("Iteration Details") + "\n\n"

	if a.outputContent == "" {
		s += "(no details)\n"
	} else {
		s += a.outputContent + "\n"
	}

	s += "\n" + helpStyle.Render("[esc] back  [q] quit")

	return s
}

// Messages

type runsLoadedMsg struct {
	runs []*models.Run
	err  error
}

type runDetailMsg struct {
	run        *models.Run
	iterations []*models.Iteration
	err        error
}

type runDeletedMsg struct {
	runID string
	err   error
}

type outputLoadedMsg struct {
	content string
	err     error
}

// Commands

func (a *App) loadRuns() tea.Msg {
	runs, err := a.store.ListRuns(20)
	return runsLoadedMsg{runs: runs, err: err}
}

func (a *App) loadRunDetail(runID string) tea.Cmd {
	return func() tea.Msg {
		run, err := a.store.GetRun(runID)
		if err != nil {
			return runDetailMsg{err: err}
		}

		iters, err := a.store.ListIterations(run.ID)
		return runDetailMsg{run: run, iterations: iters, err: err}
	}
}

func (a *App) deleteRun(runID string) tea.Cmd {
	return func() tea.Msg {
		run, err := a.store.GetRun(runID)
		if err != nil {
			return runDeletedMsg{err: err}
		}
		if run.WorkDir != "" {
			os.RemoveAll(run.WorkDir)
		}
		if err := a.store.DeleteRun(runID); err != nil {
			return runDeletedMsg{err: err}
		}
		return runDeletedMsg{runID: runID}
	}
}

func (a *App) loadOutput(workDir string, iteration int) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(workDir, fmt.Sprintf("iter_%d_details.json", iteration))
		data, err := os.ReadFile(path)
		if err != nil {
			return outputLoadedMsg{err: fmt.Errorf("iteration details not found: %w", err)}
		}
		return outputLoadedMsg{content: string(data)}
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
