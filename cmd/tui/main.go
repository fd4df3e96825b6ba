package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/somya-ban/genoview/internal/report"
)

// Colors
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	forwardColor = lipgloss.Color("#10B981") // Green
	reverseColor = lipgloss.Color("#F59E0B") // Amber
	surfaceColor = lipgloss.Color("#1F2937") // Dark gray
	textColor    = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor   = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor  = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	sequenceStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#111827")).
			Padding(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	forwardStyle = lipgloss.NewStyle().Foreground(forwardColor).Bold(true)
	reverseStyle = lipgloss.NewStyle().Foreground(reverseColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
)

type mode int

const (
	modeORFs mode = iota
	modeMotifs
	modeDomains
)

func (m mode) String() string {
	switch m {
	case modeORFs:
		return "ORFs"
	case modeMotifs:
		return "Motifs"
	case modeDomains:
		return "Domains"
	default:
		return "Unknown"
	}
}

func strandStyled(strand string) string {
	if strand == "reverse" {
		return reverseStyle.Render(strand)
	}
	return forwardStyle.Render(strand)
}

// listItem adapts one report entry (ORF, motif match or domain hit) to the
// bubbles list interface.
type listItem struct {
	title string
	desc  string
	body  []string // detail lines for the right panel
}

func (i listItem) FilterValue() string { return i.title }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.desc }

func orfItems(rep *report.Report) []list.Item {
	items := make([]list.Item, 0, len(rep.ORFs))
	for _, o := range rep.ORFs {
		stop := "no stop"
		if o.HasStop {
			stop = "stop"
		}
		items = append(items, listItem{
			title: o.ID,
			desc:  fmt.Sprintf("%s  frame %d  %d..%d  %s", strandStyled(string(o.Strand)), o.Frame, o.Start, o.End, stop),
			body: []string{
				fmt.Sprintf("Strand: %s    Frame: %d", o.Strand, o.Frame),
				fmt.Sprintf("Coordinates: %d..%d (%d nt)", o.Start, o.End, o.End-o.Start),
				fmt.Sprintf("Terminated: %v", o.HasStop),
				"",
				"Translation:",
				o.Translation,
			},
		})
	}
	return items
}

func motifItems(rep *report.Report) []list.Item {
	items := make([]list.Item, 0, len(rep.Motifs))
	for _, m := range rep.Motifs {
		items = append(items, listItem{
			title: m.Name,
			desc:  fmt.Sprintf("%s  %d..%d", strandStyled(string(m.Strand)), m.Start, m.End),
			body: []string{
				fmt.Sprintf("Motif: %s", m.Name),
				fmt.Sprintf("Strand: %s", m.Strand),
				fmt.Sprintf("Coordinates: %d..%d", m.Start, m.End),
				"",
				"Matched text:",
				m.Match,
			},
		})
	}
	return items
}

func domainItems(rep *report.Report) []list.Item {
	items := make([]list.Item, 0, len(rep.Domains))
	for _, d := range rep.Domains {
		items = append(items, listItem{
			title: d.Accession,
			desc:  fmt.Sprintf("%s  %s  aa %d..%d", d.ORFID, d.SourceDB, d.StartAA, d.EndAA),
			body: []string{
				fmt.Sprintf("ORF: %s", d.ORFID),
				fmt.Sprintf("Database: %s    Accession: %s", d.SourceDB, d.Accession),
				fmt.Sprintf("Residues: %d..%d    E-value: %s", d.StartAA, d.EndAA, d.Evalue),
				fmt.Sprintf("InterPro: %s  %s", d.InterproID, d.InterproDesc),
				"",
				"Description:",
				d.Description,
			},
		})
	}
	return items
}

type model struct {
	rep         *report.Report
	list        list.Model
	currentMode mode
	showHelp    bool
	width       int
	height      int
}

func newModel(rep *report.Report) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	m := model{rep: rep, list: l, currentMode: modeORFs}
	m.applyMode()
	return m
}

func loadReport(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &rep, nil
}

// applyMode refreshes the list contents for the current mode.
func (m *model) applyMode() {
	var items []list.Item
	switch m.currentMode {
	case modeORFs:
		items = orfItems(m.rep)
	case modeMotifs:
		items = motifItems(m.rep)
	case modeDomains:
		items = domainItems(m.rep)
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("%s / %s", m.rep.Sequence.ID, m.currentMode)
	m.list.ResetSelected()
}

func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % 3
	m.applyMode()
	return m
}

func (m model) setMode(mo mode) model {
	m.currentMode = mo
	m.applyMode()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h":
			m.showHelp = !m.showHelp
			return m, nil
		case "tab":
			return m.cycleMode(), nil
		case "1":
			return m.setMode(modeORFs), nil
		case "2":
			return m.setMode(modeMotifs), nil
		case "3":
			return m.setMode(modeDomains), nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpModal()
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftPanel(),
		m.renderRightPanel(),
	)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatusBar(),
	)
}

func (m model) renderLeftPanel() string {
	return containerStyle.
		Width(m.width/3 - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

// buildRightLines assembles the detail lines for the selected item.
func (m model) buildRightLines(it listItem) []string {
	lines := []string{titleStyle.Render(it.title), ""}
	lines = append(lines, it.body...)
	return lines
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3

	sel := m.list.SelectedItem()
	if sel == nil {
		msg := fmt.Sprintf("No %s in this report", strings.ToLower(m.currentMode.String()))
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render(mutedStyle.Render(msg))
	}
	it := sel.(listItem)

	lines := m.buildRightLines(it)
	content := sequenceStyle.
		Width(rightWidth - 6).
		Render(strings.Join(lines, "\n"))

	return containerStyle.
		Width(rightWidth - 2).
		Height(m.height - 4).
		Render(content)
}

func (m model) renderStatusBar() string {
	left := fmt.Sprintf("%s  (%d nt)", m.rep.Sequence.ID, m.rep.Sequence.Length)
	center := fmt.Sprintf("Mode: %s  [%d items]", m.currentMode, len(m.list.Items()))
	right := "Press 'h' for help, 'q' to quit"

	spacing := m.width - len(left) - len(center) - len(right) - 6
	var content string
	if spacing > 0 {
		l := spacing / 2
		r := spacing - l
		content = left + strings.Repeat(" ", l) + center + strings.Repeat(" ", r) + right
	} else {
		content = fmt.Sprintf("%s | %s", left, center)
	}
	return statusBarStyle.Width(m.width).Render(content)
}

func (m model) renderHelpModal() string {
	helpContent := `GenoView Report Browser - Help

Navigation:
  up/down, j/k   Navigate list
  /              Filter items
  tab            Cycle view mode

View Modes:
  1              ORFs
  2              Motif matches
  3              Protein domains

General:
  h              Toggle this help
  q, Ctrl+C      Quit

Sections: orfs=` + string(m.rep.Status.ORFs) +
		` motifs=` + string(m.rep.Status.Motifs) +
		` domains=` + string(m.rep.Status.Domains) +
		` summary=` + string(m.rep.Status.Summary)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(helpContent),
	)
}

func main() {
	path := "report.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	rep, err := loadReport(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "genoview-tui:", err)
		os.Exit(1)
	}
	p := tea.NewProgram(newModel(rep), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
