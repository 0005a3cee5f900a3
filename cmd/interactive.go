package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Beastly713/pensieve/pkg/format"
	"github.com/Beastly713/pensieve/pkg/reconstruct"
	"github.com/Beastly713/pensieve/pkg/search"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Styles
var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	secretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	wrongStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
)

type fileItem struct {
	path  string
	name  string
	isDir bool
}

type model struct {
	path      string
	files     []fileItem
	cursor    int
	filter    textinput.Model
	filtering bool
	result    string
	status    string
	quitting  bool
}

func initialModel() model {
	cwd, _ := os.Getwd()
	filter := textinput.New()
	filter.Placeholder = "filter bundles"
	m := model{
		path:   cwd,
		filter: filter,
		status: "Navigate: ↑/↓ | Enter: open dir / recover bundle | /: filter | q: quit",
	}
	m.loadFiles()
	return m
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status = "Error reading directory"
		return
	}

	m.files = []fileItem{
		// Parent directory
		{name: "..", isDir: true, path: filepath.Dir(m.path)},
	}
	for _, e := range entries {
		name := e.Name()
		isBundle := strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json.gz")
		if e.IsDir() || isBundle {
			m.files = append(m.files, fileItem{
				name:  name,
				isDir: e.IsDir(),
				path:  filepath.Join(m.path, name),
			})
		}
	}
	m.cursor = 0
}

// visible applies the filter text to the loaded file list.
func (m model) visible() []fileItem {
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		return m.files
	}
	var out []fileItem
	for _, f := range m.files {
		if f.isDir || strings.Contains(strings.ToLower(f.name), needle) {
			out = append(out, f)
		}
	}
	return out
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter.Blur()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.cursor = 0
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}

		case "/":
			m.filtering = true
			m.filter.Focus()

		case "enter":
			files := m.visible()
			if len(files) == 0 {
				break
			}
			selected := files[m.cursor]
			if selected.isDir {
				m.path = selected.path
				m.filter.SetValue("")
				m.loadFiles()
				break
			}
			return m, recoverFile(selected.path)
		}

	case resultMsg:
		m.result = string(msg)
		m.status = "Done. Pick another bundle or press q to quit."

	case errorMsg:
		m.result = ""
		m.status = wrongStyle.Render(string(msg))
	}

	return m, nil
}

type resultMsg string

type errorMsg string

// recoverFile runs one reconstruction off the UI loop and reports back as a
// message.
func recoverFile(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return errorMsg(fmt.Sprintf("Error: %v", err))
		}
		defer file.Close()

		bundle, err := format.ParseBundle(file)
		if err != nil {
			return errorMsg(fmt.Sprintf("Error: %v", err))
		}

		res, err := reconstruct.Reconstruct(bundle, search.Options{})
		if err != nil {
			return errorMsg(fmt.Sprintf("Error: %v", err))
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Secret: %s\n", secretStyle.Render(res.Secret))
		if len(res.WrongShares) == 0 {
			b.WriteString("All shares are consistent.\n")
		} else {
			fmt.Fprintf(&b, "%d inconsistent share(s):\n", len(res.WrongShares))
			for _, ws := range res.WrongShares {
				line := fmt.Sprintf("  x=%s: given %s, expected %s", ws.Index, ws.Given, ws.Expected)
				b.WriteString(wrongStyle.Render(line) + "\n")
			}
		}
		return resultMsg(b.String())
	}
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	s := fmt.Sprintf("Directory: %s\n", m.path)
	if m.filtering || m.filter.Value() != "" {
		s += m.filter.View() + "\n"
	}
	s += "\n"

	for i, file := range m.visible() {
		cursor := " "
		if m.cursor == i {
			cursor = cursorStyle.Render(">")
		}

		line := file.name
		if file.isDir {
			line = "[DIR] " + file.name
		}
		s += cursor + " " + line + "\n"
	}

	if m.result != "" {
		s += "\n" + m.result
	}
	s += fmt.Sprintf("\n%s\n", m.status)
	return docStyle.Render(s)
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive terminal UI for recovering secrets from bundles",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
