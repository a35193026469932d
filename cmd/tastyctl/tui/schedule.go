package tui

import (
	"fmt"
	"strings"
	"time"

	"tastycorner/internal/models"
	"tastycorner/internal/repository"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ScheduleMode is the current screen of the schedule editor
type ScheduleMode int

const (
	ModePick ScheduleMode = iota
	ModeEdit
	ModeError
)

// shiftStep is how far one key press moves a start or end time.
const shiftStep = 30

// EmployeeItem is one employee in the picker list
type EmployeeItem struct {
	Employee models.Employee
}

func (i EmployeeItem) FilterValue() string {
	return i.Employee.EmployeeID + " " + i.Employee.FullName()
}

func (i EmployeeItem) Title() string {
	return i.Employee.EmployeeID + "  " + i.Employee.FullName()
}

func (i EmployeeItem) Description() string {
	title := i.Employee.JobTitle
	if title == "" {
		title = "No title"
	}
	return fmt.Sprintf("%s · %.1f h/week", title, i.Employee.WeeklySchedule().WeeklyHours())
}

// ScheduleModel is the Bubbletea model for the interactive schedule editor
type ScheduleModel struct {
	mode     ScheduleMode
	repo     repository.EmployeeRepository
	list     list.Model
	employee models.Employee
	week     models.Schedule
	cursor   int
	dirty    bool
	status   string
	failed   bool
	err      error
	width    int
	height   int
}

// NewScheduleModel creates a new schedule editor model
func NewScheduleModel(repo repository.EmployeeRepository) ScheduleModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Employee Schedules"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return ScheduleModel{
		mode: ModePick,
		repo: repo,
		list: l,
	}
}

// Messages
type employeesLoadedMsg struct {
	employees []models.Employee
}

type scheduleSavedMsg struct {
	employeeID string
	err        error
}

type errorMsg struct {
	err error
}

// Commands
func loadEmployeesCmd(repo repository.EmployeeRepository) tea.Cmd {
	return func() tea.Msg {
		employees, err := repo.GetAll()
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to load employees: %w", err)}
		}
		return employeesLoadedMsg{employees: employees}
	}
}

func saveScheduleCmd(repo repository.EmployeeRepository, employeeID string, week models.Schedule) tea.Cmd {
	return func() tea.Msg {
		return scheduleSavedMsg{
			employeeID: employeeID,
			err:        repo.UpdateSchedule(employeeID, week.JSON()),
		}
	}
}

// Init initializes the model
func (m ScheduleModel) Init() tea.Cmd {
	return loadEmployeesCmd(m.repo)
}

// Update handles messages
func (m ScheduleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case employeesLoadedMsg:
		items := make([]list.Item, len(msg.employees))
		for i, e := range msg.employees {
			items[i] = EmployeeItem{Employee: e}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case scheduleSavedMsg:
		if msg.err != nil {
			m.setStatus("Save failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.dirty = false
		m.employee.Schedule = m.week.JSON()
		m.setStatus("Saved schedule for "+msg.employeeID, false)
		return m, loadEmployeesCmd(m.repo)

	case errorMsg:
		m.mode = ModeError
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModePick:
			if m.list.FilterState() == list.Filtering {
				break
			}
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "enter":
				item, ok := m.list.SelectedItem().(EmployeeItem)
				if !ok {
					return m, nil
				}
				m.employee = item.Employee
				m.week = completeWeek(item.Employee.WeeklySchedule())
				m.cursor = 0
				m.dirty = false
				m.status = ""
				m.mode = ModeEdit
				return m, nil
			}

		case ModeEdit:
			return m.updateEdit(msg)

		case ModeError:
			return m, tea.Quit
		}
	}

	if m.mode == ModePick {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ScheduleModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	day := models.Weekdays[m.cursor]
	d := m.week[day]

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.mode = ModePick
		m.status = ""
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(models.Weekdays)-1 {
			m.cursor++
		}
		return m, nil
	case " ", "x":
		d.Enabled = !d.Enabled
	case "left", "h":
		d.Start = ShiftTime(d.Start, -shiftStep)
	case "right", "l":
		d.Start = ShiftTime(d.Start, shiftStep)
	case "shift+left", "H":
		d.End = ShiftTime(d.End, -shiftStep)
	case "shift+right", "L":
		d.End = ShiftTime(d.End, shiftStep)
	case "r":
		m.week = models.DefaultSchedule()
		m.dirty = true
		return m, nil
	case "s", "enter":
		if err := ValidateWeek(m.week); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.setStatus("Saving...", false)
		return m, saveScheduleCmd(m.repo, m.employee.EmployeeID, m.week)
	default:
		return m, nil
	}

	m.week[day] = d
	m.dirty = true
	m.status = ""
	return m, nil
}

func (m *ScheduleModel) setStatus(status string, failed bool) {
	m.status = status
	m.failed = failed
}

// View renders the UI
func (m ScheduleModel) View() string {
	switch m.mode {
	case ModePick:
		help := helpStyle.Render(
			FormatKey("↑/↓", "navigate") + " • " +
				FormatKey("/", "filter") + " • " +
				FormatKey("enter", "edit") + " • " +
				FormatKey("q", "quit"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), help)

	case ModeEdit:
		return m.editView()

	case ModeError:
		msg := titleStyle.Render("Schedule editor failed") + "\n\n" +
			dangerStyle.Render(m.err.Error()) + "\n\n" +
			helpStyle.Render(FormatKey("any key", "exit"))
		return boxStyle.Render(msg)
	}
	return "Unknown mode"
}

func (m ScheduleModel) editView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.employee.EmployeeID + "  " + m.employee.FullName()))
	b.WriteString("\n")
	if m.employee.JobTitle != "" {
		b.WriteString(subtitleStyle.Render(m.employee.JobTitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, day := range models.Weekdays {
		d := m.week[day]
		label := strings.ToUpper(day[:1]) + day[1:]
		line := fmt.Sprintf("%-10s  %s - %s", label, d.Start, d.End)
		if !d.Enabled {
			line = fmt.Sprintf("%-10s  OFF", label)
		}
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("› " + line))
		} else if d.Enabled {
			b.WriteString(rowStyle.Render("  " + line))
		} else {
			b.WriteString(mutedStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hours := fmt.Sprintf("Weekly hours: %.1f", m.week.WeeklyHours())
	if m.dirty {
		hours += " (unsaved)"
	}
	b.WriteString(mutedStyle.Render(hours))

	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(dangerStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
	}

	help := helpStyle.Render(
		FormatKey("space", "toggle") + " • " +
			FormatKey("h/l", "start ∓30m") + " • " +
			FormatKey("H/L", "end ∓30m") + " • " +
			FormatKey("r", "default week") + " • " +
			FormatKey("s", "save") + " • " +
			FormatKey("esc", "back"),
	)
	return boxStyle.Render(b.String()) + "\n" + help
}

// completeWeek fills days missing from a stored schedule as days off.
func completeWeek(week models.Schedule) models.Schedule {
	defaults := models.DefaultSchedule()
	for _, day := range models.Weekdays {
		if _, ok := week[day]; !ok {
			d := defaults[day]
			d.Enabled = false
			week[day] = d
		}
	}
	return week
}

// ShiftTime moves an HH:MM time by minutes, clamped to the same day.
func ShiftTime(hhmm string, minutes int) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		t, _ = time.Parse("15:04", "09:00")
	}
	total := t.Hour()*60 + t.Minute() + minutes
	if total < 0 {
		total = 0
	}
	if last := 24*60 - shiftStep; total > last {
		total = last
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ValidateWeek checks every enabled day ends after it starts.
func ValidateWeek(week models.Schedule) error {
	check := models.Schedule{}
	for _, day := range models.Weekdays {
		d, ok := week[day]
		if !ok {
			continue
		}
		if err := check.Set(day, d.Enabled, d.Start, d.End); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// RunScheduleUI starts the interactive schedule editor
func RunScheduleUI(repo repository.EmployeeRepository) error {
	p := tea.NewProgram(NewScheduleModel(repo), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
