package tabs

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/syllabus/pkg/catalog"
	"tableflip.dev/syllabus/pkg/tui/events"
	"tableflip.dev/syllabus/pkg/tui/theme"
)

func newTestTabs() *Model {
	return NewModel(events.ComponentID("tabs"), []catalog.Subject{
		{ID: "mysql", Title: "MySQL Database", Color: "#00758f"},
		{ID: "python", Title: "Python Programming", Color: "#3776ab"},
		{ID: "react", Title: "React Development"},
	}, theme.Default())
}

func selected(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(events.SubjectSelectMsg)
	require.True(t, ok)
	return msg.SubjectID
}

func TestStepWraps(t *testing.T) {
	m := newTestTabs()
	assert.Equal(t, "mysql", selected(t, m.Step(1)))
	assert.Equal(t, "react", selected(t, m.Step(-1)))

	m.SetActive("react")
	assert.Equal(t, "mysql", selected(t, m.Step(1)))
	assert.Equal(t, "python", selected(t, m.Step(-1)))
}

func TestKeys(t *testing.T) {
	m := newTestTabs()
	m.SetActive("mysql")

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, "python", selected(t, cmd))

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, "react", selected(t, cmd))

	_, cmd = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	assert.Equal(t, "react", selected(t, cmd))

	_, cmd = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	assert.Nil(t, cmd)
}

func TestViewFitsWidth(t *testing.T) {
	m := newTestTabs()
	m.SetActive("python")
	full := m.View()
	assert.Contains(t, full, "Python Programming")
	assert.Contains(t, full, "React Development")

	m.SetWidth(30)
	assert.LessOrEqual(t, ansi.PrintableRuneWidth(m.View()), 30)
}
