package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/api/apitest"
	"github.com/leapstack-labs/shopdash/internal/cli/output"
	"github.com/leapstack-labs/shopdash/internal/pagination"
)

func newTestBrowser(t *testing.T, rows int) (*browseModel, *apitest.Backend) {
	t.Helper()
	backend := apitest.New()
	client := api.New(api.Config{URL: backend.Start(t), Timeout: 2 * time.Second})
	m := newBrowseModel(context.Background(), client, rows, output.NewStyles(&bytes.Buffer{}, false))
	return m, backend
}

// settle runs cmd and feeds a resulting page load back into the model.
func settle(t *testing.T, m *browseModel, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	msg, ok := cmd().(pageMsg)
	require.True(t, ok, "expected a page load")
	m.Update(msg)
}

func press(m *browseModel, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestBrowse_Pages(t *testing.T) {
	m, backend := newTestBrowser(t, 2)
	backend.Seed("", "Root", 5)

	settle(t, m, m.load())
	assert.Contains(t, m.View(), "Root 1")
	assert.Contains(t, m.View(), "1-2 of 5")

	settle(t, m, press(m, "n"))
	assert.Contains(t, m.View(), "Root 3")
	assert.Contains(t, m.View(), "3-4 of 5")

	settle(t, m, press(m, "n"))
	assert.Contains(t, m.View(), "5-5 of 5")
	assert.Nil(t, press(m, "n"), "no page after the last")

	settle(t, m, press(m, "p"))
	assert.Contains(t, m.View(), "3-4 of 5")

	call, ok := backend.LastCall("RootCategories")
	require.True(t, ok)
	assert.NotNil(t, call.Variables["before"], "going back asks for the page before the first cursor")
}

func TestBrowse_PrevOnFirstPage(t *testing.T) {
	m, backend := newTestBrowser(t, 2)
	backend.Seed("", "Root", 3)

	settle(t, m, m.load())
	assert.Nil(t, press(m, "p"))
}

func TestBrowse_OpenAndBack(t *testing.T) {
	m, backend := newTestBrowser(t, 2)
	apparel := backend.Add("", "Apparel", "")
	backend.Add("", "Groceries", "")
	backend.Seed(apparel, "Shirt", 3)

	settle(t, m, m.load())
	settle(t, m, press(m, "enter"))

	view := m.View()
	assert.Contains(t, view, "Categories › Apparel")
	assert.Contains(t, view, "Shirt 1")
	assert.Contains(t, view, "1-2 of 3")

	call, ok := backend.LastCall("CategoryChildren")
	require.True(t, ok)
	assert.Equal(t, apparel, call.Variables["id"])

	settle(t, m, press(m, "backspace"))
	view = m.View()
	assert.NotContains(t, view, "›")
	assert.Contains(t, view, "Groceries")

	assert.Nil(t, press(m, "backspace"), "nothing above the root")
}

func TestBrowse_OpenEmptyChildren(t *testing.T) {
	m, backend := newTestBrowser(t, 5)
	backend.Add("", "Leaf", "")

	settle(t, m, m.load())
	settle(t, m, press(m, "enter"))
	assert.Contains(t, m.View(), "No categories found.")
	assert.Nil(t, press(m, "enter"), "nothing to open on an empty page")
}

func TestBrowse_RowsPerPage(t *testing.T) {
	m, backend := newTestBrowser(t, 5)
	backend.Seed("", "Root", 12)

	settle(t, m, m.load())
	settle(t, m, press(m, "+"))
	assert.Equal(t, 10, pagination.RowsPerPage(m.query))
	assert.Contains(t, m.View(), "1-10 of 12")

	settle(t, m, press(m, "-"))
	assert.Nil(t, press(m, "-"), "smallest size is the floor")
	assert.Equal(t, 5, pagination.RowsPerPage(m.query))
}

func TestBrowse_StaleResponseIgnored(t *testing.T) {
	m, backend := newTestBrowser(t, 2)
	backend.Seed("", "Root", 5)
	settle(t, m, m.load())

	stale := press(m, "n")
	require.NotNil(t, stale)
	newer := m.load()
	staleMsg := stale().(pageMsg)
	m.Update(staleMsg)
	assert.True(t, m.loading, "superseded response does not finish loading")

	settle(t, m, newer)
	assert.False(t, m.loading)
}

func TestBrowse_Error(t *testing.T) {
	m, backend := newTestBrowser(t, 2)
	backend.FailWith("boom")

	settle(t, m, m.load())
	assert.Contains(t, m.View(), "Something went wrong")
	assert.Contains(t, m.View(), "boom")
}

func TestBrowse_Quit(t *testing.T) {
	m, _ := newTestBrowser(t, 2)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
