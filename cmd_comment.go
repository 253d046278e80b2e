package main

import (
	"github.com/andareed/siftly-dash/logging"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const notesDrawerHeight = 8

func newNotesInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Scratchpad: free-form notes, kept until you quit"
	ta.CharLimit = 4096
	ta.ShowLineNumbers = false
	ta.SetHeight(notesDrawerHeight - 2)
	return ta
}

func (m *model) openNotes() tea.Cmd {
	m.notesInput.SetValue(m.sess.Scratchpad)
	m.ui.notesOpen = true
	m.ui.mode = modeNotes
	logging.Debug("scratchpad open")
	return m.notesInput.Focus()
}

// closeNotes keeps whatever was typed; the scratchpad has no cancel.
func (m *model) closeNotes() {
	m.sess.Scratchpad = m.notesInput.Value()
	m.notesInput.Blur()
	m.ui.notesOpen = false
	m.ui.mode = modeView
	logging.Infof("scratchpad saved (%d chars)", len(m.sess.Scratchpad))
}

func (m *model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.closeNotes()
		return m, nil
	}
	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	return m, cmd
}
