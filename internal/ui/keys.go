package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(hasParams, hasSound bool) string {
	s := "space trace  c clear  +/- speed  [/] circles  n/p preset"
	if hasParams {
		s += "  tab/←/→ param"
	}
	s += "  z/x zoom  hjkl pan  f fit  m mouse  s spectrum"
	if hasSound {
		s += "  a sound  ,/. volume"
	}
	s += "  q quit"
	return s
}
