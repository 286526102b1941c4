package quiz

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingo/internal/screen"
)

// explainedMsg is sent when the explanation for a question id settles.
type explainedMsg struct {
	QuestionID string
}

func waitExplanation(done <-chan struct{}, id string) tea.Cmd {
	return func() tea.Msg {
		<-done
		return explainedMsg{QuestionID: id}
	}
}

func sessionStarted() tea.Msg { return screen.SessionStartedMsg{} }

func sessionEnded() tea.Msg { return screen.SessionEndedMsg{} }
