package timer

// Notice is the user-facing message for a completion.
type Notice struct {
	Title string
	Body  string
}

const (
	allDoneWork  = "All tasks completed! Add new tasks to continue."
	allDoneBreak = "All tasks completed! Add new tasks to continue working."
)

// NoticeFor builds the notification for t given how many tasks remain open.
func NoticeFor(t Transition, activeTasks int) Notice {
	if t.From == Work {
		n := Notice{Title: "Work Session Complete!"}
		switch {
		case activeTasks == 0:
			n.Body = allDoneWork
		case t.To == LongBreak:
			n.Body = "Time for a long break!"
		default:
			n.Body = "Time for a short break!"
		}
		return n
	}
	n := Notice{Title: "Break Complete!", Body: "Time to get back to work!"}
	if activeTasks == 0 {
		n.Body = allDoneBreak
	}
	return n
}

// RestoreMessage is the status line shown after a restart picked up a
// session, or "" when there is nothing to report.
func RestoreMessage(o RestoreOutcome) string {
	switch o {
	case RestoredRunning:
		return "Timer resumed from background"
	case RestoredCompleted:
		return "Timer completed while in background"
	case RestoredPaused:
		return "Paused timer restored"
	}
	return ""
}
