package workspace

// Status is the state of the module generation request.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Tab indexes, in display order.
const (
	TabExplanation = iota
	TabTutorial
	TabExample
	TabQuiz
)

var tabLabels = []string{"Explanation", "Tutorial", "Pro Example", "Quiz"}

type focus int

const (
	focusSource focus = iota
	focusOutput
)
