package state

// NoticeLevel grades messages on the reporting channel.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// Event is anything the coordinator publishes to the presentation loop.
type Event interface {
	isEvent()
}

// SnapshotUpdated carries a replaced application state.
type SnapshotUpdated struct {
	Snapshot Snapshot
}

// Notice is a user-facing report line: search outcomes, download completions,
// warnings. Detail, when set, holds diagnostic text rendered dimmed.
type Notice struct {
	Level   NoticeLevel
	Message string
	Detail  string
}

func (SnapshotUpdated) isEvent() {}
func (Notice) isEvent()          {}
