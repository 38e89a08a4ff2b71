package domain

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// Settled reports whether a journaled file no longer needs an upload attempt.
func (s Status) Settled() bool {
	return s == StatusDone || s == StatusError
}
