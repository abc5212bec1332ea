package tui

import "github.com/Hummusful/kitzer/internal/session"

// loadedMsg carries a finished fetch. The seq number ties it back to the
// request that started it so stale responses can be dropped.
type loadedMsg struct {
	seq int64
	res *session.Result
}

type loadErrMsg struct {
	seq int64
	err error
}

// batchMsg drives chunked rendering: each one reveals the next slice of
// cards until everything loaded is visible.
type batchMsg struct {
	seq int64
}
