package vault

import log "github.com/rsms/go-log"

// FlattenThreshold is the default minimum history length CanBeFlattened
// requires before recommending a flatten (§4.9).
const FlattenThreshold = 100

// CanBeFlattened reports whether x's history is long enough, and its
// dataset non-empty enough, to be worth flattening. It uses Stats rather
// than a bare length check, so a history padded well past the threshold
// but describing an empty dataset is not flagged (§6, "Supplemented
// Features").
func (x *Executor) CanBeFlattened() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if len(x.history) < FlattenThreshold {
		return false
	}
	st := statsOf(x.dataset, x.history)
	return st.Groups+st.Entries > 0
}

// Flatten replays x's current dataset into a minimal "describe" history
// (fmt, aid, vault attributes, then the describe sequence for every
// top-level group, followed by one pad) and replaces x's history with it. The dataset itself is unchanged; only the
// history shrinks (§4.9, seed scenario 5).
func (x *Executor) Flatten() {
	x.FlattenProgress(nil)
}

// FlattenProgress behaves like Flatten, but calls onLine with the running
// count of describe commands generated so far after each one is appended.
// Since the dataset's eventual describe length isn't known up front, a
// caller typically drives an indeterminate progress indicator from this
// rather than a fixed-total one.
func (x *Executor) FlattenProgress(onLine func(n int)) {
	x.mu.Lock()
	defer x.mu.Unlock()

	before := len(x.history)
	var next History
	appendDatasetDescribe(&next, x.dataset, onLine)
	next = append(next, MustBuildCommand("pad", padToken()))
	if onLine != nil {
		onLine(len(next))
	}
	x.history = next

	if x.Logger != nil {
		x.Logger.Info("flattened history: %d -> %d commands", before, len(x.history))
	} else {
		log.Info("flattened history: %d -> %d commands", before, len(x.history))
	}
}
