package vault

import (
	"sync"

	log "github.com/rsms/go-log"
)

// History is the ordered, append-only sequence of command lines that, when
// replayed from an empty Dataset, reconstructs a vault's state (§3).
type History []string

// Clone returns an independent copy of h.
func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Event is delivered to Executor subscribers once per Execute call,
// regardless of batch size, after every command in the batch has applied
// (§4.6, §5). Re-architected per §9 as an explicit subscriber list rather
// than ambient emitter inheritance.
type Event struct {
	Lines []string // the lines appended to history by this Execute call, including the trailing pad
}

// Executor is the History Executor ("Westley"): it owns a dataset and its
// history, validates and dispatches command lines, appends them to
// history, and maintains the dirty flag (§4.6).
type Executor struct {
	mu         sync.Mutex
	dataset    *Dataset
	history    History
	dirty      bool
	readOnly   bool
	subscribed []func(Event)
	Logger     *log.Logger // optional; defaults to the package-level log.* funcs when nil
}

// NewExecutor returns an Executor over a fresh, empty dataset.
func NewExecutor() *Executor {
	return &Executor{dataset: NewDataset()}
}

// NewExecutorFromHistory replays lines into a fresh dataset and returns an
// Executor positioned at the resulting state. It fails on the first
// invalid or unapplicable line, mirroring Validate.
func NewExecutorFromHistory(lines History) (*Executor, error) {
	d, err := Replay(lines)
	if err != nil {
		return nil, err
	}
	return &Executor{dataset: d, history: lines.Clone()}, nil
}

func (x *Executor) errorf(format string, v ...interface{}) {
	if x.Logger != nil {
		x.Logger.Error(format, v...)
		return
	}
	log.Error(format, v...)
}

// Dataset returns the executor's live dataset. Callers must not mutate it
// except through Execute.
func (x *Executor) Dataset() *Dataset { return x.dataset }

// GetHistory returns a copy of the executor's history.
func (x *Executor) GetHistory() History {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.history.Clone()
}

// IsDirty reports whether any command has been applied since construction
// or the last Clear.
func (x *Executor) IsDirty() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.dirty
}

// ReadOnly reports whether Execute currently rejects with ErrReadOnly.
func (x *Executor) ReadOnly() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.readOnly
}

// SetReadOnly toggles the read-only gate (§7): intended for snapshots and
// for histories undergoing merge-preprocessing.
func (x *Executor) SetReadOnly(v bool) {
	x.mu.Lock()
	x.readOnly = v
	x.mu.Unlock()
}

// Subscribe registers fn to be called once per Execute call. It returns a
// function that unsubscribes fn.
func (x *Executor) Subscribe(fn func(Event)) (unsubscribe func()) {
	x.mu.Lock()
	x.subscribed = append(x.subscribed, fn)
	idx := len(x.subscribed) - 1
	x.mu.Unlock()
	return func() {
		x.mu.Lock()
		x.subscribed[idx] = nil
		x.mu.Unlock()
	}
}

// Clear resets the dataset and history to empty and clears dirty, leaving
// the executor indistinguishable from a freshly constructed one (§4.6, §8).
func (x *Executor) Clear() {
	x.mu.Lock()
	x.dataset = NewDataset()
	x.history = nil
	x.dirty = false
	x.mu.Unlock()
}

// Execute runs one or more command lines as a single batch (§4.6): each
// line goes through the single-command pipeline in order, and unless the
// batch's last applied command was itself a pad, a fresh pad command is
// tokenized and executed to obfuscate batch length. The change signal
// fires exactly once, after the whole batch (including the auto-pad) has
// applied.
//
// A failing line aborts the rest of the batch and nothing is rolled back:
// lines applied before it stay in the dataset and in history, no pad is
// appended, the dirty flag is left as it was, and no event fires.
func (x *Executor) Execute(lines ...string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.readOnly {
		return ErrReadOnly
	}

	var appended []string
	lastShort := ""
	for _, line := range lines {
		short, err := x.applyAndRecord(line)
		if err != nil {
			x.errorf("execute %q: %v", line, err)
			return err
		}
		appended = append(appended, line)
		lastShort = short
	}

	if lastShort != "pad" {
		padLine := MustBuildCommand("pad", padToken())
		if _, err := x.applyAndRecord(padLine); err != nil {
			// the generated pad line is always well-formed; a failure here
			// indicates a bug in the executor, not caller input.
			x.errorf("auto-pad failed: %v", err)
			return err
		}
		appended = append(appended, padLine)
	}

	x.dirty = true
	evt := Event{Lines: appended}
	for _, fn := range x.subscribed {
		if fn != nil {
			fn(evt)
		}
	}
	return nil
}

// applyAndRecord runs the single-command pipeline (§4.6 steps 1-8) for one
// line against the executor's live dataset, appending the original line to
// history on success. It returns the dispatched short key.
func (x *Executor) applyAndRecord(line string) (short string, err error) {
	shareID, body, _ := stripSharePrefix(line)

	short, decodedArgs, err := decodeLine(body)
	if err != nil {
		return "", err
	}

	fn := executors[short]
	if fn == nil {
		return "", ErrUnknownCommand
	}

	if err := fn(x.dataset, ExecOptions{ShareID: shareID}, decodedArgs); err != nil {
		return "", wrapExec(short, err)
	}

	x.history = append(x.history, line)
	return short, nil
}

// decodeLine validates, tokenizes, and decodes a single (share-prefix
// already stripped) command line against the manifest, returning the short
// key and decoded argument list.
func decodeLine(body string) (short string, decodedArgs []string, err error) {
	short, tokens, err := TokenizeCommand(body)
	if err != nil {
		return "", nil, err
	}
	spec, ok := manifest[short]
	if !ok {
		return "", nil, ErrUnknownCommand
	}
	if len(tokens) != len(spec.Args) {
		return "", nil, wrapExec(short, errMalformedTokens)
	}
	decodedArgs = make([]string, len(tokens))
	for i, tok := range tokens {
		decodedArgs[i] = decodeArg(tok, spec.Encoded.has(i))
	}
	if target, isAlias := metaAliasOf(short); isAlias {
		short = target
	}
	return short, decodedArgs, nil
}

// Replay folds lines into a fresh Dataset in order, applying the same
// validation and dispatch rules Execute uses per command, but without
// appending a trailing pad (the history is assumed already complete). It
// is the primitive invariant #3 in spec.md §3 is checked against.
func Replay(lines History) (*Dataset, error) {
	d := NewDataset()
	for i, line := range lines {
		shareID, body, _ := stripSharePrefix(line)
		short, decodedArgs, err := decodeLine(body)
		if err != nil {
			log.Debug("replay: line %d (%q) rejected: %v", i, line, err)
			return nil, err
		}
		fn := executors[short]
		if err := fn(d, ExecOptions{ShareID: shareID}, decodedArgs); err != nil {
			wrapped := wrapExec(short, err)
			log.Debug("replay: line %d (%q) failed: %v", i, line, wrapped)
			return nil, wrapped
		}
	}
	return d, nil
}

// Validate dry-runs Replay and reports only the first failure, without
// allocating state the caller has to discard (§6, "Supplemented Features").
func Validate(lines History) error {
	_, err := Replay(lines)
	return err
}
