// Package business provides the generic persistence gateway shared by
// all domain repositories: a tri-state save outcome, a business-rule
// hook invoked before every save, and cache-first reads that fail open
// to an empty result set.
package business

// SaveState classifies the result of a persistence attempt.
type SaveState int

const (
	// SaveComplete means the mutation was committed.
	SaveComplete SaveState = iota
	// SaveRulesBroken means a business rule blocked the save; the
	// message is user-facing and the caller should re-prompt.
	SaveRulesBroken
	// SaveFailed means the underlying store failed to commit; the
	// message carries the engine's diagnostic text.
	SaveFailed
)

// String returns a short label for logging.
func (s SaveState) String() string {
	switch s {
	case SaveComplete:
		return "complete"
	case SaveRulesBroken:
		return "rules_broken"
	case SaveFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SaveOutcome is the result of every mutating repository operation.
// No error or panic crosses a repository boundary; callers always
// receive one of the three states, with an optional diagnostic message.
type SaveOutcome struct {
	State   SaveState
	Message string
}

// Ok reports whether the mutation was committed.
func (o SaveOutcome) Ok() bool {
	return o.State == SaveComplete
}

// Complete returns a successful outcome.
func Complete() SaveOutcome {
	return SaveOutcome{State: SaveComplete}
}

// Violated returns a rules-broken outcome carrying the rule message.
func Violated(message string) SaveOutcome {
	return SaveOutcome{State: SaveRulesBroken, Message: message}
}

// Failed returns a storage-error outcome carrying the engine's
// diagnostic text.
func Failed(err error) SaveOutcome {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return SaveOutcome{State: SaveFailed, Message: msg}
}
