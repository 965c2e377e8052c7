package vault

// MergeReport summarizes what StripDestructive removed, per short key, so
// callers can observe how much of a divergent history was destructive
// before concatenating it for a merge replay (§6, "Supplemented Features").
type MergeReport struct {
	StrippedByShort map[string]int
	TotalStripped   int
}

// StripDestructive returns a new history with every destructive command
// (den, dgr, dea, dep, dem, dga, daa) removed (§4.8). Non-destructive but
// order-sensitive commands (mgr, men) are preserved. The result is used
// prior to concatenating two divergent histories for merge-style replay:
// it keeps the union of creations and the last-writer sets.
//
// Stripping is idempotent: StripDestructive(StripDestructive(h)) produces
// the same history as a single pass, since a history with no destructive
// lines has nothing left to remove.
func StripDestructive(lines History) (History, MergeReport) {
	report := MergeReport{StrippedByShort: map[string]int{}}
	out := make(History, 0, len(lines))
	for _, line := range lines {
		_, body, _ := stripSharePrefix(line)
		short, _, err := TokenizeCommand(body)
		if err == nil && destructiveShortKeys[short] {
			report.StrippedByShort[short]++
			report.TotalStripped++
			continue
		}
		out = append(out, line)
	}
	return out, report
}
