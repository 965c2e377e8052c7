package vault

// Stats is a cheap summary over a History and its replayed Dataset, used
// by CanBeFlattened and by vaultcli inspect (§6, "Supplemented Features").
type Stats struct {
	Commands    int
	Destructive int
	Groups      int
	Entries     int
}

// StatsOf computes Stats for history lines, replaying them to obtain group
// and entry counts. It returns the zero Stats plus the replay error if the
// history doesn't replay cleanly.
func StatsOf(lines History) (Stats, error) {
	d, err := Replay(lines)
	if err != nil {
		return Stats{}, err
	}
	return statsOf(d, lines), nil
}

func statsOf(d *Dataset, lines History) Stats {
	st := Stats{
		Commands: len(lines),
		Groups:   len(d.GetAllGroups()),
		Entries:  len(d.GetAllEntries()),
	}
	for _, line := range lines {
		_, body, _ := stripSharePrefix(line)
		if short, _, err := TokenizeCommand(body); err == nil && destructiveShortKeys[short] {
			st.Destructive++
		}
	}
	return st
}
