package vault

import "sort"

// DescribeGroup walks a group subtree producing, in order: a cgr line, a
// tgr line if the title is set, sga lines for each attribute (sorted by
// key for determinism), then for each entry a cen + sep/sea sequence, then
// recurses into child groups (§4.11). parentID is the ID (or RootID)
// already present in the target dataset that g should be created under.
func DescribeGroup(g *Group, parentID string) History {
	var out History
	appendGroupDescribe(&out, g, parentID, nil)
	return out
}

func describeEntry(e *Entry) History {
	var out History
	appendEntryDescribe(&out, e, nil)
	return out
}

// DescribeDataset emits the full command sequence that reconstructs d from
// an empty dataset: fmt, aid, top-level vault attributes, then every group
// subtree in order.
func DescribeDataset(d *Dataset) History {
	var out History
	appendDatasetDescribe(&out, d, nil)
	return out
}

// appendDatasetDescribe, appendGroupDescribe and appendEntryDescribe do the
// actual describing; each takes an optional onLine hook invoked with the
// running line count after every command is appended, so a caller driving
// a progress indicator (FlattenProgress) sees one tick per command emitted
// rather than a single tick for the whole dataset.

func appendDatasetDescribe(out *History, d *Dataset, onLine func(int)) {
	emit := describeEmitter(out, onLine)
	if d.Format != "" {
		emit(MustBuildCommand("fmt", d.Format))
	}
	if d.ID != "" {
		emit(MustBuildCommand("aid", d.ID))
	}
	for _, key := range sortedKeys(d.Attributes) {
		emit(MustBuildCommand("saa", key, d.Attributes[key]))
	}
	for _, g := range d.Groups {
		appendGroupDescribe(out, g, RootID, onLine)
	}
}

func appendGroupDescribe(out *History, g *Group, parentID string, onLine func(int)) {
	emit := describeEmitter(out, onLine)
	emit(MustBuildCommand("cgr", parentID, g.ID))
	if g.Title != "" {
		emit(MustBuildCommand("tgr", g.ID, g.Title))
	}
	for _, key := range sortedKeys(g.Attributes) {
		emit(MustBuildCommand("sga", g.ID, key, g.Attributes[key]))
	}
	for _, e := range g.Entries {
		appendEntryDescribe(out, e, onLine)
	}
	for _, child := range g.Groups {
		appendGroupDescribe(out, child, g.ID, onLine)
	}
}

func appendEntryDescribe(out *History, e *Entry, onLine func(int)) {
	emit := describeEmitter(out, onLine)
	emit(MustBuildCommand("cen", e.ParentID, e.ID))
	for _, key := range sortedKeys(e.Properties) {
		emit(MustBuildCommand("sep", e.ID, key, e.Properties[key]))
	}
	for _, key := range sortedKeys(e.Attributes) {
		emit(MustBuildCommand("sea", e.ID, key, e.Attributes[key]))
	}
}

func describeEmitter(out *History, onLine func(int)) func(string) {
	return func(cmd string) {
		*out = append(*out, cmd)
		if onLine != nil {
			onLine(len(*out))
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
