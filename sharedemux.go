package vault

// BaseKey indexes the non-share-scoped bucket returned by Demux.
const BaseKey = "base"

// Demux partitions a history into a base history and one history per share
// ID, based on the "$<uuid> " line prefix (§4.7). The operation is
// order-preserving per bucket.
func Demux(lines History) map[string]History {
	out := map[string]History{BaseKey: {}}
	for _, line := range lines {
		shareID, rest, ok := stripSharePrefix(line)
		if !ok {
			out[BaseKey] = append(out[BaseKey], line)
			continue
		}
		out[shareID] = append(out[shareID], rest)
	}
	return out
}
