package vault

import "regexp"

// validCommandExp matches "three lowercase letters, whitespace, at least
// one more character" (§4.4).
var validCommandExp = regexp.MustCompile(`^[a-z]{3}\s.+$`)

// sharePrefixExp matches the "$<uuid> " prefix on a share-scoped line (§3).
var sharePrefixExp = regexp.MustCompile(`^\$([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})\s(.*)$`)

// stripSharePrefix extracts the share UUID from a line, if present, and
// returns the remainder of the line unprefixed.
func stripSharePrefix(line string) (shareID string, rest string, ok bool) {
	m := sharePrefixExp.FindStringSubmatch(line)
	if m == nil {
		return "", line, false
	}
	return m[1], m[2], true
}

// TokenizeCommand splits a single command line (without any share prefix)
// into its lower-cased short key and ordered argument tokens, preserving
// quoted runs so encoded arguments remain intact. It returns
// ErrInvalidCommand if line does not match validCommandExp.
func TokenizeCommand(line string) (short string, args []string, err error) {
	if !validCommandExp.MatchString(line) {
		return "", nil, ErrInvalidCommand
	}
	tokens := splitPreservingQuotes(line)
	if len(tokens) == 0 {
		return "", nil, ErrInvalidCommand
	}
	short = tokens[0]
	args = tokens[1:]
	return short, args, nil
}

// splitPreservingQuotes splits on runs of whitespace, except inside a
// double-quoted run, which is kept intact (quotes included) as one token.
func splitPreservingQuotes(line string) []string {
	var tokens []string
	var cur []byte
	inQuotes := false
	hasCur := false
	flush := func() {
		if hasCur {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
			hasCur = false
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur = append(cur, c)
			hasCur = true
		case (c == ' ' || c == '\t') && !inQuotes:
			flush()
		default:
			cur = append(cur, c)
			hasCur = true
		}
	}
	flush()
	return tokens
}
