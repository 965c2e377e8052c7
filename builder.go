package vault

import "strings"

// BuildCommand produces "<short> <arg1> <arg2> ..." for the named command,
// wrapping each argument flagged encode in the manifest in the encoded
// envelope and leaving the rest literal. The result round-trips through
// TokenizeCommand/decodeArg for every input (§4.3, §8).
func BuildCommand(short string, args ...string) (string, error) {
	spec, ok := manifest[short]
	if !ok {
		return "", ErrUnknownCommand
	}
	if len(args) != len(spec.Args) {
		return "", wrapExec(short, errMalformedTokens)
	}
	var sb strings.Builder
	sb.WriteString(short)
	for i, v := range args {
		sb.WriteByte(' ')
		if spec.Encoded.has(i) {
			sb.WriteString(encodeArg(v))
		} else {
			sb.WriteString(v)
		}
	}
	return sb.String(), nil
}

// MustBuildCommand is BuildCommand but panics on error; useful for tests
// and for constructing literal commands (pad, fmt, aid) whose shape is
// known not to fail.
func MustBuildCommand(short string, args ...string) string {
	cmd, err := BuildCommand(short, args...)
	if err != nil {
		panic(err)
	}
	return cmd
}
