package vault

import (
	"encoding/base64"
	"strings"
)

// encodedPrefix/encodedSuffix delimit an encoded argument: a double-quoted
// envelope wrapping a base64 transport of the raw value (§4.2).
const (
	encodedPrefix = `"`
	encodedSuffix = `"`
)

// encodeArg wraps value in the encoded envelope, transporting its bytes as
// base64 so that embedded whitespace or quotes can never confuse the
// tokenizer.
func encodeArg(value string) string {
	return encodedPrefix + base64.StdEncoding.EncodeToString([]byte(value)) + encodedSuffix
}

// isEncodedToken reports whether token looks like an encoded argument
// envelope: a quoted run whose interior is valid base64. This heuristic is
// the fallback path for legacy lines (§9, "Argument encoding detection");
// manifest-driven decoding (decodeArg) is preferred wherever the encode
// flag is known.
func isEncodedToken(token string) bool {
	if len(token) < 2 || !strings.HasPrefix(token, encodedPrefix) || !strings.HasSuffix(token, encodedSuffix) {
		return false
	}
	inner := token[1 : len(token)-1]
	_, err := base64.StdEncoding.DecodeString(inner)
	return err == nil
}

// decodeArg decodes token per the manifest's encode flag for this argument
// position. A raw token that doesn't match the encoded envelope is passed
// through unchanged, so legacy unencoded values replay without corruption.
func decodeArg(token string, encoded bool) string {
	if !encoded {
		if isEncodedToken(token) {
			// legacy line produced by a newer writer than expected; still decode.
			if v, ok := tryDecodeEnvelope(token); ok {
				return v
			}
		}
		return token
	}
	if v, ok := tryDecodeEnvelope(token); ok {
		return v
	}
	// not actually encoded despite the manifest's expectation: pass through,
	// per the tolerant-replay requirement in §4.2.
	return token
}

func tryDecodeEnvelope(token string) (string, bool) {
	if !strings.HasPrefix(token, encodedPrefix) || !strings.HasSuffix(token, encodedSuffix) || len(token) < 2 {
		return "", false
	}
	inner := token[1 : len(token)-1]
	raw, err := base64.StdEncoding.DecodeString(inner)
	if err != nil {
		return "", false
	}
	return string(raw), true
}
