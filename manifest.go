package vault

import "github.com/rsms/go-bits"

// EncodeMask is a bitmask over a command's argument list: bit i is set when
// argument i is written in the encoded envelope (§4.2); BuildCommand
// encodes such an argument whatever its content. It is sized and queried the same way index.go and
// entstorage.go size their fieldmap scratch buffers in the teacher repo.
type EncodeMask uint8

func (m EncodeMask) has(i int) bool { return m&(1<<uint(i)) != 0 }

// count returns how many argument positions in the mask are encoded, via
// the same bit-population approach FieldSet.Len uses.
func (m EncodeMask) count() int { return bits.PopcountUint64(uint64(m)) }

func encodeMask(positions ...int) EncodeMask {
	var m EncodeMask
	for _, p := range positions {
		m |= 1 << uint(p)
	}
	return m
}

// ArgDesc describes one positional argument of a command.
type ArgDesc struct {
	Name string // logical name of the argument
}

// CommandSpec is one row of the Command Manifest: a command's wire short
// key, its argument list, and which arguments are subject to encoding.
type CommandSpec struct {
	Name    string // friendly name, e.g. "createGroup"
	Short   string // three-letter wire key, e.g. "cgr"
	Args    []ArgDesc
	Encoded EncodeMask
}

// manifest is the static command table, keyed by short key. Two deprecated
// meta aliases (sem/dem) are declared with the same shape as their
// sep/dep counterparts but are routed to sep/dep at dispatch time rather
// than duplicating executors (§4.1).
var manifest = map[string]CommandSpec{
	"aid": {Name: "setVaultID", Short: "aid", Args: a("vaultID")},
	"cmm": {Name: "comment", Short: "cmm", Args: a("text")},
	"fmt": {Name: "setFormat", Short: "fmt", Args: a("tag")},

	"cgr": {Name: "createGroup", Short: "cgr", Args: a("parentID", "newGroupID")},
	"dgr": {Name: "deleteGroup", Short: "dgr", Args: a("groupID")},
	"mgr": {Name: "moveGroup", Short: "mgr", Args: a("groupID", "newParentID")},
	"tgr": {Name: "setGroupTitle", Short: "tgr", Args: a("groupID", "title"), Encoded: encodeMask(1)},

	"sga": {Name: "setGroupAttribute", Short: "sga", Args: a("groupID", "key", "value"), Encoded: encodeMask(2)},
	"dga": {Name: "deleteGroupAttribute", Short: "dga", Args: a("groupID", "key")},

	"cen": {Name: "createEntry", Short: "cen", Args: a("groupID", "entryID")},
	"den": {Name: "deleteEntry", Short: "den", Args: a("entryID")},
	"men": {Name: "moveEntry", Short: "men", Args: a("entryID", "newGroupID")},

	"sep": {Name: "setEntryProperty", Short: "sep", Args: a("entryID", "key", "value"), Encoded: encodeMask(2)},
	"dep": {Name: "deleteEntryProperty", Short: "dep", Args: a("entryID", "key")},

	"sea": {Name: "setEntryAttribute", Short: "sea", Args: a("entryID", "key", "value"), Encoded: encodeMask(2)},
	"dea": {Name: "deleteEntryAttribute", Short: "dea", Args: a("entryID", "key")},

	// deprecated meta aliases, routed to sep/dep (§4.1, seed scenario 6)
	"sem": {Name: "setEntryMeta", Short: "sem", Args: a("entryID", "key", "value"), Encoded: encodeMask(2)},
	"dem": {Name: "deleteEntryMeta", Short: "dem", Args: a("entryID", "key")},

	"saa": {Name: "setVaultAttribute", Short: "saa", Args: a("key", "value"), Encoded: encodeMask(1)},
	"daa": {Name: "deleteVaultAttribute", Short: "daa", Args: a("key")},

	"pad": {Name: "pad", Short: "pad", Args: a("token")},
}

func a(names ...string) []ArgDesc {
	out := make([]ArgDesc, len(names))
	for i, n := range names {
		out[i] = ArgDesc{Name: n}
	}
	return out
}

// destructiveShortKeys is the set of commands the Merge Preprocessor strips
// (§4.8): anything whose semantics remove a group, entry, attribute, or
// property.
var destructiveShortKeys = map[string]bool{
	"den": true,
	"dgr": true,
	"dea": true,
	"dep": true,
	"dem": true,
	"dga": true,
	"daa": true,
}

// metaAliasOf returns the short key a deprecated meta alias routes to, and
// whether short is in fact an alias.
func metaAliasOf(short string) (target string, ok bool) {
	switch short {
	case "sem":
		return "sep", true
	case "dem":
		return "dep", true
	}
	return "", false
}
