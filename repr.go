package vault

import gojson "github.com/rsms/go-json"

// Repr formats a human-readable JSON dump of a dataset, in the same
// Builder-driven style the teacher's repr.go/json.go use for ents. It is
// for debugging and for the vaultcli inspect subcommand; it is not part of
// the on-disk format (that's Envelope Codec + History).
func Repr(d *Dataset) ([]byte, error) {
	c := gojson.Builder{Indent: "  "}
	c.StartObject()
	c.Key("id")
	c.Str(d.ID)
	c.Key("format")
	c.Str(d.Format)
	c.Key("attributes")
	writeStringMap(&c, d.Attributes)
	c.Key("groups")
	c.StartArray()
	for _, g := range d.Groups {
		writeGroup(&c, g)
	}
	c.EndArray()
	c.EndObject()
	return c.Bytes(), c.Err
}

func writeGroup(c *gojson.Builder, g *Group) {
	c.StartObject()
	c.Key("id")
	c.Str(g.ID)
	c.Key("parentId")
	c.Str(g.ParentID)
	c.Key("title")
	c.Str(g.Title)
	c.Key("attributes")
	writeStringMap(c, g.Attributes)
	c.Key("entries")
	c.StartArray()
	for _, e := range g.Entries {
		writeEntry(c, e)
	}
	c.EndArray()
	c.Key("groups")
	c.StartArray()
	for _, child := range g.Groups {
		writeGroup(c, child)
	}
	c.EndArray()
	c.EndObject()
}

func writeEntry(c *gojson.Builder, e *Entry) {
	c.StartObject()
	c.Key("id")
	c.Str(e.ID)
	c.Key("parentId")
	c.Str(e.ParentID)
	c.Key("properties")
	writeStringMap(c, e.Properties)
	c.Key("attributes")
	writeStringMap(c, e.Attributes)
	c.EndObject()
}

func writeStringMap(c *gojson.Builder, m map[string]string) {
	c.StartObject()
	for _, k := range sortedKeys(m) {
		c.Key(k)
		c.Str(m[k])
	}
	c.EndObject()
}
