package nbt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/arloliu/anvil/format"
)

// MarshalJSON renders the compound as a JSON object preserving insertion
// order. Intended for debugging and export; the mapping is lossy (all NBT
// integer widths become JSON numbers).
func (c *Compound) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(c.tags[i])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalJSON renders the tag payload as a JSON value.
func (t Tag) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case format.TagEnd:
		return []byte("null"), nil
	case format.TagByte:
		v, _ := t.Byte()
		return json.Marshal(v)
	case format.TagShort:
		v, _ := t.Short()
		return json.Marshal(v)
	case format.TagInt:
		v, _ := t.Int()
		return json.Marshal(v)
	case format.TagLong:
		v, _ := t.Long()
		return json.Marshal(v)
	case format.TagFloat:
		v, _ := t.Float()
		return json.Marshal(v)
	case format.TagDouble:
		v, _ := t.Double()
		return json.Marshal(v)
	case format.TagByteArray:
		// As a numeric array, not base64: matches how NBT tooling prints it.
		out := make([]int16, len(t.raw))
		for i, b := range t.raw {
			out[i] = int16(int8(b))
		}

		return json.Marshal(out)
	case format.TagString:
		return json.Marshal(t.str)
	case format.TagList:
		if t.list == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(t.list)
	case format.TagCompound:
		return json.Marshal(t.comp)
	case format.TagIntArray:
		return json.Marshal(t.ints)
	case format.TagLongArray:
		return json.Marshal(t.longs)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, t.kind)
	}
}
