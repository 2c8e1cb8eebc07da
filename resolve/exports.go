package resolve

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExportsValue is a package.json "exports" field: either a string target or an
// object whose entries are kept in declared order. Declaration order matters
// because condition selection picks the first recognized key, not a key from a
// fixed priority list.
type ExportsValue struct {
	str     string
	isStr   bool
	entries []exportsEntry
}

type exportsEntry struct {
	key   string
	value *ExportsValue
}

// UnmarshalJSON decodes the value token by token so that object key order
// survives, which encoding/json's map decoding would destroy.
func (v *ExportsValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	return v.decode(dec)
}

func (v *ExportsValue) decode(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case string:
		v.str = t
		v.isStr = true
		return nil
	case json.Delim:
		switch t {
		case '{':
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := keyTok.(string)
				if !ok {
					return fmt.Errorf("unexpected exports key token %v", keyTok)
				}

				child := &ExportsValue{}
				if err := child.decode(dec); err != nil {
					return err
				}
				v.entries = append(v.entries, exportsEntry{key: key, value: child})
			}
			_, err := dec.Token() // closing brace
			return err
		case '[':
			// Array targets are not interpreted; consume them so decoding stays in sync.
			for dec.More() {
				child := &ExportsValue{}
				if err := child.decode(dec); err != nil {
					return err
				}
			}
			_, err := dec.Token()
			return err
		}
	}

	// Numbers, booleans and null carry no resolution meaning.
	return nil
}

// lookup returns the entry for an exact key.
func (v *ExportsValue) lookup(key string) (*ExportsValue, bool) {
	for _, entry := range v.entries {
		if entry.key == key {
			return entry.value, true
		}
	}
	return nil, false
}

// selectTarget walks an exports value down to a string target for the
// requested subpath ("" for the package's main entry).
//
// Subpath selection happens at most once; after that, the first entry in
// declared order whose key is "import" or "default" wins at each level. All
// other conditions ("require", "node", "types", ...) are skipped.
func (v *ExportsValue) selectTarget(subpath string) (string, bool) {
	working := v

	if !working.isStr {
		key := "."
		if subpath != "" {
			key = "./" + subpath
		}
		if selected, ok := working.lookup(key); ok {
			working = selected
		}
	}

	for working != nil && !working.isStr {
		var next *ExportsValue
		for _, entry := range working.entries {
			if entry.key == "import" || entry.key == "default" {
				next = entry.value
				break
			}
		}
		if next == nil {
			return "", false
		}
		working = next
	}

	if working == nil || !working.isStr {
		return "", false
	}
	return working.str, true
}
