package project

import (
	"bytes"
	"encoding/json"
	"sort"
)

// flagOrder is the order known provider keys are written in. Unknown keys
// follow in sorted order.
var flagOrder = []string{
	"githubActions", "circleci", "travis", "gitlabCi",
	"fly", "vercel", "netlify",
}

// MarshalJSON writes known provider keys in flagOrder so scan documents
// diff cleanly against earlier runs.
func (f Flags) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}

	keys := make([]string, 0, len(f))
	known := make(map[string]bool, len(flagOrder))
	for _, k := range flagOrder {
		known[k] = true
		if _, ok := f[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range f {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		if f[k] {
			buf.WriteString(":true")
		} else {
			buf.WriteString(":false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
