package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// Document is the accumulating pipeline state. Stage replies merge into it
// under their stage key; the brief interpreter's blueprint merges wholesale.
type Document map[string]any

// JSON marshals the document compactly, as fed to downstream stage prompts.
func (d Document) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// IndentJSON marshals the document the way artifacts are written.
func (d Document) IndentJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// decodeReply parses a stage reply. Models routinely wrap JSON in markdown
// fences or leave trailing commas; when plain parsing fails we run a
// mechanical repair pass before giving up.
func decodeReply(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v, nil
	}
	fixed, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON:\n%s", raw)
	}
	if err := json.Unmarshal([]byte(fixed), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON after repair:\n%s", raw)
	}
	return v, nil
}

// stageValue normalizes a decoded reply onto the stage key. A reply may be
// {"<key>": <value>} or a bare value; both land as <value> so a looser
// prompt doesn't lose content.
func stageValue(st Stage, v any) any {
	if st.Key == "" {
		return v
	}
	if m, ok := v.(map[string]any); ok {
		if inner, ok := m[st.Key]; ok {
			return inner
		}
	}
	return v
}
