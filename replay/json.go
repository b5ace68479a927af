package replay

import (
	"encoding/json"
	"fmt"
	"io"

	"euchre-lite/history"
)

// EncodeJSON renders a log in its persisted JSON form.
func EncodeJSON(l *history.Log) ([]byte, error) {
	return json.MarshalIndent(l.Raw(), "", "  ")
}

// DecodeJSON parses a persisted log. The config is validated again and the
// nodes must form a tree; replaying the nodes is left to Verify.
func DecodeJSON(b []byte) (*history.Log, error) {
	var raw history.RawLog
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode log: %w", err)
	}
	return history.FromRaw(raw)
}

func WriteJSON(w io.Writer, l *history.Log) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l.Raw())
}

func ReadJSON(r io.Reader) (*history.Log, error) {
	var raw history.RawLog
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode log: %w", err)
	}
	return history.FromRaw(raw)
}
