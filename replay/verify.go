package replay

import (
	"bytes"

	"euchre-lite/history"
)

// Verify replays the path to every leaf of the log and returns the first
// failure, a *history.SeekError wrapping history.ErrCorruptLog.
func Verify(l *history.Log) error {
	lr, err := history.FromLog(l)
	if err != nil {
		return err
	}
	for _, leaf := range l.Leaves() {
		if err := lr.Seek(leaf); err != nil {
			return err
		}
	}
	return nil
}

// Load decodes a persisted log, JSON or binary, and verifies it. Input whose
// first non-space byte is '{' is taken as JSON; a binary log starts with the
// config field tag instead.
func Load(b []byte) (*history.Log, error) {
	var (
		l   *history.Log
		err error
	)
	if isJSON(b) {
		l, err = DecodeJSON(b)
	} else {
		l, err = UnmarshalBinary(b)
	}
	if err != nil {
		return nil, err
	}
	if err := Verify(l); err != nil {
		return nil, err
	}
	return l, nil
}

func isJSON(b []byte) bool {
	b = bytes.TrimLeft(b, " \t\r\n")
	return len(b) > 0 && b[0] == '{'
}
