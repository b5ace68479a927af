package replay

// WireTape is the compact form of a tape sent to viewers: every event as its
// base64 protobuf envelope.
type WireTape struct {
	TapeVersion int             `json:"tapeVersion"`
	Dealer      string          `json:"dealer"`
	Events      []WireTapeEvent `json:"events"`
}

type WireTapeEvent struct {
	Type        string `json:"type"`
	Seq         uint64 `json:"seq"`
	EnvelopeB64 string `json:"envelopeB64"`
}

func ToWireTape(tape *Tape) *WireTape {
	if tape == nil {
		return nil
	}
	out := &WireTape{
		TapeVersion: tape.TapeVersion,
		Dealer:      tape.Config.Dealer.String(),
		Events:      make([]WireTapeEvent, 0, len(tape.Events)),
	}
	for _, e := range tape.Events {
		out.Events = append(out.Events, WireTapeEvent{
			Type:        e.Type,
			Seq:         e.Seq,
			EnvelopeB64: e.EnvelopeB64,
		})
	}
	return out
}
