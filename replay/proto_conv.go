package replay

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"euchre-lite/card"
	"euchre-lite/euchre"
	"euchre-lite/history"
)

// Binary form of a raw log, in protobuf wire format:
//
//	message Log    { Config config = 1; repeated Node nodes = 2; }
//	message Config { uint32 dealer = 1; repeated Hand hands = 2; uint32 top = 3; }
//	message Hand   { uint32 seat = 1; bytes cards = 2; }
//	message Node   { uint32 id = 1; optional uint32 parent = 2; Action action = 3; }
//	message Action { uint32 seat = 1; uint32 type = 2; uint32 kind = 3;
//	                 uint32 suit = 4; bool alone = 5; uint32 card = 6; }
//
// Cards travel as their packed byte. Unknown fields are skipped.

var errWireType = errors.New("unexpected wire type")

// MarshalBinary encodes a raw log.
func MarshalBinary(raw history.RawLog) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, appendConfig(nil, raw.Config))
	for _, n := range raw.Actions {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, appendNode(nil, n))
	}
	return b
}

// UnmarshalBinary decodes a raw log and rebuilds it with history.FromRaw.
func UnmarshalBinary(b []byte) (*history.Log, error) {
	raw, err := decodeRawLog(b)
	if err != nil {
		return nil, fmt.Errorf("decode binary log: %w", err)
	}
	return history.FromRaw(raw)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendConfig(b []byte, cfg euchre.RoundConfig) []byte {
	b = appendVarintField(b, 1, uint64(cfg.Dealer))
	for _, seat := range euchre.Seats {
		hand, ok := cfg.Hands[seat]
		if !ok {
			continue
		}
		var h []byte
		h = appendVarintField(h, 1, uint64(seat))
		h = appendBytesField(h, 2, card.Cards2bytes(hand))
		b = appendBytesField(b, 2, h)
	}
	return appendVarintField(b, 3, uint64(cfg.Top))
}

func appendNode(b []byte, n history.RawNode) []byte {
	b = appendVarintField(b, 1, uint64(n.ID))
	if n.Parent != nil {
		b = appendVarintField(b, 2, uint64(*n.Parent))
	}
	return appendBytesField(b, 3, appendAction(nil, n.Action))
}

func appendAction(b []byte, a euchre.Action) []byte {
	b = appendVarintField(b, 1, uint64(a.Seat))
	b = appendVarintField(b, 2, uint64(a.Action))
	b = appendVarintField(b, 3, uint64(a.Data.Kind))
	switch a.Data.Kind {
	case euchre.DataCall:
		b = appendVarintField(b, 4, uint64(a.Data.Suit))
		b = appendVarintField(b, 5, protowire.EncodeBool(a.Data.Alone))
	case euchre.DataCard:
		b = appendVarintField(b, 6, uint64(a.Data.Card))
	}
	return b
}

type wireField struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

// eachField walks the varint and length-delimited fields of a message,
// skipping fields of any other wire type.
func eachField(b []byte, fn func(f wireField) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		f := wireField{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (f wireField) uint8() (byte, error) {
	if f.typ != protowire.VarintType {
		return 0, fmt.Errorf("field %d: %w", f.num, errWireType)
	}
	if f.varint > 0xFF {
		return 0, fmt.Errorf("field %d: value %d out of range", f.num, f.varint)
	}
	return byte(f.varint), nil
}

func (f wireField) message() ([]byte, error) {
	if f.typ != protowire.BytesType {
		return nil, fmt.Errorf("field %d: %w", f.num, errWireType)
	}
	return f.bytes, nil
}

func decodeRawLog(b []byte) (history.RawLog, error) {
	var raw history.RawLog
	sawConfig := false
	err := eachField(b, func(f wireField) error {
		switch f.num {
		case 1:
			m, err := f.message()
			if err != nil {
				return err
			}
			raw.Config, err = decodeConfig(m)
			sawConfig = true
			return err
		case 2:
			m, err := f.message()
			if err != nil {
				return err
			}
			n, err := decodeNode(m)
			if err != nil {
				return err
			}
			raw.Actions = append(raw.Actions, n)
		}
		return nil
	})
	if err == nil && !sawConfig {
		err = errors.New("missing config")
	}
	return raw, err
}

func decodeConfig(b []byte) (euchre.RoundConfig, error) {
	cfg := euchre.RoundConfig{Hands: make(map[euchre.Seat][]card.Card, 4)}
	err := eachField(b, func(f wireField) error {
		switch f.num {
		case 1:
			v, err := f.uint8()
			cfg.Dealer = euchre.Seat(v)
			return err
		case 2:
			m, err := f.message()
			if err != nil {
				return err
			}
			return decodeHand(m, cfg.Hands)
		case 3:
			v, err := f.uint8()
			cfg.Top = card.Card(v)
			return err
		}
		return nil
	})
	return cfg, err
}

func decodeHand(b []byte, hands map[euchre.Seat][]card.Card) error {
	var seat euchre.Seat
	var cards []card.Card
	err := eachField(b, func(f wireField) error {
		switch f.num {
		case 1:
			v, err := f.uint8()
			seat = euchre.Seat(v)
			return err
		case 2:
			m, err := f.message()
			if err != nil {
				return err
			}
			cards, err = card.Bytes2cards(m)
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !seat.Valid() {
		return fmt.Errorf("invalid seat %d", byte(seat))
	}
	if _, dup := hands[seat]; dup {
		return fmt.Errorf("hand for %s given twice", seat)
	}
	hands[seat] = cards
	return nil
}

func decodeNode(b []byte) (history.RawNode, error) {
	var n history.RawNode
	err := eachField(b, func(f wireField) error {
		switch f.num {
		case 1, 2:
			if f.typ != protowire.VarintType {
				return fmt.Errorf("field %d: %w", f.num, errWireType)
			}
			if f.varint > uint64(history.NoID) {
				return fmt.Errorf("node id %d out of range", f.varint)
			}
			id := history.ID(f.varint)
			if f.num == 1 {
				n.ID = id
			} else {
				n.Parent = &id
			}
		case 3:
			m, err := f.message()
			if err != nil {
				return err
			}
			n.Action, err = decodeAction(m)
			return err
		}
		return nil
	})
	return n, err
}

func decodeAction(b []byte) (euchre.Action, error) {
	var a euchre.Action
	err := eachField(b, func(f wireField) error {
		if f.num < 1 || f.num > 6 {
			return nil
		}
		v, err := f.uint8()
		if err != nil {
			return err
		}
		switch f.num {
		case 1:
			a.Seat = euchre.Seat(v)
		case 2:
			a.Action = euchre.ActionType(v)
		case 3:
			a.Data.Kind = euchre.DataKind(v)
		case 4:
			a.Data.Suit = card.Suit(v)
		case 5:
			a.Data.Alone = protowire.DecodeBool(f.varint)
		case 6:
			a.Data.Card = card.Card(v)
		}
		return nil
	})
	if err != nil {
		return a, err
	}
	return a, validateAction(a)
}

func validateAction(a euchre.Action) error {
	if !a.Seat.Valid() {
		return fmt.Errorf("invalid seat %d", byte(a.Seat))
	}
	if _, ok := euchre.ActionTypeDictionary[a.Action]; !ok {
		return fmt.Errorf("invalid action type %d", byte(a.Action))
	}
	if !a.Data.Valid() {
		return euchre.ErrInvalidActionData
	}
	return nil
}

// appendTapeEvent encodes the envelope carried by a tape event:
//
//	message Event { string type = 1; uint64 seq = 2; Action action = 3;
//	                Prompt prompt = 4; Contract contract = 5; Outcome outcome = 6;
//	                Trick trick = 7; Deal deal = 8; }
//
// Snapshots are only carried in the JSON form of the tape.
func appendTapeEvent(b []byte, ev TapeEvent) []byte {
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, ev.Type)
	b = appendVarintField(b, 2, ev.Seq)
	if ev.Action != nil {
		b = appendBytesField(b, 3, appendAction(nil, *ev.Action))
	}
	if ev.Prompt != nil {
		var m []byte
		m = appendVarintField(m, 1, uint64(ev.Prompt.Seat))
		m = appendVarintField(m, 2, uint64(ev.Prompt.Action))
		b = appendBytesField(b, 4, m)
	}
	if ev.Contract != nil {
		var m []byte
		m = appendVarintField(m, 1, uint64(ev.Contract.Maker))
		m = appendVarintField(m, 2, uint64(ev.Contract.Suit))
		m = appendVarintField(m, 3, protowire.EncodeBool(ev.Contract.Alone))
		b = appendBytesField(b, 5, m)
	}
	if ev.Outcome != nil {
		var m []byte
		m = appendVarintField(m, 1, uint64(ev.Outcome.Team))
		m = appendVarintField(m, 2, uint64(ev.Outcome.Points))
		b = appendBytesField(b, 6, m)
	}
	if ev.Trick != nil {
		plays := make([]byte, 0, 2*len(ev.Trick.Plays))
		for _, p := range ev.Trick.Plays {
			plays = append(plays, byte(p.Seat), byte(p.Card))
		}
		var m []byte
		m = appendBytesField(m, 1, plays)
		m = appendVarintField(m, 2, uint64(ev.Trick.Winner))
		b = appendBytesField(b, 7, m)
	}
	if ev.Deal != nil {
		var m []byte
		m = appendVarintField(m, 1, uint64(ev.Deal.Dealer))
		m = appendVarintField(m, 2, uint64(ev.Deal.Top))
		b = appendBytesField(b, 8, m)
	}
	return b
}
