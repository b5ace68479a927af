package replay

import (
	"fmt"
	"math/rand"
	"strings"

	"euchre-lite/card"
	"euchre-lite/euchre"
)

type normalizedScript struct {
	config  euchre.RoundConfig
	actions []euchre.Action
}

func normalizeScript(s Script) (normalizedScript, error) {
	var out normalizedScript

	dealer, err := euchre.ParseSeat(strings.TrimSpace(s.Dealer))
	if err != nil {
		return out, configError(err)
	}

	switch {
	case len(s.Hands) > 0:
		cfg, err := parseDeal(dealer, s.Hands, s.Top)
		if err != nil {
			return out, configError(err)
		}
		out.config = cfg
	case s.RNG != nil:
		rng := rand.New(rand.NewSource(s.RNG.Seed))
		out.config = euchre.RandomRoundConfigWithDealer(rng, dealer)
	default:
		return out, configError(fmt.Errorf("either hands or rng must be given"))
	}

	out.actions = make([]euchre.Action, 0, len(s.Actions))
	for i, spec := range s.Actions {
		a, err := parseAction(spec)
		if err != nil {
			return out, &ReplayError{StepIndex: int32(i), Reason: ReasonInvalidAction, Message: err.Error(), Err: err}
		}
		out.actions = append(out.actions, a)
	}
	return out, nil
}

func configError(err error) *ReplayError {
	return &ReplayError{StepIndex: -1, Reason: ReasonInvalidConfig, Message: err.Error(), Err: err}
}

func parseDeal(dealer euchre.Seat, hands map[string][]string, top string) (euchre.RoundConfig, error) {
	cfg := euchre.RoundConfig{Dealer: dealer, Hands: make(map[euchre.Seat][]card.Card, len(hands))}
	for name, cards := range hands {
		seat, err := euchre.ParseSeat(strings.TrimSpace(name))
		if err != nil {
			return cfg, err
		}
		if _, dup := cfg.Hands[seat]; dup {
			return cfg, fmt.Errorf("hand for %s given twice", seat)
		}
		hand, err := parseCards(cards)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", seat, err)
		}
		cfg.Hands[seat] = hand
	}
	c, err := card.Parse(top)
	if err != nil {
		return cfg, fmt.Errorf("top: %w", err)
	}
	cfg.Top = c
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseCards(raw []string) ([]card.Card, error) {
	out := make([]card.Card, 0, len(raw))
	for _, s := range raw {
		c, err := card.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseAction(spec ActionSpec) (euchre.Action, error) {
	var a euchre.Action
	seat, err := euchre.ParseSeat(strings.TrimSpace(spec.Seat))
	if err != nil {
		return a, err
	}
	typ, err := euchre.ParseActionType(strings.ToLower(strings.TrimSpace(spec.Type)))
	if err != nil {
		return a, err
	}
	a.Seat, a.Action = seat, typ

	switch strings.ToLower(strings.TrimSpace(spec.Kind)) {
	case "pass":
		a.Data = euchre.Pass()
	case "call":
		suit, err := card.ParseSuit(strings.TrimSpace(spec.Suit))
		if err != nil {
			return a, err
		}
		a.Data = euchre.Call(suit, spec.Alone)
	case "card":
		c, err := card.Parse(spec.Card)
		if err != nil {
			return a, err
		}
		a.Data = euchre.Play(c)
	case "":
		// A bare card implies a card payload.
		if spec.Card == "" {
			return a, fmt.Errorf("action kind is required")
		}
		c, err := card.Parse(spec.Card)
		if err != nil {
			return a, err
		}
		a.Data = euchre.Play(c)
	default:
		return a, fmt.Errorf("unknown action kind %q", spec.Kind)
	}
	return a, nil
}

// SpecFromAction renders an action back into its scripted form.
func SpecFromAction(a euchre.Action) ActionSpec {
	spec := ActionSpec{Seat: a.Seat.String(), Type: a.Action.String(), Kind: a.Data.Kind.String()}
	switch a.Data.Kind {
	case euchre.DataCall:
		spec.Suit = a.Data.Suit.String()
		spec.Alone = a.Data.Alone
	case euchre.DataCard:
		spec.Card = a.Data.Card.String()
	}
	return spec
}

// ScriptFromConfig renders a deal as a script without actions.
func ScriptFromConfig(cfg euchre.RoundConfig) Script {
	s := Script{Dealer: cfg.Dealer.String(), Hands: make(map[string][]string, len(cfg.Hands)), Top: cfg.Top.String()}
	for seat, hand := range cfg.Hands {
		names := make([]string, 0, len(hand))
		for _, c := range hand {
			names = append(names, c.String())
		}
		s.Hands[seat.String()] = names
	}
	return s
}
