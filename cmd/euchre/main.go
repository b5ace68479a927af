// Command euchre plays, saves and inspects euchre round logs.
//
//	euchre play   [-seed n] [-dealer seat] [-bots kinds] [-out file] [-save]
//	euchre match  [-seed n] [-target n] [-bots kinds] [-save]
//	euchre show   (-in file | -id uuid)
//	euchre seek   (-in file | -id uuid) [-node id]
//	euchre verify (-in file | -id uuid)
//	euchre list
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"euchre-lite/euchre"
	"euchre-lite/history"
	"euchre-lite/internal/config"
	"euchre-lite/internal/store"
	"euchre-lite/internal/table"
	"euchre-lite/player"
	"euchre-lite/replay"
)

type app struct {
	cfg    config.Config
	log    *logrus.Logger
	out    io.Writer
	bots   *player.Registry
	stores func() (store.Service, string, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	a := &app{
		cfg:  cfg,
		log:  cfg.NewLogger(),
		out:  os.Stdout,
		bots: player.NewRegistry(),
	}
	a.stores = func() (store.Service, string, error) { return store.NewServiceFromEnv(a.cfg) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		a.log.WithError(err).Fatal("euchre failed")
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: euchre play|match|show|seek|verify|list [flags]")
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "play":
		return a.play(ctx, rest)
	case "match":
		return a.match(ctx, rest)
	case "show":
		return a.show(ctx, rest)
	case "seek":
		return a.seek(ctx, rest)
	case "verify":
		return a.verify(ctx, rest)
	case "list":
		return a.list(ctx)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) play(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	seed := fs.Int64("seed", time.Now().UnixNano(), "deal and bot seed")
	dealer := fs.String("dealer", "", "dealer seat (random when empty)")
	bots := fs.String("bots", "random", "comma separated bot kinds, North to West; one kind fills every seat")
	outPath := fs.String("out", "", "write the log to this file (.json or .bin)")
	save := fs.Bool("save", false, "save the log in the configured store")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	cfg := euchre.RandomRoundConfig(rng)
	if *dealer != "" {
		seat, err := euchre.ParseSeat(*dealer)
		if err != nil {
			return err
		}
		cfg = euchre.RandomRoundConfigWithDealer(rng, seat)
	}
	players, err := a.seatBots(*bots, *seed)
	if err != nil {
		return err
	}

	tbl, err := table.New(fmt.Sprintf("seed-%d", *seed), cfg, players, a.log)
	if err != nil {
		return err
	}
	outcome, err := tbl.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "result: %s\n", outcome)

	if *outPath != "" {
		if err := writeLogFile(*outPath, tbl.Log()); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "log written to %s\n", *outPath)
	}
	if *save {
		svc, mode, err := a.stores()
		if err != nil {
			return err
		}
		defer svc.Close()
		id, err := svc.Save(ctx, tbl.ID, tbl.Log())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "saved %s (%s)\n", id, mode)
	}
	return nil
}

func (a *app) match(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	seed := fs.Int64("seed", time.Now().UnixNano(), "deal and bot seed")
	target := fs.Int("target", a.cfg.TargetScore, "points needed to win")
	bots := fs.String("bots", "random", "comma separated bot kinds, North to West")
	save := fs.Bool("save", false, "save every round in the configured store")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	game, err := euchre.NewGame(euchre.Seats[rng.Intn(len(euchre.Seats))], *target)
	if err != nil {
		return err
	}
	players, err := a.seatBots(*bots, *seed)
	if err != nil {
		return err
	}
	m, err := table.NewMatch(fmt.Sprintf("match-%d", *seed), game, players, rng, a.log)
	if err != nil {
		return err
	}
	if *save {
		svc, mode, err := a.stores()
		if err != nil {
			return err
		}
		defer svc.Close()
		a.log.WithField("store", mode).Info("saving rounds")
		m.SaveTo(svc)
	}

	ev, err := m.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s after %d rounds\n", ev, game.Rounds())
	for i, id := range m.Saved() {
		fmt.Fprintf(a.out, "round %d: %s\n", i+1, id)
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	l, _, err := a.loadFromFlags(ctx, "show", args)
	if err != nil {
		return err
	}
	printTree(a.out, l)
	return nil
}

func (a *app) seek(ctx context.Context, args []string) error {
	l, rest, err := a.loadFromFlags(ctx, "seek", args, "node")
	if err != nil {
		return err
	}
	lr, err := history.FromLog(l)
	if err != nil {
		return err
	}
	if raw := rest["node"]; raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return fmt.Errorf("node: %w", err)
		}
		if err := lr.Seek(history.ID(n)); err != nil {
			return err
		}
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(lr.Snapshot())
}

func (a *app) verify(ctx context.Context, args []string) error {
	l, _, err := a.loadFromFlags(ctx, "verify", args)
	if err != nil {
		return err
	}
	if err := replay.Verify(l); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ok: %d nodes, %d leaves\n", l.Len(), len(l.Leaves()))
	return nil
}

func (a *app) list(ctx context.Context) error {
	svc, _, err := a.stores()
	if err != nil {
		return err
	}
	defer svc.Close()
	sums, err := svc.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range sums {
		fmt.Fprintf(a.out, "%s  %-20s dealer=%-5s nodes=%-3d %s\n",
			s.ID, s.Name, s.Dealer, s.Nodes, s.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// loadFromFlags parses -in/-id plus any extra string flags and loads the log
// they name.
func (a *app) loadFromFlags(ctx context.Context, name string, args []string, extra ...string) (*history.Log, map[string]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	in := fs.String("in", "", "log file (.json or .bin)")
	id := fs.String("id", "", "saved log id in the configured store")
	values := make(map[string]*string, len(extra))
	for _, e := range extra {
		values[e] = fs.String(e, "", e)
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	rest := make(map[string]string, len(values))
	for k, v := range values {
		rest[k] = *v
	}

	switch {
	case *in != "" && *id != "":
		return nil, nil, fmt.Errorf("-in and -id are exclusive")
	case *in != "":
		b, err := os.ReadFile(*in)
		if err != nil {
			return nil, nil, err
		}
		l, err := replay.Load(b)
		return l, rest, err
	case *id != "":
		svc, _, err := a.stores()
		if err != nil {
			return nil, nil, err
		}
		defer svc.Close()
		l, err := svc.Load(ctx, *id)
		return l, rest, err
	}
	return nil, nil, fmt.Errorf("%s needs -in or -id", name)
}

// seatBots builds players from a kind list. A single kind fills every seat.
func (a *app) seatBots(spec string, seed int64) (map[euchre.Seat]player.Player, error) {
	kinds := strings.Split(spec, ",")
	if len(kinds) == 1 {
		kinds = []string{kinds[0], kinds[0], kinds[0], kinds[0]}
	}
	if len(kinds) != len(euchre.Seats) {
		return nil, fmt.Errorf("need 1 or %d bot kinds, got %d", len(euchre.Seats), len(kinds))
	}
	players := make(map[euchre.Seat]player.Player, len(kinds))
	for i, seat := range euchre.Seats {
		p, err := a.bots.New(strings.TrimSpace(kinds[i]), seat.String(), seed+int64(i)+1)
		if err != nil {
			return nil, err
		}
		players[seat] = p
	}
	players[euchre.North] = narrator{Player: players[euchre.North], w: a.out}
	return players, nil
}

// narrator prints the events shown to the seat it wraps.
type narrator struct {
	player.Player
	w io.Writer
}

func (n narrator) Notify(state euchre.PlayerState, ev euchre.Event) {
	fmt.Fprintln(n.w, ev)
	n.Player.Notify(state, ev)
}

func writeLogFile(path string, l *history.Log) error {
	if strings.EqualFold(filepath.Ext(path), ".bin") {
		return os.WriteFile(path, replay.MarshalBinary(l.Raw()), 0o644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := replay.WriteJSON(f, l); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
