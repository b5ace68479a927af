//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"syscall/js"

	"euchre-lite/euchre"
	"euchre-lite/history"
	"euchre-lite/replay"
)

type initRequest struct {
	Script replay.Script `json:"script"`
}

type initResponse struct {
	OK    bool                `json:"ok"`
	Tape  *replay.WireTape    `json:"tape,omitempty"`
	Error *replay.ReplayError `json:"error,omitempty"`
}

type seekRequest struct {
	Log    history.RawLog `json:"log"`
	NodeID *history.ID    `json:"node_id"`
}

type seekResponse struct {
	OK       bool                `json:"ok"`
	Snapshot *euchre.Snapshot    `json:"snapshot,omitempty"`
	Error    *replay.ReplayError `json:"error,omitempty"`
}

func main() {
	js.Global().Set("__replayInit", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(initResponse{Error: requestError("invalid_request", "missing request payload")})
		}
		return mustJSON(handleInit(args[0].String()))
	}))
	js.Global().Set("__replaySeek", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(seekResponse{Error: requestError("invalid_request", "missing request payload")})
		}
		return mustJSON(handleSeek(args[0].String()))
	}))

	select {}
}

func requestError(reason, msg string) *replay.ReplayError {
	return &replay.ReplayError{StepIndex: -1, Reason: reason, Message: msg}
}

func handleInit(raw string) initResponse {
	var req initRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return initResponse{Error: requestError("invalid_json", err.Error())}
	}

	tape, err := replay.Generate(req.Script)
	if err != nil {
		var replayErr *replay.ReplayError
		if errors.As(err, &replayErr) {
			return initResponse{Error: replayErr}
		}
		return initResponse{Error: requestError("replay_generation_failed", err.Error())}
	}
	return initResponse{OK: true, Tape: replay.ToWireTape(tape)}
}

// handleSeek validates a persisted log and returns the round as it stood at
// the requested node, or at the deal when node_id is null.
func handleSeek(raw string) seekResponse {
	var req seekRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return seekResponse{Error: requestError("invalid_json", err.Error())}
	}
	l, err := history.FromRaw(req.Log)
	if err != nil {
		return seekResponse{Error: requestError("invalid_log", err.Error())}
	}
	lr, err := history.FromLog(l)
	if err != nil {
		return seekResponse{Error: requestError("invalid_log", err.Error())}
	}
	target := history.NoID
	if req.NodeID != nil {
		target = *req.NodeID
	}
	if err := lr.Seek(target); err != nil {
		return seekResponse{Error: requestError("seek_failed", err.Error())}
	}
	snap := lr.Snapshot()
	return seekResponse{OK: true, Snapshot: &snap}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(initResponse{Error: requestError("marshal_failed", err.Error())})
	}
	return string(b)
}
