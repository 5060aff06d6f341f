// Package dfajson reads and writes automata in the JSON state-record format.
//
// A document is an array of state records:
//
//	[
//	    {
//	        "state_name": "A",
//	        "transitions": [{"input": "0", "target_state": "B"}],
//	        "is_start": true,
//	        "is_end": false
//	    }
//	]
//
// "state_name" is required and unique within the document. "transitions" is optional; each entry
// needs both "input" and "target_state". "is_start" and "is_end" default to false and at most one
// record may be the start. The alphabet is the set of all inputs seen. A label that only occurs as a
// target becomes a non-accepting state without transitions.
//
// An object with a single key wrapping such an array (as written by the generator, e.g.
// {"expanded_dfa": [...]}) is accepted as well.
package dfajson

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	automaton "github.com/geange/dfamin"
)

type record struct {
	StateName   *string      `json:"state_name"`
	Transitions []transition `json:"transitions"`
	IsStart     bool         `json:"is_start"`
	IsEnd       bool         `json:"is_end"`
}

type transition struct {
	Input       *string `json:"input"`
	TargetState *string `json:"target_state"`
}

type outRecord struct {
	StateName   string          `json:"state_name"`
	Transitions []outTransition `json:"transitions"`
	IsStart     bool            `json:"is_start"`
	IsEnd       bool            `json:"is_end"`
}

type outTransition struct {
	Input       string `json:"input"`
	TargetState string `json:"target_state"`
}

// ReadJSON decodes an automaton from r. States are numbered in the order their labels first appear.
//
// A document without a start record decodes successfully into an automaton whose HasStart is false;
// rejecting it is left to the caller. All decoding failures carry automaton.CodeMalformedInput.
func ReadJSON(r io.Reader) (*automaton.Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, automaton.WrapError(automaton.CodeInputUnavailable, err, "read document")
	}
	return Decode(data)
}

// Decode is ReadJSON over an in-memory document.
func Decode(data []byte) (*automaton.Automaton, error) {
	records, err := unwrapDocument(data)
	if err != nil {
		return nil, err
	}

	b := automaton.NewBuilder()
	// Record that declared each state. Labels interned as targets only are not declared yet.
	declared := make(map[string]int, len(records))
	startRecord := -1
	for i, rec := range records {
		if rec.StateName == nil {
			return nil, automaton.NewError(automaton.CodeMalformedInput, "record %d: missing state_name", i)
		}
		name := *rec.StateName
		if prev, ok := declared[name]; ok {
			return nil, automaton.NewError(automaton.CodeMalformedInput,
				"record %d: state %q already declared by record %d", i, name, prev)
		}
		declared[name] = i

		s := b.State(name)
		if rec.IsStart {
			if startRecord >= 0 {
				return nil, automaton.NewError(automaton.CodeMalformedInput,
					"record %d: state %q is a second start state (record %d is the first)", i, name, startRecord)
			}
			startRecord = i
			b.SetStart(s)
		}
		if rec.IsEnd {
			b.SetAccept(s, true)
		}

		for j, t := range rec.Transitions {
			if t.Input == nil {
				return nil, automaton.NewError(automaton.CodeMalformedInput,
					"record %d (%q): transition %d: missing input", i, name, j)
			}
			if t.TargetState == nil {
				return nil, automaton.NewError(automaton.CodeMalformedInput,
					"record %d (%q): transition %d: missing target_state", i, name, j)
			}
			if err := b.AddTransitionLabel(s, *t.Input, b.State(*t.TargetState)); err != nil {
				return nil, automaton.WrapError(automaton.CodeMalformedInput, err, "record %d (%q): transition %d", i, name, j)
			}
		}
	}

	return b.Finish(), nil
}

func unwrapDocument(data []byte) ([]record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, automaton.NewError(automaton.CodeMalformedInput, "empty document")
	}

	var raw json.RawMessage = trimmed
	if trimmed[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, automaton.WrapError(automaton.CodeMalformedInput, err, "decode document")
		}
		if len(wrapper) != 1 {
			return nil, automaton.NewError(automaton.CodeMalformedInput,
				"wrapped document must have exactly one key, found %d", len(wrapper))
		}
		for _, inner := range wrapper {
			raw = inner
		}
	}

	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, automaton.WrapError(automaton.CodeMalformedInput, err, "decode document")
	}
	return records, nil
}

// ImportJSON reads the automaton stored at path. A missing or unreadable file is reported with
// automaton.CodeInputUnavailable.
func ImportJSON(path string) (*automaton.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, automaton.WrapError(automaton.CodeInputUnavailable, err, "read input")
	}
	a, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return a, nil
}

// WriteJSON encodes a as an array of state records, in state id order with transitions in symbol id
// order, indented by four spaces.
func WriteJSON(a *automaton.Automaton, w io.Writer) error {
	return encode(w, records(a))
}

// WriteJSONWrapped encodes a like WriteJSON, wrapped in an object under key.
func WriteJSONWrapped(a *automaton.Automaton, key string, w io.Writer) error {
	return encode(w, map[string][]outRecord{key: records(a)})
}

func records(a *automaton.Automaton) []outRecord {
	out := make([]outRecord, a.GetNumStates())
	for s := range out {
		rec := outRecord{
			StateName:   a.GetStateName(s),
			Transitions: []outTransition{},
			IsStart:     a.HasStart() && a.GetStart() == s,
			IsEnd:       a.IsAccept(s),
		}
		for c := 0; c < a.GetNumSymbols(); c++ {
			if dest := a.Step(s, c); dest != automaton.NoTransition {
				rec.Transitions = append(rec.Transitions, outTransition{
					Input:       a.GetSymbolName(c),
					TargetState: a.GetStateName(dest),
				})
			}
		}
		out[s] = rec
	}
	return out
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode")
	}
	return nil
}

// ExportJSON writes a to path. The document is written to a temporary file next to path and renamed
// into place, so a failed export leaves no partial file behind.
func ExportJSON(a *automaton.Automaton, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(a, w) })
}

// ExportJSONWrapped is ExportJSON for a document wrapped under key.
func ExportJSONWrapped(a *automaton.Automaton, key, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSONWrapped(a, key, w) })
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = write(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return errors.Wrapf(err, "rename %s", path)
	}
	return nil
}
