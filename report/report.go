// SPDX-License-Identifier: MIT

// Package report encodes scan matches for output: tab-separated text,
// JSON lines, or a CBOR sequence.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/katalvlaran/lvmatch/automaton"
	"github.com/katalvlaran/lvmatch/pattern"
)

// ErrUnknownFormat is returned by ParseFormat for an unsupported name.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects an encoding.
type Format uint8

const (
	// Text writes one tab-separated line per record.
	Text Format = iota
	// JSON writes one JSON object per line.
	JSON
	// CBOR writes a sequence of CBOR maps (RFC 8742).
	CBOR
)

// String returns the format name accepted by ParseFormat.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case CBOR:
		return "cbor"
	default:
		return "text"
	}
}

// ParseFormat maps "text", "json" or "cbor" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "cbor":
		return CBOR, nil
	}
	return Text, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Record is one reported match.
type Record struct {
	Source  string       `json:"source" cbor:"source"`
	Type    pattern.Type `json:"type" cbor:"type"`
	Pattern pattern.ID   `json:"pattern" cbor:"pattern"`
	Start   int64        `json:"start" cbor:"start"`
	End     int64        `json:"end" cbor:"end"`
	Text    Keyword      `json:"text,omitempty" cbor:"text,omitempty"`
}

// Keyword is the matched pattern's bytes. CBOR carries them as a byte
// string; JSON writes them as a plain string, so bytes that are not valid
// UTF-8 become U+FFFD in JSON output.
type Keyword []byte

// MarshalJSON encodes k as a JSON string.
func (k Keyword) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

// UnmarshalJSON decodes a JSON string into k.
func (k *Keyword) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = Keyword(s)
	return nil
}

// NewRecord builds a Record for m, copying the matched pattern bytes from a.
func NewRecord(source string, a *automaton.Automaton, m automaton.Match) Record {
	return Record{
		Source:  source,
		Type:    a.Type(),
		Pattern: m.Pattern,
		Start:   m.Start,
		End:     m.End,
		Text:    a.Patterns()[m.Index].Bytes,
	}
}

// encMode uses Core Deterministic Encoding so equal records encode to equal bytes.
var encMode cbor.EncMode

// decMode rejects duplicate map keys and indefinite-length items, neither
// of which encMode ever writes.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic("report: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encoder writes records in one format.
type Encoder struct {
	w      io.Writer
	format Format
	json   *json.Encoder
	cbor   *cbor.Encoder
	count  int
}

// NewEncoder returns an Encoder writing f to w.
func NewEncoder(w io.Writer, f Format) *Encoder {
	e := &Encoder{w: w, format: f}
	switch f {
	case JSON:
		e.json = json.NewEncoder(w)
	case CBOR:
		e.cbor = encMode.NewEncoder(w)
	}
	return e
}

// Encode writes one record.
func (e *Encoder) Encode(r Record) error {
	var err error
	switch e.format {
	case JSON:
		err = e.json.Encode(r)
	case CBOR:
		err = e.cbor.Encode(r)
	default:
		_, err = fmt.Fprintf(e.w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.Source, r.Type, r.Pattern, r.Start, r.End, strconv.Quote(string(r.Text)))
	}
	if err != nil {
		return fmt.Errorf("report: encoding %s record: %w", e.format, err)
	}
	e.count++
	return nil
}

// Count returns the number of records written.
func (e *Encoder) Count() int { return e.count }

// Decode reads a CBOR sequence written by an Encoder in CBOR format.
func Decode(r io.Reader) ([]Record, error) {
	dec := decMode.NewDecoder(r)
	var out []Record
	for {
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("report: decoding cbor record: %w", err)
		}
		out = append(out, rec)
	}
}
