// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatch/automaton"
	"github.com/katalvlaran/lvmatch/pattern"
	"github.com/katalvlaran/lvmatch/report"
)

func records(t *testing.T) []report.Record {
	t.Helper()
	a, err := automaton.Compile([]pattern.Pattern{pattern.New(1, "he"), pattern.New(2, "she")})
	require.NoError(t, err)
	var ms automaton.Matches
	a.Scan([]byte("ushe"), &ms)
	require.Len(t, ms, 2)
	out := make([]report.Record, len(ms))
	for i, m := range ms {
		out[i] = report.NewRecord("stdin", a, m)
	}
	return out
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]report.Format{"": report.Text, "TEXT": report.Text, "json": report.JSON, "cbor": report.CBOR} {
		got, err := report.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := report.ParseFormat("xml")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
	assert.Equal(t, "cbor", report.CBOR.String())
}

func TestEncoder_Text(t *testing.T) {
	var buf bytes.Buffer
	enc := report.NewEncoder(&buf, report.Text)
	for _, r := range records(t) {
		require.NoError(t, enc.Encode(r))
	}
	assert.Equal(t, 2, enc.Count())
	assert.Equal(t, "stdin\t0\t2\t1\t4\t\"she\"\nstdin\t0\t1\t2\t4\t\"he\"\n", buf.String())
}

func TestEncoder_JSON(t *testing.T) {
	var buf bytes.Buffer
	enc := report.NewEncoder(&buf, report.JSON)
	for _, r := range records(t) {
		require.NoError(t, enc.Encode(r))
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var got report.Record
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, records(t)[0], got)
	assert.Contains(t, lines[0], `"text":"she"`)
	assert.Contains(t, lines[1], `"text":"he"`)
}

func TestKeyword_JSON(t *testing.T) {
	data, err := json.Marshal(report.Keyword("pass\tword"))
	require.NoError(t, err)
	assert.Equal(t, `"pass\tword"`, string(data))

	var k report.Keyword
	require.NoError(t, json.Unmarshal(data, &k))
	assert.Equal(t, report.Keyword("pass\tword"), k)
	assert.Error(t, json.Unmarshal([]byte(`42`), &k))
}

func TestEncoder_CBOR(t *testing.T) {
	var buf bytes.Buffer
	enc := report.NewEncoder(&buf, report.CBOR)
	want := records(t)
	for _, r := range want {
		require.NoError(t, enc.Encode(r))
	}
	got, err := report.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Deterministic encoding: same records, same bytes.
	var a, b bytes.Buffer
	require.NoError(t, report.NewEncoder(&a, report.CBOR).Encode(want[0]))
	require.NoError(t, report.NewEncoder(&b, report.CBOR).Encode(want[0]))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestDecode_RejectsIndefiniteLength(t *testing.T) {
	// {_ "end": 1}
	data := []byte{0xbf, 0x63, 'e', 'n', 'd', 0x01, 0xff}
	_, err := report.Decode(bytes.NewReader(data))
	assert.ErrorContains(t, err, "report: decoding cbor record")
}
