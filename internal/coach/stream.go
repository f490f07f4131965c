package coach

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	dataPrefix = "data:"
	doneMarker = "[DONE]"
)

// Suggestion is a quest proposed by the coach.
type Suggestion struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	XP          int    `json:"xp"`
	Description string `json:"description"`
}

type Subtask struct {
	Name string `json:"name"`
}

// Result is everything a finished stream produced.
type Result struct {
	Text        string
	Suggestions []Suggestion
	Subtasks    []Subtask
	// Dropped counts fragments and tool payloads that never decoded.
	Dropped int
}

type fragment struct {
	Choices []struct {
		Delta struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Index    int `json:"index"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"delta"`
	} `json:"choices"`
}

type toolPayload struct {
	Suggestions []Suggestion `json:"suggestions"`
	Subtasks    []Subtask    `json:"subtasks"`
}

// Decoder turns raw stream bytes into text deltas and, at the end, structured results.
// Feed may be called with arbitrary chunk boundaries.
type Decoder struct {
	log *zap.Logger

	buf     []byte // bytes after the last newline
	pending string // data payload that failed to decode, waiting for its continuation
	done    bool

	text    strings.Builder
	tools   map[int]*strings.Builder
	dropped int
}

func NewDecoder(log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{log: log, tools: map[int]*strings.Builder{}}
}

// Done reports whether the terminating [DONE] line was seen.
func (d *Decoder) Done() bool { return d.done }

// Feed consumes a chunk and returns the text deltas completed by it, in order.
func (d *Decoder) Feed(chunk []byte) []string {
	if d.done {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	var deltas []string
	for !d.done {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(d.buf[:i]), "\r")
		d.buf = d.buf[i+1:]
		deltas = append(deltas, d.line(line)...)
	}
	return deltas
}

func (d *Decoder) line(line string) []string {
	if line == "" || strings.HasPrefix(line, ":") {
		return nil
	}

	payload, isData := strings.CutPrefix(line, dataPrefix)
	if !isData {
		if d.pending == "" {
			return nil
		}
		// Continuation of a fragment that was split mid-JSON.
		joined := d.pending + line
		d.pending = ""
		return d.decode(joined)
	}

	if d.pending != "" {
		d.drop("fragment superseded before it decoded", d.pending)
		d.pending = ""
	}
	payload = strings.TrimPrefix(payload, " ")
	if payload == doneMarker {
		d.done = true
		return nil
	}
	return d.decode(payload)
}

// decode applies one payload, or keeps it pending if it does not parse yet.
func (d *Decoder) decode(payload string) []string {
	var f fragment
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		d.pending = payload
		return nil
	}
	if len(f.Choices) == 0 {
		return nil
	}
	delta := f.Choices[0].Delta
	for _, tc := range delta.ToolCalls {
		b, ok := d.tools[tc.Index]
		if !ok {
			b = &strings.Builder{}
			d.tools[tc.Index] = b
		}
		b.WriteString(tc.Function.Arguments)
	}
	if delta.Content == "" {
		return nil
	}
	d.text.WriteString(delta.Content)
	return []string{delta.Content}
}

func (d *Decoder) drop(reason, payload string) {
	d.dropped++
	if len(payload) > 120 {
		payload = payload[:120] + "..."
	}
	d.log.Warn("coach stream: "+reason, zap.String("payload", payload))
}

// Finish flushes any trailing bytes and decodes the accumulated tool calls.
// Whatever still fails to decode is dropped and logged.
func (d *Decoder) Finish() Result {
	if !d.done {
		if tail := strings.TrimRight(string(d.buf), "\r"); tail != "" {
			d.line(tail)
		}
	}
	d.buf = nil
	if d.pending != "" {
		d.drop("fragment never decoded", d.pending)
		d.pending = ""
	}

	res := Result{Text: d.text.String()}

	idx := make([]int, 0, len(d.tools))
	for i := range d.tools {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		args := d.tools[i].String()
		var p toolPayload
		if err := json.Unmarshal([]byte(args), &p); err != nil {
			d.drop("tool call arguments did not decode", args)
			continue
		}
		for _, s := range p.Suggestions {
			if strings.TrimSpace(s.Name) == "" {
				d.drop("suggestion without a name", "")
				continue
			}
			res.Suggestions = append(res.Suggestions, s)
		}
		for _, s := range p.Subtasks {
			if strings.TrimSpace(s.Name) == "" {
				d.drop("subtask without a name", "")
				continue
			}
			res.Subtasks = append(res.Subtasks, s)
		}
	}

	res.Dropped = d.dropped
	return res
}
