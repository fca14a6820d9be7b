package traces

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/logging"
)

// SchemaVersion is the version of the JSONL meta+trace envelope.
// Increment when field names or types change incompatibly.
const SchemaVersion = 1

// MaxLineBytes caps one JSONL line; a 1M-sample trace is roughly 20MB of JSON.
const MaxLineBytes = 256 * 1024 * 1024

var log = logging.For("traces")

// Meta is written in front of every trace line.
type Meta struct {
	SchemaVersion int     `json:"schema_version"`
	TimestampUTC  string  `json:"timestamp_utc,omitempty"`
	RunTag        string  `json:"run_tag,omitempty"`
	Samples       int     `json:"samples,omitempty"`
	ADCFreqHz     float64 `json:"adc_freq_hz,omitempty"`
}

// Envelope is one line of a capture file.
type Envelope struct {
	Meta  *Meta  `json:"meta"`
	Trace *Entry `json:"trace"`
}

// LoadOptions controls which lines of a capture file are kept.
type LoadOptions struct {
	// MaxTraces keeps only the most recent N traces (0 keeps all).
	MaxTraces int
	// LabelFilter keeps traces whose label contains it (case-insensitive).
	LabelFilter string
	// Sheet names the workbook sheet to read; xlsx only, empty means the first.
	Sheet string
}

// LoadJSONL reads a capture file written by WriteJSONL.
// Lines with another schema version, broken JSON or no trace are skipped.
func LoadJSONL(path string, opts LoadOptions) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	c, err := ReadJSONL(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ReadJSONL is LoadJSONL over an arbitrary reader.
func ReadJSONL(r io.Reader, opts LoadOptions) (*Capture, error) {
	defer logging.TimeTrack(time.Now(), "read capture")
	reader := bufio.NewReader(r)
	c := &Capture{}
	haveMeta := false
	skipped := 0
	lineNo := 0
readLoop:
	for {
		var line []byte
		for {
			part, rerr := reader.ReadBytes('\n')
			if len(part) > 0 {
				if len(line)+len(part) > MaxLineBytes {
					return nil, fmt.Errorf("line %d too large: exceeds limit of %d bytes", lineNo+1, MaxLineBytes)
				}
				line = append(line, part...)
			}
			if rerr == nil {
				break
			}
			if errors.Is(rerr, io.EOF) {
				if len(line) == 0 {
					break readLoop
				}
				break
			}
			return nil, fmt.Errorf("read line %d: %w", lineNo+1, rerr)
		}
		lineNo++
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil || env.Meta == nil || env.Trace == nil {
			skipped++
			continue
		}
		if env.Meta.SchemaVersion != SchemaVersion {
			skipped++
			continue
		}
		if !haveMeta {
			c.Scope = ScopeConfig{Samples: env.Meta.Samples, ADCFreqHz: env.Meta.ADCFreqHz}
			c.RunTag = env.Meta.RunTag
			haveMeta = true
		}
		c.Set = append(c.Set, *env.Trace)
	}
	if skipped > 0 {
		log.Warnf("skipped %d of %d lines (schema_version!=%d or malformed)", skipped, lineNo, SchemaVersion)
	}
	c.Set = c.Set.Filter(opts.LabelFilter)
	if opts.MaxTraces > 0 && len(c.Set) > opts.MaxTraces {
		c.Set = c.Set[len(c.Set)-opts.MaxTraces:]
	}
	if c.Scope.Samples == 0 && len(c.Set) > 0 {
		c.Scope.Samples = len(c.Set[0].Samples)
	}
	log.Debugf("loaded %d traces (run_tag=%q samples=%d adc_freq=%gHz)", len(c.Set), c.RunTag, c.Scope.Samples, c.Scope.ADCFreqHz)
	return c, nil
}

// WriteJSONL writes c as one envelope per trace.
func WriteJSONL(path string, c *Capture) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeJSONL(f, c); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// EncodeJSONL is WriteJSONL over an arbitrary writer.
func EncodeJSONL(w io.Writer, c *Capture) error {
	if c == nil {
		return invalidf("nil capture")
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	ts := time.Now().UTC().Format(time.RFC3339Nano)
	for i := range c.Set {
		env := Envelope{
			Meta: &Meta{
				SchemaVersion: SchemaVersion,
				TimestampUTC:  ts,
				RunTag:        c.RunTag,
				Samples:       c.Scope.Samples,
				ADCFreqHz:     c.Scope.ADCFreqHz,
			},
			Trace: &c.Set[i],
		}
		if err := enc.Encode(&env); err != nil {
			return err
		}
	}
	return bw.Flush()
}
