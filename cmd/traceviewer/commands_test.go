package main

import (
	"testing"

	"github.com/kballard/go-shellquote"

	"github.com/MXCR-cpu/chipwhisperer-jupyter-ectf/src/traces"
)

func TestBuildRenderCommandEmptyFile(t *testing.T) {
	if got := buildRenderCommand(renderCommand{}); got != "" {
		t.Fatalf("expected empty command, got %q", got)
	}
}

func TestBuildRenderCommandRoundTrips(t *testing.T) {
	cmd := buildRenderCommand(renderCommand{
		File:     "/data/aes capture's.jsonl",
		Mode:     "traces",
		TimeAxis: true,
		Filter:   "round 1",
		Max:      50,
		Hide:     []int{0, 3},
	})
	args, err := shellquote.Split(cmd)
	if err != nil {
		t.Fatalf("split %q: %v", cmd, err)
	}
	want := []string{"tracerender", "-traces", "/data/aes capture's.jsonl", "-time-axis", "-filter", "round 1", "-max", "50", "-hide-index", "0,3"}
	if len(args) != len(want) {
		t.Fatalf("args %q want %q", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d = %q want %q", i, args[i], want[i])
		}
	}
}

func TestBuildRenderCommandFFT(t *testing.T) {
	cmd := buildRenderCommand(renderCommand{File: "c.jsonl", Mode: "fft", Label: "trace 3", TimeAxis: true, Hide: []int{1}})
	args, err := shellquote.Split(cmd)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	want := []string{"tracerender", "-traces", "c.jsonl", "-mode", "fft", "-label", "trace 3"}
	if len(args) != len(want) {
		t.Fatalf("args %q want %q", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d = %q want %q", i, args[i], want[i])
		}
	}
}

func TestHiddenEntriesFollowToggles(t *testing.T) {
	set := traces.Set{
		{Samples: traces.Trace{1, 2}, Label: "A"},
		{Samples: traces.Trace{2, 1}, Label: "A"},
		{Samples: traces.Trace{0, 0}, Label: "B,C"},
	}
	fig := renderedFigure(t, set, 2)
	if hiddenEntries(fig) != nil {
		t.Fatalf("nothing hidden yet")
	}
	for _, i := range []int{1, 2} {
		if _, err := fig.PickIndex(i); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
	}
	got := hiddenEntries(fig)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("hidden %v", got)
	}
	cmd := buildRenderCommand(renderCommand{File: "c.jsonl", Hide: got})
	args, err := shellquote.Split(cmd)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if args[len(args)-2] != "-hide-index" || args[len(args)-1] != "1,2" {
		t.Fatalf("replay args %q", args)
	}
	if hiddenEntries(nil) != nil {
		t.Fatalf("nil figure")
	}
}

func TestSpectrumOptionIndex(t *testing.T) {
	if spectrumOptionIndex(spectrumOption(7, "key 0x2b")) != 7 {
		t.Fatalf("round trip failed")
	}
	if spectrumOption(0, "") != "0: (unlabelled)" {
		t.Fatalf("unlabelled option %q", spectrumOption(0, ""))
	}
	if spectrumOptionIndex("garbage") != 0 || spectrumOptionIndex("-3: x") != 0 {
		t.Fatalf("bad options must fall back to 0")
	}
}
