package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qiniu/x/log"

	"github.com/ziadkadry99/careerbot/internal/config"
	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/format"
	"github.com/ziadkadry99/careerbot/internal/panel"
)

func TestParseFeature(t *testing.T) {
	id, err := parseFeature("3")
	if err != nil {
		t.Fatal(err)
	}
	if id != feature.MarketInsight {
		t.Errorf("parseFeature(3) = %v", id)
	}

	for _, bad := range []string{"0", "6", "x", ""} {
		if _, err := parseFeature(bad); err == nil {
			t.Errorf("parseFeature(%q) should fail", bad)
		}
	}
}

func TestReadInputJoinsArgs(t *testing.T) {
	got, err := readInput([]string{"data", "science"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "data science" {
		t.Errorf("readInput = %q", got)
	}
}

func TestLogLevel(t *testing.T) {
	tests := map[config.LogLevel]int{
		config.LogDebug: log.Ldebug,
		config.LogInfo:  log.Linfo,
		config.LogWarn:  log.Lwarn,
		config.LogError: log.Lerror,
		"":              log.Linfo,
	}
	for in, want := range tests {
		if got := logLevel(in); got != want {
			t.Errorf("logLevel(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestTerminalView(t *testing.T) {
	var out, errOut bytes.Buffer
	v := &terminalView{out: &out, errOut: &errOut}

	v.Alert(panel.Warning, "Please enter your interests first")
	v.ShowResult(panel.Result{HTML: "<p>hi</p>", Raw: "hi"})
	v.ShowSuggestions([]string{"Data Scientist", "Analyst"})
	v.ShowTranscript(nil)
	v.AppendEntry(panel.Entry{Role: "user", HTML: "hello", Timestamp: "09:05 AM"})

	if got := errOut.String(); got != "[warning] Please enter your interests first\n" {
		t.Errorf("alert output = %q", got)
	}
	want := "<p>hi</p>\n- Data Scientist\n- Analyst\n(no messages)\n[user 09:05 AM] hello\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	out.Reset()
	v.raw = true
	v.ShowResult(panel.Result{HTML: "<p>hi</p>", Raw: "hi"})
	if got := out.String(); got != "hi\n" {
		t.Errorf("raw output = %q", got)
	}
}

func TestFormatGlobWritesSiblings(t *testing.T) {
	t.Setenv("CI", "1")
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll(filepath.Join("replies", "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	text := "1. Network\n\n- polish your resume"
	if err := os.WriteFile(filepath.Join("replies", "a", "one.txt"), []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("replies", "two.md"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := formatGlob(&format.Formatter{}, 0, "replies/**/*.txt"); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(filepath.Join("replies", "a", "one.txt.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != format.Generic(text) {
		t.Errorf("formatted = %q, want %q", got, format.Generic(text))
	}
	if _, err := os.Stat(filepath.Join("replies", "two.md.html")); !os.IsNotExist(err) {
		t.Error("unmatched file should not be formatted")
	}

	if err := formatGlob(&format.Formatter{}, 0, "nothing/*.txt"); err == nil || !strings.Contains(err.Error(), "no files") {
		t.Errorf("empty glob error = %v", err)
	}
}
