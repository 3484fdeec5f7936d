package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf}
	r.Start(2)
	r.Update(1, "a.txt")
	r.Update(2, "b.txt")
	r.Finish()

	want := "Formatting 2 files\n[1/2] a.txt\n[2/2] b.txt\nFormatting complete\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLineIndicator(t *testing.T) {
	var buf bytes.Buffer
	l := &LineIndicator{w: &buf, label: "Asking"}
	l.SetBusy(true)
	l.SetBusy(true)
	l.SetBusy(false)
	l.SetBusy(false)

	want := "Asking...\nAsking done\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNewIndicatorInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewIndicator("x").(*LineIndicator); !ok {
		t.Error("expected LineIndicator in CI")
	}
	if _, ok := NewReporter().(*CIReporter); !ok {
		t.Error("expected CIReporter in CI")
	}
}

func TestSpinnerStartStop(t *testing.T) {
	s := &Spinner{label: "Working"}
	s.SetBusy(false)
	s.SetBusy(true)
	s.SetBusy(true)
	s.SetBusy(false)
	if s.bar != nil {
		t.Error("spinner should be stopped")
	}
}
