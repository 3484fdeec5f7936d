package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/careerbot/internal/api"
	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/panel"
)

type quietIndicator struct{}

func (quietIndicator) SetBusy(bool) {}

// flakyChat fails the first chat message and answers the rest.
type flakyChat struct {
	panel.API
	calls []string
}

func (f *flakyChat) Chat(ctx context.Context, id feature.ID, message string) (*api.Reply, error) {
	f.calls = append(f.calls, message)
	if len(f.calls) == 1 {
		return nil, errors.New("connection reset")
	}
	return &api.Reply{ChatHistory: []api.Message{
		{Role: "user", Content: message},
		{Role: "assistant", Content: "noted"},
	}}, nil
}

func lines(in ...string) func() (string, error) {
	return func() (string, error) {
		if len(in) == 0 {
			return "", promptui.ErrEOF
		}
		line := in[0]
		in = in[1:]
		return line, nil
	}
}

func TestChatLoopContinuesAfterFailedMessage(t *testing.T) {
	var out, errOut bytes.Buffer
	view := &terminalView{out: &out, errOut: &errOut, busy: quietIndicator{}}
	client := &flakyChat{}
	ctl := panel.New(feature.InterviewPrep, view, client, panel.Options{})

	if err := chatLoop(context.Background(), ctl, lines("first", "second", "exit", "never")); err != nil {
		t.Fatalf("chatLoop returned %v", err)
	}

	if got := strings.Join(client.calls, ","); got != "first,second" {
		t.Errorf("sent %q, want first,second", got)
	}
	if !strings.Contains(out.String(), "Sorry, there was an error processing your message") {
		t.Errorf("failed message not shown in transcript:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "noted") {
		t.Errorf("second reply missing:\n%s", out.String())
	}
}

func TestChatLoopStopsOnInterrupt(t *testing.T) {
	view := &terminalView{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, busy: quietIndicator{}}
	client := &flakyChat{}
	ctl := panel.New(feature.InterviewPrep, view, client, panel.Options{})

	next := func() (string, error) { return "", promptui.ErrInterrupt }
	if err := chatLoop(context.Background(), ctl, next); err != nil {
		t.Fatalf("chatLoop returned %v", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("unexpected calls %v", client.calls)
	}
}
