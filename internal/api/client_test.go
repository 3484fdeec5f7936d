package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/qiniu/x/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/careerbot/internal/feature"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: "ftp://example.com"})
	assert.Error(t, err)

	c, err := New(Options{BaseURL: "http://localhost:5000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/login", c.Resolve("/login"))
}

func TestAskPostsFeatureField(t *testing.T) {
	for _, id := range feature.All {
		info := id.Info()
		t.Run(info.Name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, info.Endpoint, r.URL.Path)
				assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "input text", r.PostForm.Get(info.InputField))
				writeJSON(w, http.StatusOK, map[string]string{info.ReplyField: "reply for " + info.Name})
			}, Options{})

			reply, err := c.Ask(t.Context(), id, "input text")
			require.NoError(t, err)
			assert.Equal(t, "reply for "+info.Name, reply.Text(info.ReplyField))
		})
	}
}

func TestAskUnknownFeature(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, Options{})
	_, err := c.Ask(t.Context(), feature.ID(9), "x")
	assert.Error(t, err)
}

func TestAskResumeMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_resume_feedback", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "pasted", r.FormValue("resume_text"))
		f, hdr, err := r.FormFile("resume_file")
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "cv.txt", hdr.Filename)
		assert.Equal(t, "file body", string(body))
		writeJSON(w, http.StatusOK, map[string]string{"feedback": "ok"})
	}, Options{})

	reply, err := c.AskResume(t.Context(), "pasted", &Upload{Name: "cv.txt", Body: strings.NewReader("file body")})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Feedback)
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Interest is required"})
	}, Options{})

	_, err := c.Careers(t.Context(), "")
	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "Interest is required", se.Message)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestNonJSONBodyIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login</html>"))
	}, Options{})
	_, err := c.History(t.Context(), feature.CareerPaths)
	assert.Error(t, err)
}

func TestChatAndClear(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "3", r.PostForm.Get("feature_id"))
		switch r.URL.Path {
		case "/chat":
			assert.Equal(t, "hello", r.PostForm.Get("message"))
			writeJSON(w, http.StatusOK, Reply{
				Response: "hi",
				ChatHistory: []Message{
					{Role: "user", Content: "hello"},
					{Role: "assistant", Content: "hi"},
				},
			})
		case "/clear_chat":
			writeJSON(w, http.StatusOK, Reply{Status: "success"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, Options{})

	reply, err := c.Chat(t.Context(), feature.MarketInsight, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi", reply.Response)
	require.Len(t, reply.ChatHistory, 2)
	assert.Equal(t, "assistant", reply.ChatHistory[1].Role)

	reply, err = c.ClearChat(t.Context(), feature.MarketInsight)
	require.NoError(t, err)
	assert.True(t, reply.OK())
}

func TestSaveAndDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/save_response":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "My title", r.PostForm.Get("title"))
			assert.Equal(t, "<p>x</p>", r.PostForm.Get("response"))
			assert.Equal(t, "2", r.PostForm.Get("feature_id"))
			writeJSON(w, http.StatusOK, Reply{Status: "success", ID: 42})
		case "/delete_saved_response/42":
			writeJSON(w, http.StatusOK, Reply{Status: "success"})
		default:
			writeJSON(w, http.StatusNotFound, Reply{Status: "error", Message: "Response not found"})
		}
	}, Options{})

	reply, err := c.SaveResponse(t.Context(), feature.ResumeReview, "My title", "<p>x</p>")
	require.NoError(t, err)
	assert.Equal(t, int64(42), reply.ID)

	reply, err = c.DeleteSavedResponse(t.Context(), 42)
	require.NoError(t, err)
	assert.True(t, reply.OK())

	_, err = c.DeleteSavedResponse(t.Context(), 7)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestSessionCookieIsSent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(SessionCookieName)
		if err != nil || ck.Value != "abc" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		writeJSON(w, http.StatusOK, Reply{ChatHistory: []Message{}})
	}, Options{SessionCookie: "abc"})

	ok, err := c.ProbeSession(t.Context())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProbeSessionAnonymous(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<form></form>"))
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	}, Options{})

	ok, err := c.ProbeSession(t.Context())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Options{Timeout: 50 * time.Millisecond})

	_, err := c.Ask(t.Context(), feature.CareerPaths, "x")
	assert.Error(t, err)
}

func TestReplyText(t *testing.T) {
	r := &Reply{Insights: "i", Advice: "a", Feedback: "f", Tips: "t", Response: "r"}
	assert.Equal(t, "i", r.Text("insights"))
	assert.Equal(t, "a", r.Text("advice"))
	assert.Equal(t, "f", r.Text("feedback"))
	assert.Equal(t, "t", r.Text("tips"))
	assert.Equal(t, "r", r.Text("response"))
	assert.Equal(t, "", r.Text("other"))
	var nilReply *Reply
	assert.Equal(t, "", nilReply.Text("advice"))
}

func TestMissingFieldWarningCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	var reqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reqID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	}, Options{})

	reply, err := c.Careers(t.Context(), "biology")
	require.NoError(t, err)
	assert.Equal(t, "", reply.Insights)

	require.NotEmpty(t, reqID)
	out := buf.String()
	assert.Contains(t, out, "["+reqID+"]")
	assert.Contains(t, out, `/get_careers: response has no "insights" field`)
}

func TestNoWarningWhenFieldPresent(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"insights": "Nurse, Teacher"})
	}, Options{})

	_, err := c.Careers(t.Context(), "biology")
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "response has no")
}
