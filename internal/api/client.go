// Package api is a typed client for the career-advice server's routes.
// Every route takes a form-encoded POST and answers JSON; the login
// session travels in a cookie jar.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qiniu/x/xlog"

	"github.com/ziadkadry99/careerbot/internal/feature"
)

// SessionCookieName is the cookie the server keeps its login session in.
const SessionCookieName = "session"

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// SessionCookie seeds the jar with an existing login session.
	SessionCookie string
	UserAgent     string
}

// Client talks to one career-advice server.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
}

// New creates a client for opts.BaseURL.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must be http or https", opts.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	if opts.SessionCookie != "" {
		jar.SetCookies(base, []*http.Cookie{{Name: SessionCookieName, Value: opts.SessionCookie, Path: "/"}})
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "careerbot"
	}
	return &Client{
		base:      base,
		http:      &http.Client{Jar: jar, Timeout: opts.Timeout},
		userAgent: ua,
	}, nil
}

// BaseURL returns the server root.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// Resolve returns the absolute URL of path on the server.
func (c *Client) Resolve(path string) string {
	return c.base.String() + path
}

// Upload is a file attached to a multipart request.
type Upload struct {
	Name string
	Body io.Reader
}

// Ask calls the feature's structured-advice route with the user's input.
func (c *Client) Ask(ctx context.Context, id feature.ID, input string) (*Reply, error) {
	info := id.Info()
	if info.Endpoint == "" {
		return nil, fmt.Errorf("unknown feature %d", id)
	}
	form := url.Values{}
	form.Set(info.InputField, input)
	return c.postForm(ctx, info.Endpoint, form, info.ReplyField)
}

// AskResume posts resume text and, when file is non-nil, the uploaded file.
func (c *Client) AskResume(ctx context.Context, text string, file *Upload) (*Reply, error) {
	info := feature.ResumeReview.Info()
	if file == nil {
		return c.Ask(ctx, feature.ResumeReview, text)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if text != "" {
		if err := mw.WriteField(info.InputField, text); err != nil {
			return nil, fmt.Errorf("writing resume text: %w", err)
		}
	}
	part, err := mw.CreateFormFile("resume_file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("creating resume part: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return nil, fmt.Errorf("copying resume file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	return c.post(ctx, info.Endpoint, mw.FormDataContentType(), &body, info.ReplyField)
}

// Careers asks for a short comma-separated list of career titles.
func (c *Client) Careers(ctx context.Context, interest string) (*Reply, error) {
	form := url.Values{}
	form.Set("interest", interest)
	return c.postForm(ctx, "/get_careers", form, "insights")
}

// Chat sends a conversational message and returns the full history.
func (c *Client) Chat(ctx context.Context, id feature.ID, message string) (*Reply, error) {
	form := url.Values{}
	form.Set("feature_id", id.String())
	form.Set("message", message)
	return c.postForm(ctx, "/chat", form, "")
}

// ClearChat empties the feature's chat history.
func (c *Client) ClearChat(ctx context.Context, id feature.ID) (*Reply, error) {
	form := url.Values{}
	form.Set("feature_id", id.String())
	return c.postForm(ctx, "/clear_chat", form, "")
}

// History returns the logged-in user's chat history for a feature.
func (c *Client) History(ctx context.Context, id feature.ID) (*Reply, error) {
	form := url.Values{}
	form.Set("feature_id", id.String())
	return c.postForm(ctx, "/get_user_chat_history", form, "")
}

// SaveResponse stores a response under the logged-in user's account.
func (c *Client) SaveResponse(ctx context.Context, id feature.ID, title, content string) (*Reply, error) {
	form := url.Values{}
	form.Set("feature_id", id.String())
	form.Set("title", title)
	form.Set("response", content)
	return c.postForm(ctx, "/save_response", form, "")
}

// DeleteSavedResponse removes a saved response by its server ID.
func (c *Client) DeleteSavedResponse(ctx context.Context, responseID int64) (*Reply, error) {
	return c.post(ctx, "/delete_saved_response/"+strconv.FormatInt(responseID, 10), "", nil, "")
}

// ProbeSession reports whether the jar holds a logged-in session. Login
// protected routes redirect anonymous callers to the login page instead of
// answering JSON.
func (c *Client) ProbeSession(ctx context.Context) (bool, error) {
	probe := *c.http
	probe.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	form := url.Values{}
	form.Set("feature_id", feature.CareerPaths.String())
	req, xl, err := c.newRequest(ctx, "/get_user_chat_history", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	resp, err := probe.Do(req)
	if err != nil {
		return false, fmt.Errorf("probing session: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	loggedIn := resp.StatusCode == http.StatusOK &&
		strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json")
	xl.Debugf("session probe: status=%d logged_in=%v", resp.StatusCode, loggedIn)
	return loggedIn, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, field string) (*Reply, error) {
	return c.post(ctx, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), field)
}

func (c *Client) newRequest(ctx context.Context, path, contentType string, body io.Reader) (*http.Request, *xlog.Logger, error) {
	reqID := uuid.New().String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Resolve(path), body)
	if err != nil {
		return nil, nil, fmt.Errorf("building %s request: %w", path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)
	return req, xlog.New(reqID), nil
}

// post sends one request and decodes the reply. A non-empty field names the
// reply field the caller is about to render.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, field string) (*Reply, error) {
	req, xl, err := c.newRequest(ctx, path, contentType, body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		xl.Warnf("POST %s failed: %v", path, err)
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	xl.Debugf("POST %s -> %d (%d bytes, %s)", path, resp.StatusCode, len(data), time.Since(start).Round(time.Millisecond))

	var reply Reply
	decodeErr := json.Unmarshal(data, &reply)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode, Path: path}
		if decodeErr == nil {
			se.Message = firstNonEmpty(reply.Error, reply.Message, reply.Feedback)
		}
		return nil, se
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, decodeErr)
	}
	// A missing field renders empty; it is only logged.
	if field != "" && reply.Text(field) == "" {
		xl.Warnf("%s: response has no %q field", path, field)
	}
	return &reply, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsStatus reports whether err is a *StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
