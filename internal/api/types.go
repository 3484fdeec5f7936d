package api

import "fmt"

// Message is one chat history entry as the server returns it.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Reply is the union of every JSON shape the server answers with. Which
// fields are set depends on the route.
type Reply struct {
	Insights    string    `json:"insights,omitempty"`
	Advice      string    `json:"advice,omitempty"`
	Feedback    string    `json:"feedback,omitempty"`
	Tips        string    `json:"tips,omitempty"`
	Response    string    `json:"response,omitempty"`
	ChatHistory []Message `json:"chat_history,omitempty"`
	Status      string    `json:"status,omitempty"`
	ID          int64     `json:"id,omitempty"`
	Message     string    `json:"message,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Text returns the named text field ("insights", "advice", "feedback",
// "tips" or "response"). Unknown names yield "".
func (r *Reply) Text(field string) string {
	if r == nil {
		return ""
	}
	switch field {
	case "insights":
		return r.Insights
	case "advice":
		return r.Advice
	case "feedback":
		return r.Feedback
	case "tips":
		return r.Tips
	case "response":
		return r.Response
	default:
		return ""
	}
}

// OK reports whether the server acknowledged a mutation.
func (r *Reply) OK() bool {
	return r != nil && r.Status == "success"
}

// StatusError is returned for non-2xx answers.
type StatusError struct {
	Code    int
	Path    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: server returned %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: server returned %d", e.Path, e.Code)
}
