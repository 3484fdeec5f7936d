package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/forms"
	"github.com/ziadkadry99/careerbot/internal/panel"
)

// handleFormatResponse formats raw text for a feature.
func (s *Server) handleFormatResponse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	n := request.GetInt("feature", 0)
	id := feature.ID(n)
	if n != 0 && !id.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("invalid feature %d: must be 1-5", n)), nil
	}

	return mcp.NewToolResultText(s.formatter.Format(text, id)), nil
}

// handleValidateForm runs a form's validation chain.
func (s *Server) handleValidateForm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("form")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: form"), nil
	}

	raw, ok := request.GetArguments()["fields"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("missing required parameter: fields"), nil
	}
	values := url.Values{}
	for k, v := range raw {
		values.Set(k, fmt.Sprint(v))
	}

	f, err := forms.FromValues(name, values)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := f.Validate(); err != nil {
		var fe *forms.FieldError
		if !errors.As(err, &fe) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, _ := json.Marshal(fe)
		return mcp.NewToolResultText(string(out)), nil
	}
	return mcp.NewToolResultText(`{"ok":true}`), nil
}

// handleAskFeature calls a feature's advice route and formats the reply.
func (s *Server) handleAskFeature(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.upstream == nil {
		return mcp.NewToolResultError("no career-advice server configured; set api.base_url"), nil
	}
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: input"), nil
	}
	id := feature.ID(request.GetInt("feature", 0))
	if !id.Valid() {
		return mcp.NewToolResultError("invalid feature: must be 1-5"), nil
	}
	if strings.TrimSpace(input) == "" {
		return mcp.NewToolResultError(id.Info().EmptyInput), nil
	}

	reply, err := s.upstream.Ask(ctx, id, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", id.Info().FailMessage, err)), nil
	}
	return mcp.NewToolResultText(s.formatter.Format(reply.Text(id.Info().ReplyField), id)), nil
}

// handleSuggestCareers lists careers for an interest, one per line.
func (s *Server) handleSuggestCareers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.upstream == nil {
		return mcp.NewToolResultError("no career-advice server configured; set api.base_url"), nil
	}
	interest, err := request.RequireString("interest")
	if err != nil || strings.TrimSpace(interest) == "" {
		return mcp.NewToolResultError("missing required parameter: interest"), nil
	}

	reply, err := s.upstream.Careers(ctx, interest)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching career suggestions: %v", err)), nil
	}
	items := panel.Suggestions(reply.Insights)
	if len(items) == 0 {
		return mcp.NewToolResultText("No suggestions returned."), nil
	}
	return mcp.NewToolResultText(strings.Join(items, "\n")), nil
}
