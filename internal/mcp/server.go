package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/careerbot/internal/api"
	"github.com/ziadkadry99/careerbot/internal/feature"
	"github.com/ziadkadry99/careerbot/internal/format"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Upstream is the part of the career-advice server the tools call.
type Upstream interface {
	Ask(ctx context.Context, id feature.ID, input string) (*api.Reply, error)
	Careers(ctx context.Context, interest string) (*api.Reply, error)
}

// Server wraps an MCP server that exposes the formatter, the form
// validators and the advice routes as tools.
type Server struct {
	formatter *format.Formatter
	upstream  Upstream
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server. upstream may be nil, in which case
// the tools that call the career-advice server report an error.
func NewServer(formatter *format.Formatter, upstream Upstream) *Server {
	if formatter == nil {
		formatter = &format.Formatter{}
	}
	s := &Server{
		formatter: formatter,
		upstream:  upstream,
	}

	s.mcp = server.NewMCPServer(
		"careerbot",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(formatResponseTool, s.handleFormatResponse)
	s.mcp.AddTool(validateFormTool, s.handleValidateForm)
	s.mcp.AddTool(askFeatureTool, s.handleAskFeature)
	s.mcp.AddTool(suggestCareersTool, s.handleSuggestCareers)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
