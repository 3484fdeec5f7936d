package mcp

import "github.com/mark3labs/mcp-go/mcp"

// formatResponseTool defines the format_response MCP tool.
var formatResponseTool = mcp.NewTool("format_response",
	mcp.WithDescription("Format a raw career-advice response into the HTML fragment a feature panel shows."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Raw response text"),
	),
	mcp.WithNumber("feature",
		mcp.Description("Feature 1-5: career paths, resume feedback, market insights, college advice, interview tips. Omit for generic formatting."),
	),
)

// validateFormTool defines the validate_form MCP tool.
var validateFormTool = mcp.NewTool("validate_form",
	mcp.WithDescription("Validate a login, registration or profile form. Returns the first failing field and its message, or ok."),
	mcp.WithString("form",
		mcp.Required(),
		mcp.Description("Which form to validate"),
		mcp.Enum("login", "register", "profile"),
	),
	mcp.WithObject("fields",
		mcp.Required(),
		mcp.Description("Form field values keyed by field name, e.g. {\"email\": \"a@b.co\", \"password\": \"x\"}"),
	),
)

// askFeatureTool defines the ask_feature MCP tool.
var askFeatureTool = mcp.NewTool("ask_feature",
	mcp.WithDescription("Ask the career-advice server for one feature's structured advice and return it formatted."),
	mcp.WithNumber("feature",
		mcp.Required(),
		mcp.Description("Feature 1-5"),
	),
	mcp.WithString("input",
		mcp.Required(),
		mcp.Description("The user's interest, resume text, topic, major or role"),
	),
)

// suggestCareersTool defines the suggest_careers MCP tool.
var suggestCareersTool = mcp.NewTool("suggest_careers",
	mcp.WithDescription("List careers that match an interest."),
	mcp.WithString("interest",
		mcp.Required(),
		mcp.Description("What the user is interested in"),
	),
)
