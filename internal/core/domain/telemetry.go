package domain

// Span attribute keys shared by the installers and the span renderers.
const (
	// SpanAttrGroup marks a span as a foldable log group.
	SpanAttrGroup = "setup_cpp.group"
	// SpanAttrCached marks a tool span as served from the tool cache.
	SpanAttrCached = "setup_cpp.cached"
	// SpanAttrTool is the tool name of an installation span.
	SpanAttrTool = "setup_cpp.tool"
	// SpanAttrVersion is the tool version of an installation span.
	SpanAttrVersion = "setup_cpp.version"
	// SpanAttrState is the workflow state a span covers.
	SpanAttrState = "setup_cpp.state"

	// SpanEventLog is the event name carrying span output.
	SpanEventLog = "log"
	// SpanEventLogMessage is the attribute holding the output text.
	SpanEventLogMessage = "message"
)
