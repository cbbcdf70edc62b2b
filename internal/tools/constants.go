package tools

// Tool name prefix for all MCP tools
const ToolPrefix = "calc."

// Tool names
const (
	ToolPressKeys      = ToolPrefix + "press_keys"
	ToolEnterDigit     = ToolPrefix + "enter_digit"
	ToolSelectOperator = ToolPrefix + "select_operator"
	ToolEvaluate       = ToolPrefix + "evaluate"
	ToolClear          = ToolPrefix + "clear"
	ToolGetDisplay     = ToolPrefix + "get_display"
	ToolGetTape        = ToolPrefix + "get_tape"
	ToolNewSession     = ToolPrefix + "new_session"
	ToolCloseSession   = ToolPrefix + "close_session"
	ToolListKeys       = ToolPrefix + "list_keys"
	ToolRenderDisplay  = ToolPrefix + "render_display"
)

// sessionArgDescription is shared by every tool that acts on a session
const sessionArgDescription = "Calculator session ID from new_session. Defaults to the session of the calling client."
