package messages

// MCP server messages.
const (
	McpServerName             = "bumpver"
	McpRunServerFailedFmt     = "run mcp server: %w"
	McpServerInstructions     = "bumpver reads and bumps semantic versions stored at dot-separated key paths inside JSON, YAML, and TOML files. Use read_version first, preview_version to check a bump, then write_version to persist it."
	McpReadToolDescription    = "Read the semantic version stored at a dot-separated selector (for example package.version) in a JSON, YAML, or TOML file."
	McpPreviewToolDescription = "Compute the version a bump (major, minor, patch, or an explicit version) would produce without modifying the file. Set diff=true to also return a unified diff."
	McpWriteToolDescription   = "Bump the version at a selector and rewrite the file in place. Explicit versions must be greater than the current version."
	McpBumpRequired           = "bump is required"
)
