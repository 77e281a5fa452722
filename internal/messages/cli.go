package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse = "bumpver <bump> <selector> <file>"
	// RootShort is the short description for the root command.
	RootShort       = "Read and bump semantic versions inside JSON, YAML, and TOML files"
	RootVersionFlag = "Print version and exit"

	// RootLong is the long description for the root command.
	RootLong = "bumpver reads or bumps a semantic version stored at a dot-separated key path inside a\n" +
		"JSON, YAML, or TOML document and writes the result back in the original format.\n\n" +
		"Running bumpver with three arguments is the same as `bumpver write`."

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	FlagTypeUsage    = "Force the document format (json, yaml, toml) instead of detecting it from the file extension"
	FlagDiffUsage    = "Print a unified diff of the file instead of the new version"
	FlagConfirmUsage = "Ask for confirmation before writing the file"
	FlagNoLockUsage  = "Do not take an advisory lock on the file while writing"

	// ReadUse is the read command usage.
	ReadUse   = "read <selector> <file>"
	ReadShort = "Print the version stored at the selector"

	PreviewUse   = "preview <bump> <selector> <file>"
	PreviewShort = "Print the version a bump would produce without writing the file"

	WriteUse   = "write <bump> <selector> <file>"
	WriteAlias = "bump"
	WriteShort = "Bump the version stored at the selector and rewrite the file"

	// BumpArgHelp describes the accepted bump tokens.
	BumpArgHelp = "<bump> is major, minor, patch (any case) or an explicit version such as 2.5.0.\n" +
		"<selector> is a dot-separated key path such as package.version."

	McpUse   = "mcp"
	McpShort = "Serve read, preview, and write as MCP tools over stdio"

	// ErrorPrefix prefixes diagnostics printed to stderr.
	ErrorPrefix = "error:"
	// RootArgsFmt reports a root invocation that is neither empty nor a full write.
	RootArgsFmt = "expected <bump> <selector> <file> or a subcommand, got %d argument(s)"

	ConfirmWriteFmt       = "Write %s to %s (currently %s)?"
	ConfirmNotInteractive = "--confirm requires an interactive terminal"
	WriteAborted          = "write aborted; file left unchanged"
)
