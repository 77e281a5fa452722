package messages

// Messages for versions, selectors, documents, and file handling.
const (
	VersionInvalidFmt       = "invalid version %q: expected MAJOR.MINOR.PATCH with optional -prerelease and +build"
	VersionNotIncreasingFmt = "new version %s must be greater than current version %s"
	VersionEmptyBump        = "bump is required (major, minor, patch, or an explicit version)"
	VersionOverflowFmt      = "cannot bump %s: %s component is at its maximum value"

	SelectorEmpty           = "selector is required"
	SelectorEmptySegmentFmt = "invalid selector %q: empty key segment"
	SelectorMissingKeyFmt   = "missing key %q (selector %q)"
	SelectorNotATableFmt    = "key %q is not a table (selector %q)"
	SelectorRootNotATable   = "document root is not a table"

	DocumentParseFailedFmt   = "parse %s document: %v"
	DocumentNotAStringFmt    = "value at %q is not a string"
	DocumentEncodeFailedFmt  = "encode %s document: %w"
	DocumentPositionFmt      = "line %d, column %d: %s"
	DocumentTrailingData     = "unexpected data after top-level value"
	DocumentUnsupportedFmt   = "unsupported document format %q"
	DocumentInvalidStringFmt = "value at offset %d is not a quoted string"
	DocumentReadBackFmt      = "value at %q does not read back as %q"

	FormatUnsupportedExtensionFmt = "unsupported file extension %q for %s (use --type json|yaml|toml)"
	FormatMissingExtensionFmt     = "file %s has no extension (use --type json|yaml|toml)"
	FormatUnsupportedFmt          = "unsupported format %q (expected json, yaml, or toml)"

	FileReadFailedFmt   = "read %s: %w"
	FileWriteFailedFmt  = "write %s: %w"
	FileStatFailedFmt   = "stat %s: %w"
	FileExpandFailedFmt = "expand path %s: %w"
	FileOpenLockFmt     = "open %s for locking: %w"
	FileLockFmt         = "lock %s: %w"
	FileLockTimeoutFmt  = "timed out after %s waiting for the lock"
	FileRequired        = "file is required"

	ConfigInvalidBoolFmt = "invalid %s value %q: expected true or false"
)
