package autobarrel

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate and maintain barrel files"
	MsgRunShort        = "Regenerate barrel files once"
	MsgWatchShort      = "Regenerate barrel files whenever modules change"
	MsgCheckShort      = "Report stale barrel files without writing"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgWatching      = "Watching %s for changes (Ctrl-C to stop)"
	MsgWatchStopped  = "Stopped watching after %d regenerations"
	MsgVersionFormat = "autobarrel %s (commit %s, built %s)\n"

	// Error messages
	MsgErrStale        = "%d barrel files are out of date"
	MsgErrInitialPass  = "Initial pass failed, watching anyway"
	MsgErrRenderFailed = "Failed to render pass result"

	// Flag descriptions
	MsgFlagConfig  = "Path to the configuration file (json, yaml or toml)"
	MsgFlagVerbose = "Increase verbosity (-v, -vv, -vvv)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
)

// Long messages
const (
	MsgRootLong = `autobarrel keeps barrel files (index.ts) in sync with the modules around them.

Every directory matched by the configured paths gets a barrel that re-exports
its modules and the barrels of its subdirectories. Directories with nothing to
export have their barrels removed. Generated barrels start with a marker
comment and should not be edited by hand.

Running autobarrel without a command performs a single pass.`

	MsgWatchLong = `Runs a pass, then watches the base directory and runs another whenever a
module is added or removed or a directory disappears. Changes made while a
pass is running are folded into a single follow-up pass. Errors during a pass
are reported and watching continues.`

	MsgCheckLong = `Runs a pass without touching the disk and exits with a non-zero status if
any barrel would be written or deleted. Useful in CI.`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(autobarrel completion bash)

Zsh:
  $ autobarrel completion zsh > "${fpath[1]}/_autobarrel"

Fish:
  $ autobarrel completion fish | source

PowerShell:
  PS> autobarrel completion powershell | Out-String | Invoke-Expression`
)
