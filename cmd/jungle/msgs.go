package jungle

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manage versioned release directories behind a current symlink"
	MsgInitShort       = "Point current at the newest version of a new jungle"
	MsgSetShort        = "Point current at a given version"
	MsgUpgradeShort    = "Point current at the newest version"
	MsgDegradeShort    = "Point current at the version below the newest"
	MsgCurrentShort    = "Print the version current points at"
	MsgStatusShort     = "Print whether current is at the newest version"
	MsgPruneShort      = "Delete old versions"
	MsgDeleteShort     = "Delete one version"
	MsgListShort       = "List versions"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagReleasesDir = "Directory holding the versions, relative to the jungle"
	MsgFlagDryRun      = "Report what would happen without changing anything"
	MsgFlagAge         = "Prune versions last modified more than N days ago"
	MsgFlagIterations  = "Keep the N newest versions, prune the rest"
	MsgFlagSize        = "Prune oldest versions until the jungle is smaller than N (bytes, 500MB, 2GiB)"
	MsgFlagFormat      = "Output format: text, json or yaml (default: detected)"
	MsgFlagDefaults    = "Print the built-in defaults instead of the effective configuration"

	// Output
	MsgWouldDelete = "would delete %s\n"

	// Errors
	MsgErrNoCommand = "no command specified"
)

// Long messages
const (
	MsgRootLong = `jungle manages a "symlink farm": a directory holding numbered version
directories next to a single symlink, current, pointing at one of them.
Switching versions only ever renames a new link over current, so readers
never see it missing and rollbacks are instant.

Every command acts on the jungle given as last argument, or on the
working directory when it is omitted.`

	MsgUpgradeLong = `Point current at the newest version (Head).

current must already resolve to a version; use "jungle set" to repair a
missing or broken link. Upgrading a jungle already at Head succeeds
without touching the link.`

	MsgDegradeLong = `Point current at the version ranked just below the newest (Head-1).

Head-1 is recomputed from the directories present on every call, so
running degrade twice in a row stays on the same version. The version
is printed on success.`

	MsgStatusLong = `Print "current" when the current link points at the newest version and
"degraded" otherwise. Fails when there is no valid current link.`

	MsgPruneLong = `Delete versions matching every given criterion. The version current
points at is never deleted.

  --age N         versions last modified more than N days ago
  --iterations N  all but the N newest versions
  --size N        oldest versions first, while the jungle takes N or more

Without flags the [prune] section of the configuration is used. Each
deletion re-checks current first; a failure does not stop the others.`

	MsgPruneExample = `  jungle prune --iterations 5 /srv/app
  jungle prune --age 30 --iterations 2
  jungle prune --size 2GiB --dry-run`

	MsgDeleteLong = `Delete one version directory. The version current points at, under any
spelling (2.0, 2.0.0), cannot be deleted.`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(jungle completion bash)

Zsh:
  $ jungle completion zsh > "${fpath[1]}/_jungle"

Fish:
  $ jungle completion fish | source

PowerShell:
  PS> jungle completion powershell | Out-String | Invoke-Expression`
)
