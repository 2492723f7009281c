/*
Package operation orchestrates the source-to-library transfer.

🔄 Flow:
1. Walk the source tree, matching candidates against include globs
2. Extract each candidate's header (pkg/header)
3. Classify into a MasterRecord or a rejection (pkg/frame)
4. Build the destination path (pkg/library)
5. Apply policy: no-overwrite skip, dry-run no-op, or copy (pkg/status)
6. Record every outcome in RunStatistics

Per-file state machine:

	SCANNED -> (REJECTED | CLASSIFIED)
	CLASSIFIED -> (COPIED | SKIPPED_EXISTS | DRY_RUN_NOOP | FAILED)

⚡ Every per-file outcome is non-fatal: one corrupt header or failed
copy never aborts the run. Only setup failures (missing source root,
unpreparable destination) return an error from Execute.

The walk is single-threaded and sequential. The source tree is never
mutated, so an interrupted run can simply be re-run.
*/
package operation
