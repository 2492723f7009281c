/*
Package status manages destination file storage and run accounting for
masterlib.

	            +-------------+
	            |   Status    |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Stats  |
	| (Storage) |           | (Report)|
	+-----------+           +---------+

🎯 Purpose:
- File system operations against the library root (exists, copy, mkdir)
- RunStatistics accumulator, one per orchestrator run
- Final summary rendering (per-type table plus totals)

🔄 Flow:
1. Orchestrator resolves each record's library-relative path
2. FileManager answers existence checks and performs the copy
3. Every per-file outcome lands in RunStatistics exactly once
4. Report renders the accumulator after the last file

The accumulator is mutated only by the orchestrator's own goroutine, so
it carries no locking.
*/
package status
