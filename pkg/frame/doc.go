/*
Package frame implements master calibration frame classification.

	+----------+     +------------+     +---------------+
	|  Header  | --> |  Classify  | --> | MasterRecord  |
	| (mapping)|     |            | \   +---------------+
	+----------+     +------------+  \  +---------------+
	                                  ->|  *Rejection   |
	                                    +---------------+

🎯 Purpose:
- Decide whether a file is a recognized master (bias/dark/flat)
- Assemble the typed, sanitized record the rest of the pipeline uses
- Name the exact reason a file was refused (taxonomy in rejection.go)

Classification is total: every header produces exactly one of a record or
a rejection. Optional fields are pointers, present or absent; a missing
OFFSET is nil, never an empty string or sentinel.
*/
package frame
