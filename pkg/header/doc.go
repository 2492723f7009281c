/*
Package header wraps the FITS/XISF header-reading capability behind a
uniform mapping interface.

	            +-------------+
	            |   Reader    |
	            | (capability)|
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   FITS    |           |  XISF   |
	| (fitsio)  |           |  (xml)  |
	+-----------+           +---------+

🎯 Purpose:
- One Extract(path) call per candidate file
- Key casing normalized at ingestion
- Fallback chains (EXPTIME/EXPOSURE, SET-TEMP/SETTEMP) resolved via Lookup
- ErrUnreadableFile for corrupt or unsupported containers

The reader never mutates source files; a file is opened once, its header
section parsed, and the handle closed before classification begins.
*/
package header
