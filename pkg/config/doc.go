/*
Package config manages configuration parsing and validation for masterlib.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Loads optional tool defaults from a config file
- Validates include patterns and policy flags
- Applies the built-in FITS/XISF extension family when no patterns are given
- Supports multiple config formats through a parser registry

🔄 Flow:
1. Reads configuration from the file named by --config
2. Selects a parser by file extension
3. Parses format-specific syntax strictly (unknown keys are errors)
4. Validates and applies defaults

🤝 Interfaces:
- Parser: format-specific parsing plus CanParse file matching

📝 Design Philosophy:
Configuration sets defaults; CLI flags only tighten them. A config file
cannot be used to loosen a policy a flag has enabled, so a --dryrun run
stays dry no matter what the file says.

🔍 Example:

	cfg := config.Default()
	if path != "" {
		cfg, err = config.Load(ctx, path)
		if err != nil {
			return err
		}
	}
*/
package config
