package reference

import "embed"

// builtinTablesFS embeds the built-in reference tables.
//
//go:embed tables/*.yml
var builtinTablesFS embed.FS
