package checklist

import _ "embed"

//go:embed library.toml
var defaultLibraryTOML []byte

//go:embed baseline.toml
var baselineTOML []byte
