package assets

import _ "embed"

// StyleYAML is the built-in progress bar style. User style files are
// applied on top of it.
//
//go:embed style.yaml
var StyleYAML []byte
