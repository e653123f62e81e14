package ingest

import "errors"

// ErrNoSources indicates the run was started without any configured sources.
// This is a configuration error, not an empty-result condition: a deployment
// with zero sources is broken and must fail loudly before any fetch.
var ErrNoSources = errors.New("no sources configured")
