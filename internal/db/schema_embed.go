package db

import _ "embed"

// Schema holds the bootstrap SQL for local development and integration tests.
//
//go:embed schema.sql
var Schema string
