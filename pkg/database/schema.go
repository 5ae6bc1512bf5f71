package database

import _ "embed"

// Schema is the DDL for the microsite tables.
//
//go:embed schema.sql
var Schema string
