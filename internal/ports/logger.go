package ports

import "github.com/vigil-labs/framegate/pkg/log"

// Logger is the structured logging port. It aliases pkg/log so adapters
// written against either package satisfy both.
type Logger = log.Logger

// Field is a structured logging field.
type Field = log.Field

// Field constructors, re-exported for the application layer.
var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Uint64   = log.Uint64
	Bool     = log.Bool
	Duration = log.Duration
	Strings  = log.Strings
	Err      = log.Err
	Any      = log.Any
)
