package loader

import "fmt"

// MissingFileError reports an absent required input file. Fatal for the run.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required input file missing: %s", e.Path)
}

// SchemaError reports a required column absent from an input file. Fatal for
// that dataset; sibling datasets still process.
type SchemaError struct {
	File   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required column %q missing", e.File, e.Column)
}
