package docx2jats

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInputPath = errors.New("input path cannot be empty")
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrInputNotFound  = errors.New("input file not found")

	// Engine errors.
	ErrPandocNotFound = errors.New("pandoc not found in PATH")
	ErrPandocFailed   = errors.New("pandoc conversion failed")
	ErrNoEngineOutput = errors.New("conversion produced no output file")
)
