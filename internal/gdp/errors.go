package gdp

import "errors"

// Error kinds reported by the pipeline. Every failure is wrapped around one of
// these with fmt.Errorf so callers can test it with errors.Is.
var (
	// ErrNetwork means the source page could not be fetched.
	ErrNetwork = errors.New("network error")
	// ErrParse means the page no longer has the structure the extractor expects.
	ErrParse = errors.New("parse error")
	// ErrFormat means a field of an accepted row could not be decoded.
	ErrFormat = errors.New("format error")
	// ErrIO means the flat file could not be written.
	ErrIO = errors.New("io error")
	// ErrStorage means the relational store failed.
	ErrStorage = errors.New("storage error")
	// ErrSchema means a table was handed to a stage expecting different columns.
	ErrSchema = errors.New("schema error")
)
