// Package hmmer runs the HMMER3 command-line tools and parses their tabular
// reports.
//
// A Runner is bound to one Mode for its lifetime. Search needs ModeTbl or
// ModeDom, Align needs ModeAlign and Fetch needs ModeFetch; calling an
// operation on a Runner of another mode fails with ErrModeMismatch before any
// process is started. Every subprocess exit status is inspected and a nonzero
// exit is reported as *ExitError.
//
// Parser reads --tblout and --domtblout reports one hit at a time and returns
// io.EOF once the report is exhausted.
package hmmer
