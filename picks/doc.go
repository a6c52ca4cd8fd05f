// Package picks reads predicted arrival-time picks and turns them into
// per-side pick series for curve fitting.
//
// A pick table holds one row per (source, receiver) pair in source-major
// order. Each cell is a JSON value produced by a phase picker, typically a
// one-element array such as "[1234]". Cells that carry no usable pick are
// skipped with a named [Outcome] instead of an error:
//
//   - [Decode]:  decode a single cell
//   - [Select]:  build a [Series] for one side of a source, filtered by [Range]
//   - [ReadTable], [LoadTable]: read the itp_pred / its_pred columns
//   - [WriteCSV], [WriteCSVFile]: write corrected itp / its columns
package picks
