// Package parallel implements the row-production / ordered-commit pipeline
// behind fractal.Render.
//
// N renderer goroutines claim row indices from a shared cursor, colour
// each row and publish it into a RowTable. A single writer goroutine drains
// the table and commits rows to the output in one of two disciplines:
//
//   - Streaming: rows are appended strictly in index order. Works with any
//     io.Writer, including pipes and compressors.
//   - Random access: any ready row is written at its final offset. Requires
//     an io.WriteSeeker.
//
// Every slot of the RowTable moves Empty -> Created -> Written exactly once.
// The transitions happen under the table mutex, which is also the point at
// which ownership of the row buffer changes hands. An impossible transition
// panics with a *ProtocolError.
//
// Thread safety: Allocator, RowTable and RowPool are safe for concurrent use.
package parallel
