// Package cleaner repairs the raw student dataset into the processed table
// consumed by analysis and visualization.
//
// Cleaning runs as a fixed sequence of passes: duplicate removal, lenient
// type coercion, median imputation, anomaly clipping, derived-column
// computation and final record validation. The sequence is idempotent:
// cleaning an already-cleaned table produces an identical table.
//
// Every repair is counted (and optionally recorded per cell) in a
// CleaningReport so a run can be audited afterwards.
package cleaner
