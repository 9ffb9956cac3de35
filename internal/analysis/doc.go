// Package analysis computes descriptive statistics over the processed
// student table: per-column summaries, a Pearson correlation matrix and
// group aggregates by gender, age bucket and course completion.
//
// Results are written as CSV, JSON (with generation metadata) and a
// multi-sheet xlsx workbook.
package analysis
