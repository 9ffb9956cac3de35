// Package diagnosis profiles a student CSV without repairing it: column
// types, missing values, unique counts, numeric ranges, outlier counts and
// a format audit of the quiz participation column.
//
// It runs against raw and cleaned files alike, so it doubles as a
// before/after quality check around the cleaner.
package diagnosis
