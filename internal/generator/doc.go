// Package generator produces the synthetic raw student dataset.
//
// Records are generated from seeded pseudo-random distributions so that a
// given seed always yields the same dataset. Optional contamination passes
// inject the missing values, mixed value formats and boolean spelling
// variants that the cleaner stage exists to repair.
package generator
