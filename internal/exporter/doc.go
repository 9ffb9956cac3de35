// Package exporter provides CSV and Excel export functionality for the
// student data pipeline.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, appends and UTF-8 BOM for Excel compatibility.
//
// CSV reading helpers: ReadCSV loads a header + rows table from disk for the
// cleaner, analyzer and visualizer stages.
//
// WorkbookWriter: Writes multi-sheet xlsx workbooks (excelize), used by the
// analyzer for the summary workbook.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	err := writer.WriteSimpleCSV(paths.RawCSV, domain.RawHeader, rows)
//
//	header, rows, err := exporter.ReadCSV(paths.CleanCSV)
package exporter
