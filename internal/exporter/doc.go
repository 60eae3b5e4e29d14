// Package exporter writes cleaned datasets to disk.
//
// CSVWriter handles CSV output, with optional UTF-8 BOM for Excel
// compatibility and a streaming variant for row-at-a-time writes.
// XLSXWriter exports the same tables as Excel workbooks.
package exporter
