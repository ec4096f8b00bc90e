// Package io reads and writes import record tables.
//
// Two formats are supported:
//
//   - JSON: full fidelity, round-trips with [ReadJSON]
//   - CSV: one column per import path segment (imported_0, imported_1,
//     ...), for loading into spreadsheet or dataframe tools
//
// The CSV column order matches the tabular form of the data: imported
// segment columns first, then alias, directory, extension, file,
// filename, original, path.
package io
