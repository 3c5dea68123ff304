// Package importer loads catalog data from CSV exports and runs batch
// maintenance over stored aliases.
//
// The CSV format is one row per glass:
//
//	external_id,group_name,brands,description,glass_name,aliases
//	G0001,HOCO A-series,HOCO,Tempered 2.5D,Samsung A13,a13|galaxy a13
//
// Rows sharing an external_id describe the same compatibility group; group
// attributes are taken from the first row and refreshed on re-import.
// Aliases are separated by '|' or ';'.
package importer
