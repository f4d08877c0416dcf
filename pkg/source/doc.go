// Package source reads a directory of TypeScript/JavaScript modules and
// extracts the relationships archboard draws on a board.
//
// Extraction is pattern matching, not parsing. Two expressions are
// recognized:
//
//	import { x } from './other'      // local dependency on "other"
//	export function Handle() {}      // public symbol "Handle"
//
// Anything else, including string-concatenated or template imports,
// re-exports and declarations split across lines, is ignored. Missed
// imports are acceptable; matched ones always yield the right identifier.
//
// # Usage
//
//	records, err := source.Load("src")
//	if errors.Is(err, errors.ErrCodeDirectoryNotFound) {
//	    // nothing to draw
//	}
//	for _, r := range records {
//	    fmt.Println(r.Name, r.Imports, r.Exports, r.Lines)
//	}
package source
