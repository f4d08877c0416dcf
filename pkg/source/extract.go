package source

import (
	"regexp"
	"strings"
)

// ModuleRecord is what the extractor learned about one source file.
// Records are created once per file and not modified afterwards.
type ModuleRecord struct {
	FileName string   `json:"file"`              // File name as scanned, e.g. "server.ts"
	Name     string   `json:"name"`              // FileName without its suffix; the graph key
	Imports  []string `json:"imports,omitempty"` // Local imports in occurrence order, duplicates kept
	Exports  []string `json:"exports,omitempty"` // Exported symbols in occurrence order, duplicates kept
	Lines    int      `json:"lines"`             // Newline count plus one
}

var (
	// from './name' or from "./name"
	importPattern = regexp.MustCompile(`from\s+['"]\./(\w+)['"]`)

	// export function|class|const|default Name, plus a few common value
	// qualifiers that carry a name in the same position.
	exportPattern = regexp.MustCompile(
		`export\s+(?:function|class|const|default|let|var|async\s+function|interface|type|enum)\s+(\w+)`)
)

// Extract derives a ModuleRecord from one file's name and full text.
func Extract(fileName, content string) ModuleRecord {
	return ModuleRecord{
		FileName: fileName,
		Name:     ModuleName(fileName),
		Imports:  submatches(importPattern, content),
		Exports:  submatches(exportPattern, content),
		Lines:    strings.Count(content, "\n") + 1,
	}
}

// ModuleName strips the recognized suffix from fileName.
// Names without a recognized suffix are returned unchanged.
func ModuleName(fileName string) string {
	return strings.TrimSuffix(fileName, MatchSuffix(fileName))
}

func submatches(re *regexp.Regexp, content string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		out = append(out, m[1])
	}
	return out
}
