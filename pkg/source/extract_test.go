package source

import (
	"slices"
	"testing"
)

func TestExtractImports(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "order preserved",
			content: "const x = 1;\nimport a from './foo';\nlet y;\nimport { b } from './bar';\n",
			want:    []string{"foo", "bar"},
		},
		{
			name:    "double quotes",
			content: `import { authMiddleware } from "./auth";`,
			want:    []string{"auth"},
		},
		{
			name:    "duplicates preserved",
			content: "import a from './foo';\nimport { b } from './foo';",
			want:    []string{"foo", "foo"},
		},
		{
			name:    "external packages ignored",
			content: "import express from 'express';\nimport { x } from '../shared/x';",
			want:    nil,
		},
		{
			name:    "nested path ignored",
			content: "import { x } from './lib/x';",
			want:    nil,
		},
		{
			name:    "require ignored",
			content: "const auth = require('./auth');",
			want:    nil,
		},
		{
			name:    "multiline import clause",
			content: "import {\n  a,\n  b,\n} from './multi';",
			want:    []string{"multi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract("mod.ts", tt.content).Imports
			if !slices.Equal(got, tt.want) {
				t.Errorf("Imports = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractExports(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "function and const",
			content: "export function Handle() {}\nexport const Helper = 1;",
			want:    []string{"Handle", "Helper"},
		},
		{
			name:    "class and default",
			content: "export class Server {}\nexport default app;",
			want:    []string{"Server", "app"},
		},
		{
			name:    "async function",
			content: "export async function load() {}",
			want:    []string{"load"},
		},
		{
			name:    "duplicates preserved",
			content: "export const a = 1;\nexport const a = 2;",
			want:    []string{"a", "a"},
		},
		{
			name:    "private function ignored",
			content: "function isValidToken(token) { return true; }",
			want:    nil,
		},
		{
			name:    "re-export ignored",
			content: "export { a, b } from './other';\nexport * from './all';",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract("mod.ts", tt.content).Exports
			if !slices.Equal(got, tt.want) {
				t.Errorf("Exports = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractLines(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 1},
		{"one line", 1},
		{"a\nb", 2},
		{"a\nb\n", 3},
	}
	for _, tt := range tests {
		if got := Extract("x.ts", tt.content).Lines; got != tt.want {
			t.Errorf("Lines(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"server.ts", "server"},
		{"legacy.js", "legacy"},
		{"types.d.ts", "types.d"},
		{"README.md", "README.md"},
	}
	for _, tt := range tests {
		if got := ModuleName(tt.file); got != tt.want {
			t.Errorf("ModuleName(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestExtractRecord(t *testing.T) {
	r := Extract("server.ts", "import { registerRoutes } from './routes';\nexport default app;")
	if r.FileName != "server.ts" || r.Name != "server" {
		t.Errorf("Extract() = %+v, want FileName server.ts, Name server", r)
	}
}
