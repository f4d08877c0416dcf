package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolvedVersion(t *testing.T) {
	origVersion, origRead := Version, readBuildInfo
	defer func() { Version, readBuildInfo = origVersion, origRead }()

	tests := []struct {
		name    string
		version string
		module  string
		want    string
	}{
		{"ldflags win", "v1.2.3", "v0.9.0", "v1.2.3"},
		{"module version fallback", "dev", "v0.9.0", "v0.9.0"},
		{"devel build stays dev", "dev", "(devel)", "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			readBuildInfo = func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: tt.module}}, true
			}
			if got := ResolvedVersion(); got != tt.want {
				t.Errorf("ResolvedVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateAndUserAgent(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()
	Version = "v2.0.0"

	if got := UserAgent(); got != "archboard/v2.0.0" {
		t.Errorf("UserAgent() = %q", got)
	}
	if !strings.Contains(Template(), "{{.Name}} version v2.0.0") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.HasPrefix(String(), "version: v2.0.0\n") {
		t.Errorf("String() = %q", String())
	}
}
