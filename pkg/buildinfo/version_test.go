package buildinfo

import (
	"strings"
	"testing"
)

func TestStringAndTemplate(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	if got := String(); got != "version: v1.2.3\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z" {
		t.Errorf("String() = %q", got)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
}

func TestResolveKeepsLdflags(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v9.9.9", "fixed", "today"

	Resolve()
	if Version != "v9.9.9" || Commit != "fixed" || Date != "today" {
		t.Errorf("Resolve overwrote ldflags values: %s %s %s", Version, Commit, Date)
	}
}
