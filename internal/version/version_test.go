package version

import (
	"runtime/debug"
	"testing"
)

func TestResolveLinkerValuesWin(t *testing.T) {
	t.Parallel()

	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Main:      debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}
	info := resolve("v1.0.0", "feedface", "", bi)
	if info.Version != "v1.0.0" || info.Commit != "feedface" {
		t.Fatalf("linker values lost: %+v", info)
	}
	if info.BuildTime != "2026-01-02T03:04:05Z" || info.GoVersion != "go1.26.0" {
		t.Fatalf("build info not used as fallback: %+v", info)
	}
}

func TestResolveFallbacks(t *testing.T) {
	t.Parallel()

	info := resolve("", "", "", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if info.Version != "dev" {
		t.Fatalf("expected dev version, got %q", info.Version)
	}
	info = resolve("", "", "", &debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}})
	if info.Version != "v0.3.0" {
		t.Fatalf("expected module version, got %q", info.Version)
	}
	if info := resolve("", "", "", nil); info.Version != "dev" {
		t.Fatalf("nil build info: %+v", info)
	}
}

func TestShortCommit(t *testing.T) {
	t.Parallel()

	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("got %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
