// SPDX-License-Identifier: MIT
package build

import "testing"

func TestInitializeKeepsDevDefaults(t *testing.T) {
	Initialize()
	got := GetInfo()
	if got.Name == "" || got.Version == "" {
		t.Errorf("expected non-empty defaults, got %+v", got)
	}
}

func TestInitializeAppliesInjectedFlags(t *testing.T) {
	buildVersion = "1.2.3"
	buildCommit = "abc1234"
	t.Cleanup(func() {
		buildVersion = ""
		buildCommit = ""
	})

	Initialize()
	got := GetInfo()
	if got.Version != "1.2.3" {
		t.Errorf("Version: got %q, want 1.2.3", got.Version)
	}
	if got.Commit != "abc1234" {
		t.Errorf("Commit: got %q, want abc1234", got.Commit)
	}
}
