// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		ConfigLoadFailedId,
		ModDirNotSetId,
		ModNotFoundId,
		NoMatchingVersionId,
		ChecksumMismatchId,
		NetworkFailedId,
		RateLimitedId,
		BackupFailedId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true

		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if ConfigLoadFailedId != 1 {
		t.Errorf("ConfigLoadFailedId = %d, want 1", ConfigLoadFailedId)
	}
	if len(Values()) != len(ids) {
		t.Errorf("Values() has %d issues, want %d", len(Values()), len(ids))
	}
}

func TestGet_Unknown(t *testing.T) {
	if Get(Id(9999)) != nil {
		t.Error("Get() for unknown id should return nil")
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	issue := Get(ModNotFoundId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("expected external links")
	}
	links[0] = "mutated"
	if issue.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() should return a copy")
	}
	if issue.DocLinks() != nil {
		t.Errorf("DocLinks() = %v, want nil", issue.DocLinks())
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return in, nil
	}

	tests := []struct {
		id        Id
		contains  string
		wantLinks bool
	}{
		{RateLimitedId, "Rate limited!", true},
		{ModDirNotSetId, "modify config set mod_dir", false},
	}

	for _, tt := range tests {
		rendered, err := Get(tt.id).Render("dark")
		if err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		if !strings.Contains(rendered, tt.contains) {
			t.Errorf("Render(%d) missing %q", tt.id, tt.contains)
		}
		if got := strings.Contains(rendered, "## See also"); got != tt.wantLinks {
			t.Errorf("Render(%d) see-also section = %v, want %v", tt.id, got, tt.wantLinks)
		}
		if gotStyle != "dark" {
			t.Errorf("style = %q, want dark", gotStyle)
		}
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, issue := range Values() {
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty markdown", issue.Id())
			continue
		}
		if _, err := issue.Render("notty"); err != nil {
			t.Errorf("issue %d failed to render: %v", issue.Id(), err)
		}
	}
}
