package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDefaultsWithoutDir(t *testing.T) {
	lib, err := NewLibrary("")
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	for _, name := range Names {
		p, ok := lib.Page(name)
		if !ok {
			t.Fatalf("page %q missing", name)
		}
		if p.Source != "default" {
			t.Errorf("page %q source = %q, want default", name, p.Source)
		}
		if p.HTML == "" {
			t.Errorf("page %q rendered empty", name)
		}
	}
	about, _ := lib.Page("about")
	if about.Title != "About" {
		t.Errorf("about title = %q, want About", about.Title)
	}
}

func TestFileOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "about.md"), []byte("# Who I Am\n\nA **bold** claim.\n"), 0o644)

	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	about, _ := lib.Page("about")
	if about.Source != "file" {
		t.Errorf("about source = %q, want file", about.Source)
	}
	if about.Title != "Who I Am" {
		t.Errorf("about title = %q, want %q", about.Title, "Who I Am")
	}
	if !strings.Contains(string(about.HTML), "<strong>bold</strong>") {
		t.Errorf("about HTML = %q, want rendered markdown", about.HTML)
	}
	if !strings.Contains(string(about.HTML), `id="who-i-am"`) {
		t.Errorf("about HTML = %q, want auto heading id", about.HTML)
	}

	home, _ := lib.Page("home")
	if home.Source != "default" {
		t.Errorf("home source = %q, want default", home.Source)
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "home.md")
	os.WriteFile(path, []byte("# First\n"), 0o644)

	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	os.WriteFile(path, []byte("# Second\n"), 0o644)
	if err := lib.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	home, _ := lib.Page("home")
	if home.Title != "Second" {
		t.Errorf("home title = %q, want Second", home.Title)
	}
}

func TestHighlightsCodeBlocks(t *testing.T) {
	lib, err := NewLibrary("")
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	about, _ := lib.Page("about")
	if !strings.Contains(string(about.HTML), "<pre") {
		t.Errorf("about HTML should contain a highlighted code block")
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		content, name, want string
	}{
		{"# Hello\nbody", "home", "Hello"},
		{"no heading", "about", "About"},
		{"## Sub\n# Main", "home", "Main"},
	}
	for _, tt := range tests {
		if got := extractTitle(tt.content, tt.name); got != tt.want {
			t.Errorf("extractTitle(%q, %q) = %q, want %q", tt.content, tt.name, got, tt.want)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "home.md")
	os.WriteFile(path, []byte("# Before\n"), 0o644)

	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lib.Watch(ctx, zap.NewNop()) }()
	defer func() {
		cancel()
		<-done
	}()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		// Rewrite until the watcher is registered and sees a change.
		os.WriteFile(path, []byte("# After\n"), 0o644)
		if home, _ := lib.Page("home"); home.Title == "After" {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("watcher did not reload the page")
}

func TestWatchWithoutDir(t *testing.T) {
	lib, err := NewLibrary("")
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	if err := lib.Watch(context.Background(), zap.NewNop()); err == nil {
		t.Error("expected error watching without a directory")
	}
}
