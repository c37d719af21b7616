package processing

import (
	"os"
	"path/filepath"
	"testing"
)

const validChain = `
context:
  domain: example.com
steps:
  - name: stamp
    type: set
    set:
      url: "https://{{ .domain }}"
`

func writeChain(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func setupDiscoverTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeChain(t, root, "root.chain.yaml", validChain)
	writeChain(t, filepath.Join(root, "child"), "child.chain.yaml", validChain)
	writeChain(t, filepath.Join(root, "child", "grandchild"), "grandchild.chain.yaml", validChain)
	writeChain(t, root, "notes.yaml", "not: a chain\n")

	return root
}

func TestDiscoverChains_Unlimited(t *testing.T) {
	root := setupDiscoverTree(t)

	chains, err := DiscoverChains(root, "", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chains) != 3 {
		t.Fatalf("expected 3 chains, got %d", len(chains))
	}

	want := []string{"root", "child", "grandchild"}
	for i, c := range chains {
		if c.Name != want[i] {
			t.Errorf("chain %d: expected %q, got %q", i, want[i], c.Name)
		}
	}
}

func TestDiscoverChains_MaxDepth(t *testing.T) {
	root := setupDiscoverTree(t)

	tests := []struct {
		maxDepth int
		want     int
	}{
		{0, 1},
		{1, 2},
		{2, 3},
	}

	for _, tt := range tests {
		chains, err := DiscoverChains(root, "", tt.maxDepth)
		if err != nil {
			t.Fatalf("maxDepth=%d: unexpected error: %v", tt.maxDepth, err)
		}
		if len(chains) != tt.want {
			t.Errorf("maxDepth=%d: expected %d chains, got %d", tt.maxDepth, tt.want, len(chains))
		}
	}
}

func TestDiscoverChains_CustomPattern(t *testing.T) {
	root := setupDiscoverTree(t)

	chains, err := DiscoverChains(root, "child/*.chain.yaml", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chains) != 1 || chains[0].Name != "child" {
		t.Fatalf("expected only the child chain, got %d chains", len(chains))
	}
}

func TestDiscoverChains_InvalidPattern(t *testing.T) {
	if _, err := DiscoverChains(t.TempDir(), "[", -1); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestDiscoverChains_InvalidFile(t *testing.T) {
	root := t.TempDir()
	writeChain(t, root, "broken.chain.yaml", "steps: []\n")

	if _, err := DiscoverChains(root, "", -1); err == nil {
		t.Fatal("expected error for invalid chain file")
	}
}

func TestPathDepth(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{".", 0},
		{"a", 1},
		{"a/b", 2},
		{"a/b/c", 3},
	}
	for _, tt := range tests {
		if got := pathDepth(tt.path); got != tt.want {
			t.Errorf("pathDepth(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
