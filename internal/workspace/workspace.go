package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SelectArtifact returns the path of the most-recently-modified file in dir
// whose name carries ext (non-recursive). It returns "" when dir is missing
// or holds no matching file. Equal modification times tie-break on the
// lexicographically greatest name so selection stays deterministic.
func SelectArtifact(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("could not list directory %q: %w", dir, err)
	}

	var best string
	var bestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime().UnixNano()
		if best == "" || mod > bestMod || (mod == bestMod && entry.Name() > best) {
			best = entry.Name()
			bestMod = mod
		}
	}
	if best == "" {
		return "", nil
	}
	return filepath.Join(dir, best), nil
}

// WriteArtifact overwrites path with content. The write is not atomic; a
// crash mid-write can leave a partial file.
func WriteArtifact(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("could not write artifact %q: %w", path, err)
	}
	return nil
}

// EnsureDir creates the working directory if it does not exist yet and
// initializes it as a Go module, so the test runner can operate on the
// artifacts inside. An existing go.mod is left alone.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create working directory %q: %w", dir, err)
	}

	gomod := filepath.Join(dir, "go.mod")
	if _, err := os.Stat(gomod); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("could not stat %q: %w", gomod, err)
	}
	content := fmt.Sprintf("module %s\n\ngo 1.21\n", moduleName(dir))
	if err := os.WriteFile(gomod, []byte(content), 0644); err != nil {
		return fmt.Errorf("could not initialize module in %q: %w", dir, err)
	}
	return nil
}

// moduleName derives a module path from the directory's base name,
// keeping only characters that are safe in a module path.
func moduleName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(filepath.Base(abs)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "coding"
	}
	return sb.String()
}

// Exists reports whether dir is present on disk.
func Exists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
