// Package preserve copies git-ignored local files, such as .env, from an
// existing worktree into a freshly created one.
package preserve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/W1Real/workty/internal/cmd"
	"github.com/W1Real/workty/internal/config"
	"github.com/W1Real/workty/internal/log"
)

// IgnoredFiles returns the git-ignored files present in dir, relative to dir.
func IgnoredFiles(ctx context.Context, dir string) ([]string, error) {
	out, err := cmd.OutputContext(ctx, dir, "git",
		"ls-files", "-z", "--others", "--ignored", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var files []string
	for _, f := range bytes.Split(out, []byte{0}) {
		if len(f) > 0 {
			files = append(files, string(f))
		}
	}
	return files, nil
}

// Match reports whether relPath is selected by cfg. Patterns match the
// basename; an excluded name anywhere in the path wins.
func Match(cfg config.PreserveConfig, relPath string) bool {
	for seg := range strings.SplitSeq(filepath.ToSlash(relPath), "/") {
		if slices.Contains(cfg.Exclude, seg) {
			return false
		}
	}

	base := filepath.Base(relPath)
	for _, pat := range cfg.Patterns {
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// copyFile copies src to dst with src's permission bits. An existing dst is
// left alone and reported as not copied.
func copyFile(src, dst string) (bool, error) {
	info, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}

	in, err := os.Open(src)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return false, err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return false, err
	}
	return true, out.Close()
}

// Copy copies the ignored files of srcDir selected by cfg into dstDir and
// returns the relative paths copied. Files that fail to copy are logged and
// skipped.
func Copy(ctx context.Context, cfg config.PreserveConfig, srcDir, dstDir string) ([]string, error) {
	if len(cfg.Patterns) == 0 {
		return nil, nil
	}
	l := log.FromContext(ctx)

	files, err := IgnoredFiles(ctx, srcDir)
	if err != nil {
		return nil, err
	}

	var copied []string
	for _, rel := range files {
		if !Match(cfg, rel) {
			continue
		}
		ok, err := copyFile(filepath.Join(srcDir, rel), filepath.Join(dstDir, rel))
		if err != nil {
			l.Debug("preserve failed", "file", rel, "error", err)
			continue
		}
		if ok {
			copied = append(copied, rel)
		}
	}
	return copied, nil
}
