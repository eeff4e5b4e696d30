// Package filesystem locates and reads contract sources for audits.
package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/Adwaitbytes/solguard/internal/config"
)

// Walker finds Solidity sources under a root path
type Walker struct {
	config  *config.Config
	logger  *zap.Logger
	exclude map[string]bool
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	exclude := make(map[string]bool)
	for _, dir := range cfg.Exclude {
		exclude[dir] = true
	}

	return &Walker{
		config:  cfg,
		logger:  logger,
		exclude: exclude,
	}
}

// Collect returns the .sol files under root in sorted order. A root
// that is itself a file is returned as-is. Excluded directories,
// oversized files and .gitignore'd paths are skipped.
func (w *Walker) Collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	maxSize := ParseSize(w.config.MaxSize)

	if !info.IsDir() {
		return []string{root}, nil
	}

	var gi *ignore.GitIgnore
	if w.config.UseGitignore {
		if compiled, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			gi = compiled
		}
	}

	var files []string
	err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil // keep walking
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		if fi.IsDir() {
			if path != root && w.shouldExclude(fi.Name(), relPath) {
				w.logger.Debug("Skipping excluded directory", zap.String("path", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(strings.ToLower(path), ".sol") {
			return nil
		}
		if gi != nil && gi.MatchesPath(relPath) {
			w.logger.Debug("Skipping ignored file", zap.String("path", relPath))
			return nil
		}
		if maxSize > 0 && fi.Size() > maxSize {
			w.logger.Warn("Skipping oversized file",
				zap.String("path", relPath),
				zap.Int64("size", fi.Size()))
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// shouldExclude checks if a directory should be excluded
func (w *Walker) shouldExclude(name, path string) bool {
	if w.exclude[name] {
		return true
	}
	for _, part := range strings.Split(path, string(os.PathSeparator)) {
		if w.exclude[part] {
			return true
		}
	}
	return false
}
