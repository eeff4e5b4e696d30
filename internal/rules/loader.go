package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Adwaitbytes/solguard/pkg/models"
	"gopkg.in/yaml.v3"
)

// Loader loads additional rules from YAML files
type Loader struct {
	rulesPath string
}

// NewLoader creates a rule loader for the given directory or file
func NewLoader(rulesPath string) *Loader {
	return &Loader{rulesPath: rulesPath}
}

// RuleFile represents a YAML rule file
type RuleFile struct {
	Rules []*models.Rule `yaml:"rules"`
}

// Load reads every YAML file under the rules path and appends the
// rules to the catalog. A missing path is not an error; the catalog
// keeps its built-in rules.
func (l *Loader) Load(catalog *Catalog) error {
	info, err := os.Stat(l.rulesPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return l.loadFile(l.rulesPath, catalog)
	}

	return filepath.Walk(l.rulesPath, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || (filepath.Ext(path) != ".yaml" && filepath.Ext(path) != ".yml") {
			return nil
		}
		if err := l.loadFile(path, catalog); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	})
}

// loadFile loads rules from a single YAML file
func (l *Loader) loadFile(path string, catalog *Catalog) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return err
	}

	for _, r := range rf.Rules {
		// Defaults for fields the file may omit
		if r.Kind == "" {
			r.Kind = models.KindPresence
		}
		if r.Severity == "" {
			r.Severity = models.SeverityInfo
		}
		if r.Category == "" {
			r.Category = models.CategoryCodeQuality
		}
		r.Enabled = true

		if err := catalog.Add(r); err != nil {
			return fmt.Errorf("failed to add rule %s: %w", r.ID, err)
		}
	}

	return nil
}
