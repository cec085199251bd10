package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/bodil/vscode-use-package/internal/log"
)

// indentOptions matches VS Code's own formatting of its config files.
var indentOptions = &pretty.Options{Indent: "    "}

// Applier writes key/value settings into the user-level settings file.
// Settings are always written at the user level; this tool configures a
// personal environment, not a project.
type Applier struct {
	fs   afero.Fs
	path string
}

func NewApplier(fs afero.Fs, path string) *Applier {
	return &Applier{fs: fs, path: path}
}

// Set applies the mapping. An empty scope means keys are already fully
// qualified; otherwise each key is namespaced as "scope.key". Keys whose
// current value already matches are skipped, so applying the same mapping
// twice performs no second write.
func (a *Applier) Set(ctx context.Context, scope string, mapping map[string]any) error {
	if len(mapping) == 0 {
		return nil
	}

	doc, err := a.read()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	changed := false
	for _, key := range keys {
		qualified := key
		if scope != "" {
			qualified = scope + "." + key
		}
		value := mapping[key]

		current := gjson.GetBytes(doc, escapeKey(qualified))
		if current.Exists() && valueEqual(current.Value(), value) {
			log.Debugf("setting %s already up to date", qualified)
			continue
		}

		doc, err = sjson.SetBytes(doc, escapeKey(qualified), value)
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", qualified, err)
		}
		log.Debugf("setting %s updated", qualified)
		changed = true
	}

	if !changed {
		return nil
	}
	return a.write(doc)
}

func (a *Applier) read() ([]byte, error) {
	raw, err := afero.ReadFile(a.fs, a.path)
	if os.IsNotExist(err) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a.path, err)
	}
	// The file is JSONC in the wild; strip comments before editing.
	doc := jsonc.ToJSON(raw)
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%s is not valid JSON", a.path)
	}
	return doc, nil
}

func (a *Applier) write(doc []byte) error {
	out := pretty.PrettyOptions(doc, indentOptions)
	if err := afero.WriteFile(a.fs, a.path, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.path, err)
	}
	return nil
}

// escapeKey protects the literal dots of a settings key from being read as
// path separators. "editor.fontSize" is one flat key in settings.json, not
// a nested object.
func escapeKey(key string) string {
	return strings.ReplaceAll(key, ".", "\\.")
}

// valueEqual compares a stored setting with a desired one through a round
// trip to JSON, so 1 and 1.0 compare equal and nested maps/slices compare
// structurally.
func valueEqual(current, desired any) bool {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return false
	}
	desiredRaw, err := json.Marshal(desired)
	if err != nil {
		return false
	}
	var normalized any
	if err := json.Unmarshal(desiredRaw, &normalized); err != nil {
		return false
	}
	desiredJSON, err := json.Marshal(normalized)
	if err != nil {
		return false
	}
	return string(currentJSON) == string(desiredJSON)
}
