package keymap

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/bodil/vscode-use-package/internal/log"
)

var indentOptions = &pretty.Options{Indent: "    "}

// Binding is one entry of the keybindings file. Identity for merging is the
// (key, when) pair; command and args are payload.
type Binding struct {
	Key     string         `json:"key" yaml:"key"`
	Command string         `json:"command" yaml:"command"`
	When    string         `json:"when,omitempty" yaml:"when,omitempty"`
	Args    map[string]any `json:"args,omitempty" yaml:"args,omitempty"`
}

// Merger upserts bindings into the user keybindings file.
type Merger struct {
	fs   afero.Fs
	path string
}

func NewMerger(fs afero.Fs, path string) *Merger {
	return &Merger{fs: fs, path: path}
}

// Apply merges the bindings into the file. A binding whose (key, when) pair
// already exists replaces that entry in place, keeping its position;
// anything else is appended. The file is rewritten only when the merged
// serialization differs from what was read, so applying the same bindings
// twice produces no second disk write.
func (m *Merger) Apply(ctx context.Context, bindings []Binding) error {
	if len(bindings) == 0 {
		return nil
	}

	raw, doc, err := m.read()
	if err != nil {
		return err
	}

	for _, binding := range bindings {
		index := findBinding(doc, binding)
		path := "-1"
		if index >= 0 {
			path = strconv.Itoa(index)
		}
		doc, err = sjson.SetBytes(doc, path, binding)
		if err != nil {
			return fmt.Errorf("failed to merge keybinding %q: %w", binding.Key, err)
		}
	}

	out := pretty.PrettyOptions(doc, indentOptions)
	if bytes.Equal(out, raw) {
		log.Debug("keybindings already up to date")
		return nil
	}

	if err := afero.WriteFile(m.fs, m.path, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.path, err)
	}
	return nil
}

// read returns the raw file content and a comment-free copy to edit.
func (m *Merger) read() (raw, doc []byte, err error) {
	raw, err = afero.ReadFile(m.fs, m.path)
	if os.IsNotExist(err) {
		return nil, []byte("[]"), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", m.path, err)
	}
	doc = jsonc.ToJSON(raw)
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsArray() {
		return nil, nil, fmt.Errorf("%s is not a JSON array", m.path)
	}
	return raw, doc, nil
}

// findBinding returns the index of the entry sharing the binding's
// (key, when) identity, or -1. An absent "when" clause and an empty one
// compare equal.
func findBinding(doc []byte, binding Binding) int {
	index := -1
	gjson.ParseBytes(doc).ForEach(func(i, entry gjson.Result) bool {
		if entry.Get("key").String() == binding.Key && entry.Get("when").String() == binding.When {
			index = int(i.Int())
			return false
		}
		return true
	})
	return index
}
