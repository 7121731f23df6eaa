// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Secret file names and the keys they populate.
var secretKeys = map[string]string{
	"openai-api-key": KeyAPIKey,
	"github-token":   KeyGitHubToken,
}

// LoadSecrets reads every file in dir and returns a map of file name to
// trimmed contents. A missing directory yields an empty map. Dotfiles,
// subdirectories and empty files are skipped; unreadable files produce a
// warning on w.
func LoadSecrets(dir string, w io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// ApplySecrets installs recognised secrets as fallbacks on v, so the config
// file and the environment still take precedence. It returns the names of
// the secrets applied, sorted.
func ApplySecrets(v *viper.Viper, secrets map[string]string) []string {
	var applied []string
	for name, value := range secrets {
		key, ok := secretKeys[name]
		if !ok {
			continue
		}
		v.SetDefault(key, value)
		applied = append(applied, name)
	}
	sort.Strings(applied)
	return applied
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone and a missing file is not an error.
func LoadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("loading %s: %w", path, err)
	}
	return true, nil
}
