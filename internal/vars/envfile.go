package vars

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/restbench/internal/errdef"
)

// EnvironmentSet maps environment names to their variable tables.
type EnvironmentSet map[string]map[string]string

// LoadEnvironmentFile reads a single environment file, picking the
// parser from the file name: dotenv, JSON ({env: {key: value}}) or
// YAML with the same shape.
func LoadEnvironmentFile(path string) (EnvironmentSet, error) {
	if IsDotEnvPath(path) {
		return loadDotEnvEnvironment(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSONEnvironments(path)
	case ".yaml", ".yml":
		return loadYAMLEnvironments(path)
	default:
		return nil, errdef.New(errdef.CodeParse, "unsupported environment file %s", path)
	}
}

// ResolveEnvironment discovers an environment file in the given search
// paths, first directory with a hit wins. Only *.env.json and
// *.env.yaml/yml names participate; dotenv files must be passed
// explicitly because a stray .env in the working directory is usually
// someone else's configuration.
func ResolveEnvironment(searchPaths []string) (EnvironmentSet, string, error) {
	var firstErr error
	for _, dir := range searchPaths {
		if dir == "" {
			continue
		}
		path, ok := discoverEnvFile(dir)
		if !ok {
			continue
		}
		envs, err := LoadEnvironmentFile(path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return envs, path, nil
	}
	if firstErr != nil {
		return nil, "", firstErr
	}
	return nil, "", errdef.New(errdef.CodeFilesystem, "no environment file found")
}

func discoverEnvFile(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".env.json") ||
			strings.HasSuffix(name, ".env.yaml") ||
			strings.HasSuffix(name, ".env.yml") {
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), true
}

func loadJSONEnvironments(path string) (EnvironmentSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read env file %s", path)
	}
	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "parse env file %s", path)
	}
	return normalizeEnvironments(raw), nil
}

func loadYAMLEnvironments(path string) (EnvironmentSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read env file %s", path)
	}
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "parse env file %s", path)
	}
	return normalizeEnvironments(raw), nil
}

func normalizeEnvironments(raw map[string]map[string]string) EnvironmentSet {
	envs := make(EnvironmentSet, len(raw))
	for name, values := range raw {
		name = strings.TrimSpace(name)
		if name == "" || values == nil {
			continue
		}
		envs[name] = values
	}
	return envs
}

// EnvValues returns the variable table for name, nil when absent.
// Lookup is exact first, then case-insensitive so CLI flags do not
// have to match file casing.
func EnvValues(envs EnvironmentSet, name string) map[string]string {
	if len(envs) == 0 || name == "" {
		return nil
	}
	if values, ok := envs[name]; ok {
		return values
	}
	for candidate, values := range envs {
		if strings.EqualFold(candidate, name) {
			return values
		}
	}
	return nil
}

// SelectEnv picks the first of the given names that exists in envs,
// returning the set's own casing for it.
func SelectEnv(envs EnvironmentSet, names ...string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := envs[name]; ok {
			return name
		}
		for candidate := range envs {
			if strings.EqualFold(candidate, name) {
				return candidate
			}
		}
	}
	return ""
}

// Names lists the set's environment names sorted for stable menus.
func (e EnvironmentSet) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
