package workspace

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/restbench/internal/errdef"
)

// Load reads a workspace file. Persistence is one-way: the workbench
// never writes the file back, edits live in memory for the session.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read workspace %s", path)
	}
	return Decode(data, path)
}

// Decode parses workspace YAML and normalizes it: missing request and
// collection IDs are generated, methods are uppercased, the active
// environment names must exist when set.
func Decode(data []byte, path string) (*Workspace, error) {
	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "parse workspace %s", path)
	}
	if err := normalize(&ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func normalize(ws *Workspace) error {
	if ws.ActiveEnvironment != "" && ws.globalEnvironment(ws.ActiveEnvironment) == nil {
		return errdef.New(
			errdef.CodeWorkspace,
			"active environment %q is not defined",
			ws.ActiveEnvironment,
		)
	}
	seen := make(map[string]struct{})
	for _, col := range ws.Collections {
		if col.ID == "" {
			col.ID = uuid.NewString()
		}
		if _, dup := seen[col.ID]; dup {
			return errdef.New(errdef.CodeWorkspace, "duplicate collection id %q", col.ID)
		}
		seen[col.ID] = struct{}{}

		if col.ActiveEnvironment != "" && col.environment(col.ActiveEnvironment) == nil {
			return errdef.New(
				errdef.CodeWorkspace,
				"collection %s: active environment %q is not defined",
				col.Name,
				col.ActiveEnvironment,
			)
		}
		for _, req := range col.Requests {
			if req.ID == "" {
				req.ID = uuid.NewString()
			}
			req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
			if req.Method == "" {
				req.Method = "GET"
			}
		}
	}
	return nil
}
