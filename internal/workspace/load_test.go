package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unkn0wn-root/restbench/internal/errdef"
)

const workspaceFixture = `
globals:
  - name: dev
    vars:
      host: localhost
active: dev
collections:
  - name: Payments
    vars:
      base: /v1
    environments:
      - name: staging
        vars:
          base: /v1-stage
    requests:
      - name: List charges
        method: get
        url: "https://{{host}}{{base}}/charges"
        headers:
          - name: Accept
            value: application/json
`

func TestLoadWorkspace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(workspaceFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ws, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ws.Collections) != 1 {
		t.Fatalf("collections = %d, want 1", len(ws.Collections))
	}
	col := ws.Collections[0]
	if col.ID == "" {
		t.Fatalf("collection id was not generated")
	}
	req := col.Requests[0]
	if req.ID == "" {
		t.Fatalf("request id was not generated")
	}
	if req.Method != "GET" {
		t.Fatalf("method = %q, want normalized GET", req.Method)
	}
}

func TestLoadWorkspaceMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if code := errdef.CodeOf(err); code != errdef.CodeFilesystem {
		t.Fatalf("code = %q, want filesystem", code)
	}
}

func TestDecodeRejectsUnknownActive(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("active: prod\n"), "bench.yaml")
	if err == nil {
		t.Fatalf("expected error for undefined active environment")
	}
	if code := errdef.CodeOf(err); code != errdef.CodeWorkspace {
		t.Fatalf("code = %q, want workspace", code)
	}
}

func TestDecodeRejectsDuplicateCollectionIDs(t *testing.T) {
	t.Parallel()

	doc := `
collections:
  - id: c1
    name: A
  - id: c1
    name: B
`
	if _, err := Decode([]byte(doc), "bench.yaml"); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestDecodeMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("collections: ["), "bench.yaml")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if code := errdef.CodeOf(err); code != errdef.CodeParse {
		t.Fatalf("code = %q, want parse", code)
	}
}

func TestRequestByID(t *testing.T) {
	t.Parallel()

	ws, err := Decode([]byte(workspaceFixture), "bench.yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	req := ws.Collections[0].Requests[0]
	found, col := ws.RequestByID(req.ID)
	if found != req || col != ws.Collections[0] {
		t.Fatalf("RequestByID returned %v in %v", found, col)
	}
	if missing, _ := ws.RequestByID("nope"); missing != nil {
		t.Fatalf("expected nil for unknown id")
	}
}
