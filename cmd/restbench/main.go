package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/restbench/internal/bindings"
	"github.com/unkn0wn-root/restbench/internal/config"
	"github.com/unkn0wn-root/restbench/internal/errdef"
	"github.com/unkn0wn-root/restbench/internal/rtfmt"
	"github.com/unkn0wn-root/restbench/internal/theme"
	"github.com/unkn0wn-root/restbench/internal/ui"
	"github.com/unkn0wn-root/restbench/internal/vars"
	"github.com/unkn0wn-root/restbench/internal/workspace"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var usageText = heredoc.Doc(`
	restbench - a variable-aware request workbench for the terminal

	Usage:
	  restbench [flags] [workspace.yaml]

	Flags:
	  -file path        Workspace YAML with collections, requests and environments
	  -env name         Global environment to activate at startup
	  -env-file path    Extra environment file (.env, *.env.json, *.env.yaml)
	  -collection id    Collection to open
	  -request id       Request to open
	  -version          Print version and exit

	Placeholders like {{host}}, {{collection.apiKey}} or {{$uuid}} in the
	request form resolve live against the active environments.
`)

func main() {
	var (
		filePath     string
		envName      string
		envFile      string
		collectionID string
		requestID    string
		showVersion  bool
	)

	flag.StringVar(&filePath, "file", "", "Path to workspace YAML")
	flag.StringVar(&envName, "env", "", "Environment name to use")
	flag.StringVar(&envFile, "env-file", "", "Path to environment file")
	flag.StringVar(&collectionID, "collection", "", "Collection id to open")
	flag.StringVar(&requestID, "request", "", "Request id to open")
	flag.BoolVar(&showVersion, "version", false, "Show restbench version")
	flag.Usage = func() {
		_ = rtfmt.Fprintln(
			os.Stderr,
			rtfmt.LogHandler(log.Printf, "usage write failed: %v"),
			usageText,
		)
	}
	flag.Parse()

	if showVersion {
		_ = rtfmt.Fprintf(
			os.Stdout,
			"restbench %s (commit %s, built %s)\n",
			rtfmt.LogHandler(log.Printf, "version write failed: %v"),
			version,
			commit,
			date,
		)
		return
	}

	if filePath == "" && flag.NArg() > 0 {
		filePath = flag.Arg(0)
	}

	ws := loadWorkspace(filePath)

	if envSet := loadEnvironments(envFile, filePath); len(envSet) > 0 {
		ws.AttachEnvironments(envSet)
	}
	applyStartupEnvironment(ws, envName)

	settings := loadOrSeedSettings()

	bindingMap, _, bindingErr := bindings.Load(config.Dir())
	if bindingErr != nil {
		log.Printf("bindings load error: %v", bindingErr)
		bindingMap = bindings.DefaultMap()
	}

	model := ui.New(ui.Config{
		Workspace:    ws,
		Theme:        pickTheme(settings.Theme),
		CollectionID: collectionID,
		RequestID:    requestID,
		Bindings:     bindingMap,
		FormSplit:    settings.Layout.FormSplit,
		Version:      version,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		log.Fatalf("restbench: %v", err)
	}
}

// loadOrSeedSettings loads the settings file and, on a first run with
// no file present, writes the defaults back so the knobs are
// discoverable without reading docs. Settings problems never stop
// startup.
func loadOrSeedSettings() config.Settings {
	settings, handle, err := config.LoadSettings()
	if err != nil {
		log.Printf("settings load error: %v", err)
		return config.DefaultSettings()
	}
	if !handle.OnDisk {
		if err := config.SaveSettings(settings, handle); err != nil {
			log.Printf("settings seed error: %v", err)
		}
	}
	return settings
}

// loadWorkspace reads the named file, falls back to discovery in the
// working directory, and finally to a built-in sample so the workbench
// always has something to edit.
func loadWorkspace(path string) *workspace.Workspace {
	if path != "" {
		ws, err := workspace.Load(path)
		if err != nil {
			log.Fatalf("load workspace: %v", err)
		}
		return ws
	}
	for _, candidate := range []string{"restbench.yaml", "restbench.yml", "workspace.yaml"} {
		ws, err := workspace.Load(candidate)
		if err == nil {
			return ws
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("load workspace %s: %v", candidate, err)
		}
	}
	return sampleWorkspace()
}

// loadEnvironments merges an explicit -env-file with whatever
// discovery finds next to the workspace file.
func loadEnvironments(envFile, workspacePath string) vars.EnvironmentSet {
	merged := vars.EnvironmentSet{}
	if envFile != "" {
		set, err := vars.LoadEnvironmentFile(envFile)
		if err != nil {
			log.Fatalf("load environment file: %v", err)
		}
		for name, values := range set {
			merged[name] = values
		}
	}

	searchPaths := []string{"."}
	if workspacePath != "" {
		searchPaths = append([]string{filepath.Dir(workspacePath)}, searchPaths...)
	}
	// Discovery reports "nothing found" as a filesystem error; only a
	// file that exists but fails to parse is worth telling the user
	// about.
	discovered, _, err := vars.ResolveEnvironment(searchPaths)
	if err != nil && errdef.CodeOf(err) == errdef.CodeParse {
		log.Printf("environment discovery: %v", err)
	}
	for name, values := range discovered {
		if _, taken := merged[name]; !taken {
			merged[name] = values
		}
	}
	return merged
}

func applyStartupEnvironment(ws *workspace.Workspace, envName string) {
	if envName != "" {
		if err := ws.SetActiveEnvironment(envName); err != nil {
			log.Fatalf("%v (have: %s)", err, strings.Join(ws.EnvironmentNames(), ", "))
		}
		return
	}
	if ws.ActiveEnvironment == "" {
		if names := ws.EnvironmentNames(); len(names) > 0 {
			ws.ActiveEnvironment = names[0]
		}
	}
}

func pickTheme(name string) theme.Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return theme.DarkTheme()
	case "light":
		return theme.LightTheme()
	default:
		return theme.DefaultTheme()
	}
}

// sampleWorkspace seeds a first run with enough variables to show the
// interpolation machinery working.
func sampleWorkspace() *workspace.Workspace {
	return &workspace.Workspace{
		Environments: []workspace.Environment{
			{Name: "dev", Vars: map[string]string{
				"host":  "localhost:8080",
				"token": "dev-token",
			}},
			{Name: "prod", Vars: map[string]string{
				"host":  "api.example.com",
				"token": "",
			}},
		},
		ActiveEnvironment: "dev",
		Collections: []*workspace.Collection{
			{
				ID:   "sample",
				Name: "Sample API",
				Vars: map[string]string{"basePath": "/v1"},
				Environments: []workspace.Environment{
					{Name: "canary", Vars: map[string]string{"basePath": "/v2"}},
				},
				Requests: []*workspace.Request{
					{
						ID:     "list-items",
						Name:   "List items",
						Method: "GET",
						URL:    "https://{{host}}{{basePath}}/items",
						Auth:   "Bearer {{token}}",
					},
					{
						ID:     "create-item",
						Name:   "Create item",
						Method: "POST",
						URL:    "https://{{host}}{{basePath}}/items",
						Headers: []workspace.Header{
							{Name: "X-Request-ID", Value: "{{$uuid}}"},
						},
						Body: "{\n  \"name\": \"example\",\n  \"owner\": \"{{$randomEmail}}\"\n}",
					},
				},
			},
		},
	}
}
