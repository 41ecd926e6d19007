package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

type SettingsFormat string

const (
	SettingsFormatTOML SettingsFormat = "toml"
	SettingsFormatJSON SettingsFormat = "json"
)

// Settings are the startup knobs the workbench reads: the palette
// flavor ("auto" follows the terminal background, "dark" and "light"
// force one) and the form/preview split.
type Settings struct {
	Theme  string         `json:"theme"  toml:"theme"`
	Layout LayoutSettings `json:"layout" toml:"layout"`
}

func DefaultSettings() Settings {
	return Settings{Theme: "auto", Layout: DefaultLayoutSettings()}
}

// SettingsHandle remembers where settings came from so a later save
// rewrites the same file in the same format. OnDisk reports whether the
// file existed at load time; a fresh install gets defaults and a handle
// pointing at the preferred TOML path.
type SettingsHandle struct {
	Path   string
	Format SettingsFormat
	OnDisk bool
}

type settingsCodec struct {
	file   string
	format SettingsFormat
	decode func(data []byte, into *Settings) error
	encode func(settings Settings) ([]byte, error)
}

// Ordered by preference: the first codec's file is what a fresh
// install gets seeded with.
var settingsCodecs = []settingsCodec{
	{
		file:   "settings.toml",
		format: SettingsFormatTOML,
		decode: func(data []byte, into *Settings) error { return toml.Unmarshal(data, into) },
		encode: func(settings Settings) ([]byte, error) { return toml.Marshal(settings) },
	},
	{
		file:   "settings.json",
		format: SettingsFormatJSON,
		decode: func(data []byte, into *Settings) error {
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			return dec.Decode(into)
		},
		encode: func(settings Settings) ([]byte, error) {
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetIndent("", "  ")
			if err := enc.Encode(settings); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	},
}

func codecFor(format SettingsFormat) (settingsCodec, bool) {
	for _, codec := range settingsCodecs {
		if codec.format == format {
			return codec, true
		}
	}
	return settingsCodec{}, false
}

// LoadSettings reads the first settings file present under Dir(), TOML
// before JSON. Keys absent from the file keep their defaults, so a
// settings file that only sets the theme still gets a sane split. A
// file that exists but will not parse is fatal; one that cannot be
// read is reported only if no later candidate loads.
func LoadSettings() (Settings, SettingsHandle, error) {
	dir := Dir()

	var readErrs error
	for _, codec := range settingsCodecs {
		path := filepath.Join(dir, codec.file)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			readErrs = errors.Join(readErrs, fmt.Errorf("read settings %q: %w", path, err))
			continue
		}

		settings := DefaultSettings()
		if err := codec.decode(data, &settings); err != nil {
			return Settings{}, SettingsHandle{}, fmt.Errorf("parse settings %q: %w", path, err)
		}
		settings.Layout = NormaliseLayoutSettings(settings.Layout)
		return settings, SettingsHandle{Path: path, Format: codec.format, OnDisk: true}, nil
	}

	if readErrs != nil {
		return Settings{}, SettingsHandle{}, readErrs
	}

	preferred := settingsCodecs[0]
	return DefaultSettings(), SettingsHandle{
		Path:   filepath.Join(dir, preferred.file),
		Format: preferred.format,
	}, nil
}

// SaveSettings writes settings back through the handle; a zero handle
// targets the preferred TOML path. The write goes through a temp file
// and rename so a crash never leaves a half-written settings file.
func SaveSettings(settings Settings, handle SettingsHandle) error {
	settings.Layout = NormaliseLayoutSettings(settings.Layout)

	if handle.Format == "" {
		handle.Format = SettingsFormatTOML
	}
	codec, ok := codecFor(handle.Format)
	if !ok {
		return fmt.Errorf("unsupported settings format %q", handle.Format)
	}
	if handle.Path == "" {
		handle.Path = filepath.Join(Dir(), codec.file)
	}

	data, err := codec.encode(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(handle.Path), 0o755); err != nil {
		return fmt.Errorf("ensure settings directory: %w", err)
	}
	if err := replaceFile(handle.Path, data); err != nil {
		return fmt.Errorf("write settings %q: %w", handle.Path, err)
	}
	return nil
}

func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".restbench-settings-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	_, werr := tmp.Write(data)
	if werr == nil {
		werr = tmp.Chmod(0o644)
	}
	if cerr := tmp.Close(); werr != nil {
		werr = errors.Join(werr, cerr)
	} else {
		werr = cerr
	}
	if werr != nil {
		return werr
	}
	return os.Rename(tmpPath, path)
}
