package vars

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/restbench/internal/errdef"
)

const dotEnvDefaultName = "default"

// environmentKey names the reserved dotenv key that labels the
// environment a file defines, so files can be renamed freely.
const environmentKey = "environment"

type quoteMode int

const (
	quoteModeNone quoteMode = iota
	quoteModeSingle
	quoteModeDouble
)

// IsDotEnvPath reports whether path looks like a dotenv file. JSON and
// YAML environment files share the ".env.*" naming family, so those
// extensions are excluded explicitly.
func IsDotEnvPath(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return false
	}
	if base == ".env" || strings.HasPrefix(base, ".env.") {
		return true
	}
	return strings.HasSuffix(base, ".env")
}

func loadDotEnvEnvironment(path string) (envs EnvironmentSet, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "open env file %s", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errdef.Wrap(errdef.CodeFilesystem, closeErr, "close env file %s", path)
		}
	}()

	values, err := parseDotEnv(f, path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(values[environmentKey])
	delete(values, environmentKey)
	if name == "" {
		name = dotEnvNameFromPath(path)
	}
	return EnvironmentSet{name: values}, nil
}

func parseDotEnv(r io.Reader, path string) (map[string]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	values := make(map[string]string)
	labelSeen := false
	line := 0
	for scanner.Scan() {
		// keys expand in file order, so a reference can only see keys
		// defined above it
		line++
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' {
			continue
		}

		key, rawValue, err := splitAssignment(trimmed, line)
		if err != nil {
			return nil, err
		}

		value, mode, err := scanValue(rawValue, line)
		if err != nil {
			return nil, err
		}
		if mode != quoteModeSingle {
			// single quoted values stay literal, '${TOKEN}' never expands
			value, err = expandReferences(value, values, line)
			if err != nil {
				return nil, err
			}
		}

		if strings.EqualFold(key, environmentKey) {
			if labelSeen {
				return nil, errdef.New(
					errdef.CodeParse,
					"dotenv line %d: environment defined multiple times",
					line,
				)
			}
			labelSeen = true
			key = environmentKey
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read env file %s", path)
	}
	return values, nil
}

func splitAssignment(line string, lineNumber int) (string, string, error) {
	if lower := strings.ToLower(line); strings.HasPrefix(lower, "export ") ||
		strings.HasPrefix(lower, "export\t") {
		line = strings.TrimSpace(line[len("export"):])
	}

	idx := strings.IndexRune(line, '=')
	if idx < 0 {
		return "", "", errdef.New(
			errdef.CodeParse,
			"dotenv line %d: expected KEY=value",
			lineNumber,
		)
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" {
		return "", "", errdef.New(errdef.CodeParse, "dotenv line %d: missing key", lineNumber)
	}
	return key, line[idx+1:], nil
}

func scanValue(raw string, lineNumber int) (string, quoteMode, error) {
	raw = strings.TrimLeft(raw, " \t")
	if raw == "" {
		return "", quoteModeNone, nil
	}
	switch raw[0] {
	case '"':
		value, err := scanQuoted(raw, quoteModeDouble, lineNumber)
		return value, quoteModeDouble, err
	case '\'':
		value, err := scanQuoted(raw, quoteModeSingle, lineNumber)
		return value, quoteModeSingle, err
	default:
		return trimInlineComment(raw), quoteModeNone, nil
	}
}

func scanQuoted(input string, mode quoteMode, lineNumber int) (string, error) {
	quote := byte('"')
	if mode == quoteModeSingle {
		quote = '\''
	}

	var b strings.Builder
	for i := 1; i < len(input); i++ {
		ch := input[i]
		if ch == '\\' {
			if i+1 >= len(input) {
				return "", errdef.New(
					errdef.CodeParse,
					"dotenv line %d: unfinished escape",
					lineNumber,
				)
			}
			i++
			if mode == quoteModeDouble {
				b.WriteByte(unescapeDouble(input[i]))
			} else {
				b.WriteByte(input[i])
			}
			continue
		}
		if ch == quote {
			rest := strings.TrimSpace(input[i+1:])
			if rest != "" && rest[0] != '#' && rest[0] != ';' {
				return "", errdef.New(
					errdef.CodeParse,
					"dotenv line %d: unexpected content after quoted value",
					lineNumber,
				)
			}
			return b.String(), nil
		}
		b.WriteByte(ch)
	}
	return "", errdef.New(errdef.CodeParse, "dotenv line %d: unterminated quoted value", lineNumber)
}

func trimInlineComment(value string) string {
	afterSpace := false
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case ' ', '\t':
			afterSpace = true
		case '#', ';':
			if i == 0 || afterSpace {
				return strings.TrimSpace(value[:i])
			}
			afterSpace = false
		default:
			afterSpace = false
		}
	}
	return strings.TrimSpace(value)
}

// expandReferences substitutes $NAME and ${NAME} against keys parsed so
// far, falling back to the process environment. One pass only; results
// are never re-expanded.
func expandReferences(value string, resolved map[string]string, lineNumber int) (string, error) {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch == '\\' && i+1 < len(value) && value[i+1] == '$' {
			b.WriteByte('$')
			i++
			continue
		}
		if ch != '$' || i+1 >= len(value) {
			b.WriteByte(ch)
			continue
		}
		if value[i+1] == '{' {
			end := strings.IndexByte(value[i+2:], '}')
			if end < 0 {
				return "", errdef.New(
					errdef.CodeParse,
					"dotenv line %d: missing closing brace for ${",
					lineNumber,
				)
			}
			end += i + 2
			name := strings.TrimSpace(value[i+2 : end])
			if name == "" {
				return "", errdef.New(
					errdef.CodeParse,
					"dotenv line %d: empty variable name",
					lineNumber,
				)
			}
			replacement, err := lookupReference(name, resolved, lineNumber)
			if err != nil {
				return "", err
			}
			b.WriteString(replacement)
			i = end
			continue
		}
		if isNameByte(value[i+1]) {
			j := i + 1
			for j < len(value) && isNameByte(value[j]) {
				j++
			}
			replacement, err := lookupReference(value[i+1:j], resolved, lineNumber)
			if err != nil {
				return "", err
			}
			b.WriteString(replacement)
			i = j - 1
			continue
		}
		b.WriteByte(ch)
	}
	return b.String(), nil
}

func lookupReference(name string, resolved map[string]string, lineNumber int) (string, error) {
	if value, ok := resolved[name]; ok {
		return value, nil
	}
	// OS environment fallback keeps secrets out of checked-in env files
	if value, ok := os.LookupEnv(name); ok {
		return value, nil
	}
	if value, ok := os.LookupEnv(strings.ToUpper(name)); ok {
		return value, nil
	}
	return "", errdef.New(
		errdef.CodeParse,
		"dotenv line %d: variable %q is not defined",
		lineNumber,
		name,
	)
}

func isNameByte(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	}
	return ch == '_'
}

func unescapeDouble(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case '0':
		return 0
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	default:
		return ch
	}
}

func dotEnvNameFromPath(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	switch {
	case lower == ".env":
		return dotEnvDefaultName
	case strings.HasPrefix(lower, ".env.") && len(base) > len(".env."):
		return strings.TrimSpace(base[len(".env."):])
	case strings.HasSuffix(lower, ".env") && len(base) > len(".env"):
		return strings.TrimSpace(base[:len(base)-len(".env")])
	}
	stem := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		return dotEnvDefaultName
	}
	return stem
}
