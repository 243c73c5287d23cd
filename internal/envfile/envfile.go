// Package envfile reads .env-style override files. Each assignment becomes an
// upper-case option key, so values merge with the env-style rules of the
// options package.
package envfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/conn-castle/multiconf/internal/messages"
	"github.com/conn-castle/multiconf/internal/options"
)

// Entry is a single KEY=value assignment.
type Entry struct {
	Key   string
	Value string
	Line  int
}

// Overrides is every assignment in a file, in file order. A key assigned
// twice appears twice.
type Overrides []Entry

// Sources returns one single-key options hash per assignment, in file order,
// for use as options.Merge sources. Merging them applies each assignment
// where it appears, so later assignments win.
func (o Overrides) Sources() []options.Map {
	sources := make([]options.Map, 0, len(o))
	for _, entry := range o {
		sources = append(sources, options.Map{entry.Key: entry.Value})
	}
	return sources
}

// Parse reads .env content into ordered overrides.
func Parse(content string) (Overrides, error) {
	var overrides Overrides

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, ok, err := parseAssignment(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		entry.Line = lineNo
		overrides = append(overrides, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}
	return overrides, nil
}

// parseAssignment parses one line; ok is false for blank and comment lines.
func parseAssignment(line string) (Entry, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Entry{}, false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))

	key, raw, found := strings.Cut(trimmed, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return Entry{}, false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	value, err := unquote(strings.TrimSpace(raw))
	if err != nil {
		return Entry{}, false, err
	}
	return Entry{Key: key, Value: value}, true, nil
}

// unquote strips single or double quotes; unquoted values are returned as is.
// Double-quoted values honour \\, \", \n and \r escapes.
func unquote(value string) (string, error) {
	if value == "" || (value[0] != '"' && value[0] != '\'') {
		return value, nil
	}
	quote := value[0]

	var b strings.Builder
	for i := 1; i < len(value); i++ {
		c := value[i]
		if c == quote {
			if rest := strings.TrimSpace(value[i+1:]); rest != "" && !strings.HasPrefix(rest, "#") {
				return "", fmt.Errorf(messages.EnvfileInvalidQuotedSuffix)
			}
			return b.String(), nil
		}
		if quote == '"' && c == '\\' && i+1 < len(value) {
			switch value[i+1] {
			case '\\', '"':
				b.WriteByte(value[i+1])
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 'r':
				b.WriteByte('\r')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return "", fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
}
