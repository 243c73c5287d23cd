package options

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conn-castle/multiconf/internal/messages"
)

// ErrUpperCaseObject reports an upper-case (env-style) key carrying a map value.
var ErrUpperCaseObject = errors.New("upper-case key with object value")

// ErrParse reports a value that cannot be coerced to the type already present
// at its destination.
var ErrParse = errors.New("option value cannot be parsed")

// MergeFunc merges any number of sources into dst, left to right.
type MergeFunc func(dst Map, sources ...Map) (Map, error)

var (
	nonWord    = regexp.MustCompile(`\W`)
	trueString = regexp.MustCompile(`^\s*true\s*$`)
	leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)
)

// Merge assigns every source into dst, left to right, and returns dst.
//
// Keys that are entirely upper-case are treated like environment variables:
// "SOME_PROP" addresses "someProp" and "OUTER__INNER_KEY" addresses the nested
// path outer.innerKey. Other keys recurse into maps. Scalar values are coerced
// to the type of any value already present at the destination.
func Merge(dst Map, sources ...Map) (Map, error) {
	if dst == nil {
		dst = Map{}
	}
	for _, source := range sources {
		if err := mergeInto(dst, source); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

var _ MergeFunc = Merge

func mergeInto(dst Map, source Map) error {
	keys := make([]string, 0, len(source))
	for key := range source {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := source[key]
		nested, isObject := asMap(value)

		switch {
		case strings.ToUpper(key) == key:
			if isObject {
				return fmt.Errorf("%w: "+messages.OptionsUpperCaseObjectFmt, ErrUpperCaseObject, key)
			}
			path := KeyPath(key)
			if len(path) == 0 {
				continue
			}
			existing, _ := lookup(dst, path)
			parsed, err := coerce(strings.Join(path, "."), value, existing)
			if err != nil {
				return err
			}
			assign(dst, path, parsed)
		case isObject:
			target, ok := asMap(dst[key])
			if !ok {
				target = Map{}
			}
			if err := mergeInto(target, nested); err != nil {
				return err
			}
			dst[key] = target
		default:
			parsed, err := coerce(key, value, dst[key])
			if err != nil {
				return err
			}
			dst[key] = parsed
		}
	}
	return nil
}

// KeyPath decodes an env-style key into a camel-case property path.
// Double underscores delimit path elements.
func KeyPath(key string) []string {
	var path []string
	for _, element := range strings.Split(nonWord.ReplaceAllString(key, ""), "__") {
		if element == "" {
			continue
		}
		path = append(path, camelCase(element))
	}
	return path
}

// camelCase converts "SOME_PROP" to "someProp".
func camelCase(text string) string {
	if len(text) < 2 {
		return strings.ToLower(text)
	}
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == '_' || r == '-'
	})
	if len(words) == 0 {
		return ""
	}
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(lower.String(words[0]))
	for _, word := range words[1:] {
		b.WriteString(title.String(lower.String(word)))
	}
	return b.String()
}

func asMap(value any) (Map, bool) {
	m, ok := value.(map[string]any)
	return m, ok && m != nil
}

func lookup(m Map, path []string) (any, bool) {
	var current any = m
	for _, element := range path {
		node, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = node[element]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func assign(m Map, path []string, value any) {
	node := m
	for _, element := range path[:len(path)-1] {
		next, ok := asMap(node[element])
		if !ok {
			next = Map{}
			node[element] = next
		}
		node = next
	}
	node[path[len(path)-1]] = value
}

// coerce parses value to the dynamic type of existing. Values without an
// existing counterpart, or whose counterpart is not a scalar, pass through.
func coerce(key string, value any, existing any) (any, error) {
	if existing == nil {
		return value, nil
	}
	text := fmt.Sprint(value)

	target := reflect.TypeOf(existing)
	switch target.Kind() {
	case reflect.String:
		return reflect.ValueOf(text).Convert(target).Interface(), nil
	case reflect.Bool:
		return reflect.ValueOf(trueString.MatchString(text)).Convert(target).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		match := leadingInt.FindStringSubmatch(text)
		if match == nil {
			return nil, fmt.Errorf("%w: "+messages.OptionsParseIntFmt, ErrParse, key, text)
		}
		parsed, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: "+messages.OptionsParseIntFmt, ErrParse, key, text)
		}
		if parsed < 0 && target.Kind() >= reflect.Uint && target.Kind() <= reflect.Uint64 {
			return nil, fmt.Errorf("%w: "+messages.OptionsNegativeUnsignedFmt, ErrParse, key, text)
		}
		return reflect.ValueOf(parsed).Convert(target).Interface(), nil
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: "+messages.OptionsParseFloatFmt, ErrParse, key, text)
		}
		return reflect.ValueOf(parsed).Convert(target).Interface(), nil
	default:
		return value, nil
	}
}
