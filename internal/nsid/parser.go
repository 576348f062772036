package nsid

import (
	"regexp"
	"strings"

	"github.com/vk/gomlgo/internal/errors"
)

// segmentRegex accepts a single name or namespace segment.
var segmentRegex = regexp.MustCompile(`^[^\s.]+$`)

// Split breaks a raw name into its namespace and name parts without
// normalization. A bare name yields an empty namespace.
func Split(raw string) (namespace, name string) {
	i := strings.LastIndexByte(raw, '.')
	if i < 0 {
		return "", raw
	}
	return raw[:i], raw[i+1:]
}

// Parse creates an Identity from a fully-qualified or bare name.
func Parse(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, errors.New("identifier cannot be empty")
	}

	namespace, name := Split(raw)
	if !segmentRegex.MatchString(name) {
		return Identity{}, errors.Newf("invalid name segment in %q", raw)
	}
	if namespace != "" {
		for _, segment := range strings.Split(namespace, ".") {
			if !segmentRegex.MatchString(segment) {
				return Identity{}, errors.Newf("invalid namespace segment %q in %q", segment, raw)
			}
		}
	} else if strings.HasPrefix(raw, ".") {
		return Identity{}, errors.Newf("identifier %q has an empty namespace", raw)
	}

	return New(namespace, name), nil
}

// MustParse is like Parse but panics on error. Intended for declarations
// written in Go source.
func MustParse(raw string) Identity {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseAll parses every raw name, stopping at the first failure.
func ParseAll(raws []string) ([]Identity, error) {
	ids := make([]Identity, 0, len(raws))
	for _, raw := range raws {
		id, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
