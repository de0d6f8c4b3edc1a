// Package curie provides the prefix-resolution context used to expand
// compact identifiers (CURIEs) into full URIs and compress URIs back into
// short form for display.
//
// A ContextMap is loaded once, either from a JSON-LD document carrying an
// "@context" mapping or from explicit prefix/base pairs, and is immutable
// afterwards. All graph nodes and annotation term references are keyed by
// full URI internally; prefixed forms are surface syntax only.
package curie

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/obokit/gafcheck/errors"
	"github.com/obokit/gafcheck/vocabulary"
)

// ContextMap maps CURIE prefixes to base URIs. Immutable after construction.
type ContextMap struct {
	prefixToBase map[string]string

	// bases sorted longest-first so Compress picks the longest match
	bases []baseEntry
}

type baseEntry struct {
	base   string
	prefix string
}

// DefaultPairs returns the prefix/base pairs every context starts from.
// GO annotation data always references these identifier spaces.
func DefaultPairs() map[string]string {
	return map[string]string{
		"GO":     vocabulary.GOBase,
		"ECO":    vocabulary.ECOBase,
		"RO":     vocabulary.ROBase,
		"BFO":    vocabulary.BFOBase,
		"GO_REL": vocabulary.GORELBase,
	}
}

// NewContextMap builds a ContextMap from prefix/base pairs. A prefix that
// appears more than once with conflicting bases is rejected with
// ErrDuplicatePrefix.
func NewContextMap(pairs map[string]string) (*ContextMap, error) {
	cm := &ContextMap{prefixToBase: make(map[string]string, len(pairs))}
	for prefix, base := range pairs {
		if err := cm.add(prefix, base); err != nil {
			return nil, err
		}
	}
	cm.reindex()
	return cm, nil
}

// Default returns a ContextMap carrying only the default pairs.
func Default() *ContextMap {
	cm, err := NewContextMap(DefaultPairs())
	if err != nil {
		// Default pairs have unique prefixes.
		panic(err)
	}
	return cm
}

// LoadFile loads a JSON-LD context document and merges its "@context"
// mapping over the default pairs. Keys starting with "@" are JSON-LD
// keywords and are skipped; every other value must be a string base URI.
func LoadFile(path string) (*ContextMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "curie", "LoadFile", "read context document")
	}
	return Parse(data)
}

// Parse decodes a JSON-LD context document into a ContextMap.
func Parse(data []byte) (*ContextMap, error) {
	var doc struct {
		Context map[string]json.RawMessage `json:"@context"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapFatal(err, "curie", "Parse", "decode context document")
	}
	if doc.Context == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("missing @context key"), "curie", "Parse", "decode context document")
	}

	cm := &ContextMap{prefixToBase: make(map[string]string, len(doc.Context))}
	for prefix, base := range DefaultPairs() {
		if err := cm.add(prefix, base); err != nil {
			return nil, err
		}
	}
	for prefix, raw := range doc.Context {
		if strings.HasPrefix(prefix, "@") {
			continue
		}
		var base string
		if err := json.Unmarshal(raw, &base); err != nil {
			return nil, errors.WrapFatal(
				fmt.Errorf("value of prefix %q is not a string", prefix),
				"curie", "Parse", "decode context document")
		}
		if err := cm.add(prefix, base); err != nil {
			return nil, err
		}
	}
	cm.reindex()
	return cm, nil
}

func (cm *ContextMap) add(prefix, base string) error {
	if existing, ok := cm.prefixToBase[prefix]; ok && existing != base {
		return errors.WrapFatal(
			fmt.Errorf("prefix %q maps to both %q and %q: %w",
				prefix, existing, base, errors.ErrDuplicatePrefix),
			"curie", "add", "register prefix")
	}
	cm.prefixToBase[prefix] = base
	return nil
}

// reindex rebuilds the longest-first base index used by Compress.
func (cm *ContextMap) reindex() {
	cm.bases = cm.bases[:0]
	for prefix, base := range cm.prefixToBase {
		cm.bases = append(cm.bases, baseEntry{base: base, prefix: prefix})
	}
	sort.Slice(cm.bases, func(i, j int) bool {
		if len(cm.bases[i].base) != len(cm.bases[j].base) {
			return len(cm.bases[i].base) > len(cm.bases[j].base)
		}
		return cm.bases[i].base < cm.bases[j].base
	})
}

// Len returns the number of registered prefixes.
func (cm *ContextMap) Len() int {
	return len(cm.prefixToBase)
}

// Base returns the base URI registered for a prefix.
func (cm *ContextMap) Base(prefix string) (string, bool) {
	base, ok := cm.prefixToBase[prefix]
	return base, ok
}

// Expand converts a CURIE of the form PREFIX:LOCAL to a full URI. The local
// part may itself contain colons (e.g., MGI:MGI:98961 expands under prefix
// MGI with local MGI:98961).
func (cm *ContextMap) Expand(curie string) (string, error) {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok || prefix == "" || local == "" {
		return "", errors.WrapRecord(
			fmt.Errorf("curie %q must take the form Prefix:Local", curie),
			"curie", "Expand", "split curie")
	}
	base, found := cm.prefixToBase[prefix]
	if !found {
		return "", fmt.Errorf("expand %q: prefix %q: %w", curie, prefix, errors.ErrUnknownPrefix)
	}
	return base + local, nil
}

// Compress converts a full URI back to PREFIX:LOCAL using the longest
// matching base. A URI with no matching base is returned unchanged.
func (cm *ContextMap) Compress(uri string) string {
	for _, entry := range cm.bases {
		if rest, ok := strings.CutPrefix(uri, entry.base); ok && rest != "" {
			return entry.prefix + ":" + rest
		}
	}
	return uri
}
