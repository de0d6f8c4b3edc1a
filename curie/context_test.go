package curie

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gaferrors "github.com/obokit/gafcheck/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	cm := Default()

	uri, err := cm.Expand("GO:0005515")
	require.NoError(t, err)
	assert.Equal(t, "http://purl.obolibrary.org/obo/GO_0005515", uri)
}

func TestExpandMultiColonLocal(t *testing.T) {
	cm, err := NewContextMap(map[string]string{"MGI": "http://identifiers.org/mgi/"})
	require.NoError(t, err)

	uri, err := cm.Expand("MGI:MGI:98961")
	require.NoError(t, err)
	assert.Equal(t, "http://identifiers.org/mgi/MGI:98961", uri)
}

func TestExpandUnknownPrefix(t *testing.T) {
	cm := Default()

	_, err := cm.Expand("WB:WBGene001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrUnknownPrefix))
}

func TestExpandMalformed(t *testing.T) {
	cm := Default()

	for _, curie := range []string{"", "GO", ":12345", "GO:"} {
		_, err := cm.Expand(curie)
		assert.Error(t, err, "curie %q should not expand", curie)
	}
}

func TestCompress(t *testing.T) {
	cm := Default()

	assert.Equal(t, "GO:0008150", cm.Compress("http://purl.obolibrary.org/obo/GO_0008150"))
	assert.Equal(t, "ECO:0000315", cm.Compress("http://purl.obolibrary.org/obo/ECO_0000315"))
}

func TestCompressNoMatch(t *testing.T) {
	cm := Default()

	uri := "http://example.org/unmapped/123"
	assert.Equal(t, uri, cm.Compress(uri))
}

func TestCompressLongestMatch(t *testing.T) {
	cm, err := NewContextMap(map[string]string{
		"OBO": "http://purl.obolibrary.org/obo/",
		"GO":  "http://purl.obolibrary.org/obo/GO_",
	})
	require.NoError(t, err)

	// GO_ is the longer base, so GO wins over OBO.
	assert.Equal(t, "GO:0008150", cm.Compress("http://purl.obolibrary.org/obo/GO_0008150"))
}

func TestExpandCompressRoundTrip(t *testing.T) {
	cm := Default()

	for _, curie := range []string{"GO:0005515", "ECO:0000307", "RO:0002331"} {
		uri, err := cm.Expand(curie)
		require.NoError(t, err)
		assert.Equal(t, curie, cm.Compress(uri))
	}
}

func TestParseContextDocument(t *testing.T) {
	doc := []byte(`{
		"@context": {
			"@version": 1.1,
			"MGI": "http://identifiers.org/mgi/",
			"PMID": "http://www.ncbi.nlm.nih.gov/pubmed/"
		}
	}`)

	cm, err := Parse(doc)
	require.NoError(t, err)

	uri, err := cm.Expand("PMID:21670302")
	require.NoError(t, err)
	assert.Equal(t, "http://www.ncbi.nlm.nih.gov/pubmed/21670302", uri)

	// Defaults are still present.
	_, err = cm.Expand("GO:0008150")
	assert.NoError(t, err)
}

func TestParseMissingContextKey(t *testing.T) {
	_, err := Parse([]byte(`{"prefixes": {}}`))
	require.Error(t, err)
	assert.True(t, gaferrors.IsFatal(err))
}

func TestParseNonStringValue(t *testing.T) {
	_, err := Parse([]byte(`{"@context": {"GO": {"@id": "x"}}}`))
	require.Error(t, err)
	assert.True(t, gaferrors.IsFatal(err))
}

func TestDuplicatePrefixConflict(t *testing.T) {
	// Redefining GO with a different base conflicts with the defaults.
	_, err := Parse([]byte(`{"@context": {"GO": "http://example.org/go/"}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrDuplicatePrefix))

	// Redefining GO with the identical base is harmless.
	_, err = Parse([]byte(`{"@context": {"GO": "http://purl.obolibrary.org/obo/GO_"}}`))
	assert.NoError(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "context.jsonld")
	require.NoError(t, os.WriteFile(path, []byte(`{"@context": {"WB": "http://identifiers.org/wb/"}}`), 0o644))

	cm, err := LoadFile(path)
	require.NoError(t, err)

	uri, err := cm.Expand("WB:WBGene001")
	require.NoError(t, err)
	assert.Equal(t, "http://identifiers.org/wb/WBGene001", uri)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.jsonld"))
	require.Error(t, err)
	assert.True(t, gaferrors.IsFatal(err))
}

func TestRelationLabels(t *testing.T) {
	uri, ok := LabelURI("occurs_in")
	require.True(t, ok)
	assert.Equal(t, "http://purl.obolibrary.org/obo/BFO_0000066", uri)

	label, ok := URILabel(uri)
	require.True(t, ok)
	assert.Equal(t, "occurs_in", label)

	_, ok = LabelURI("definitely_not_a_relation")
	assert.False(t, ok)
}
