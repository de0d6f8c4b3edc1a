package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obokit/gafcheck/vocabulary"
)

func TestParseAspect(t *testing.T) {
	tests := []struct {
		input   string
		want    Aspect
		wantErr bool
	}{
		{input: "P", want: AspectProcess},
		{input: "F", want: AspectFunction},
		{input: "C", want: AspectComponent},
		{input: "p", wantErr: true},
		{input: "", wantErr: true},
		{input: "PF", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAspect(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAspectNamespaceRoundTrip(t *testing.T) {
	for _, aspect := range []Aspect{AspectProcess, AspectFunction, AspectComponent} {
		back, ok := AspectForNamespace(aspect.Namespace())
		require.True(t, ok, "namespace %q", aspect.Namespace())
		assert.Equal(t, aspect, back)
	}

	assert.Equal(t, vocabulary.NamespaceBiologicalProcess, AspectProcess.Namespace())

	_, ok := AspectForNamespace("external")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("20240115")
	require.NoError(t, err)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, 15, date.Day())
	assert.Equal(t, "20240115", FormatDate(date))

	for _, bad := range []string{"", "2024-01-15", "202401", "2024011x"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseTaxa(t *testing.T) {
	taxa, err := ParseTaxa("taxon:9606")
	require.NoError(t, err)
	assert.Equal(t, []int{9606}, taxa)

	taxa, err = ParseTaxa("taxon:9606|taxon:10090")
	require.NoError(t, err)
	assert.Equal(t, []int{9606, 10090}, taxa)
	assert.Equal(t, "taxon:9606|taxon:10090", FormatTaxa(taxa))

	for _, bad := range []string{"", "9606", "taxon:", "taxon:-5", "taxon:abc", "taxon:1|taxon:2|taxon:3"} {
		_, err := ParseTaxa(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"NOT"}, splitList("NOT"))
	assert.Equal(t, []string{"a", "b"}, splitList("a|b"))
}
