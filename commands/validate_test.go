package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obokit/gafcheck/annotation"
	"github.com/obokit/gafcheck/config"
	"github.com/obokit/gafcheck/report"
	"github.com/obokit/gafcheck/rules"
	"github.com/obokit/gafcheck/testutil"
)

func TestResolveInputs(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteGAF(t, dir, "a.gaf", "!gaf-version: 2.1")
	b := testutil.WriteGAF(t, dir, "b.gaf", "!gaf-version: 2.1")

	inputs, err := resolveInputs([]string{filepath.Join(dir, "*.gaf")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, inputs)

	inputs, err = resolveInputs([]string{a})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, inputs)

	_, err = resolveInputs([]string{filepath.Join(dir, "missing.gaf")})
	assert.Error(t, err)
}

func TestCouplingTable(t *testing.T) {
	assert.Nil(t, couplingTable(nil))

	table := couplingTable(map[string]config.CouplingConfig{
		"IEA": {Policy: "require"},
		"IDA": {Policy: "any"},
		"ISS": {Policy: "forbid", Severity: "error"},
	})
	// severity falls back to warning when the config leaves it out
	assert.Equal(t, rules.CouplingRule{Policy: rules.CouplingRequire, Severity: rules.SeverityWarning},
		table[annotation.EvidenceCode("IEA")])
	assert.Equal(t, rules.CouplingRule{Policy: rules.CouplingAny, Severity: rules.SeverityWarning},
		table[annotation.EvidenceCode("IDA")])
	assert.Equal(t, rules.CouplingRule{Policy: rules.CouplingForbid, Severity: rules.SeverityError},
		table[annotation.EvidenceCode("ISS")])
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	ontologyPath := testutil.WriteOntology(t, dir)
	gafPath := testutil.WriteGAF(t, dir, "input.gaf",
		"!gaf-version: 2.1",
		testutil.GAFLine("GO:0019900", "IPI", "UniProtKB:Q99999"), // clean
		testutil.GAFLine("GO:0000001", "IPI", "UniProtKB:Q99999"), // obsolete, repaired
		testutil.GAFLine("GO:0019900", "IPI", ""),                 // warning, still written
		testutil.GAFLine("GO:0019900", "ND", ""),                  // error, withheld
	)
	outPath := filepath.Join(dir, "corrected.gaf")
	reportPath := filepath.Join(dir, "report.json")

	// keep the loader away from any real user/project config
	t.Setenv("HOME", dir)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"validate",
		"--ontology", ontologyPath,
		"--out", outPath,
		"--report-json", reportPath,
		"--workers", "2",
		gafPath,
	})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4) // comment + clean + repaired + warned; error line withheld
	assert.Equal(t, "!gaf-version: 2.1", lines[0])
	assert.Contains(t, lines[2], "GO:0019900")
	assert.NotContains(t, lines[2], "GO:0000001")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, 4, rep.TotalRecords)
	assert.Equal(t, 1, rep.SkippedRecords)

	var ruleIDs []string
	for _, summary := range rep.Rules {
		ruleIDs = append(ruleIDs, summary.Rule)
	}
	assert.Contains(t, ruleIDs, rules.FormatRuleID(11))
	assert.Contains(t, ruleIDs, rules.FormatRuleID(18))
	assert.Contains(t, ruleIDs, rules.FormatRuleID(20))
}

func TestValidateRequiresOntology(t *testing.T) {
	dir := t.TempDir()
	gafPath := testutil.WriteGAF(t, dir, "input.gaf", "!gaf-version: 2.1")

	t.Setenv("HOME", dir)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", gafPath})
	assert.Error(t, cmd.Execute())
}

func TestValidateConfigFile(t *testing.T) {
	dir := t.TempDir()
	ontologyPath := testutil.WriteOntology(t, dir)
	gafPath := testutil.WriteGAF(t, dir, "input.gaf",
		testutil.GAFLine("GO:0019900", "IPI", ""))
	outPath := filepath.Join(dir, "corrected.gaf")

	configPath := filepath.Join(dir, "gafcheck.yaml")
	content := "ontology:\n  path: " + ontologyPath + "\nrules:\n  coupling:\n    IPI:\n      policy: any\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"validate",
		"--config", configPath,
		"--out", outPath,
		gafPath,
	})
	require.NoError(t, cmd.Execute())

	// with IPI coupling disabled the record is clean and written out
	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "GO:0019900")
}
