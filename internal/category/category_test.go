package category_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/bibloom-cli/internal/category"
	"github.com/KaramelBytes/bibloom-cli/internal/parser"
)

const tableCSV = "Categoria,Variable\n" +
	"Security,access control\n" +
	"Security,encryption - cipher\n" +
	"Privacy,anonymity\n" +
	" ,orphan\n" +
	"Privacy, \n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func abstract(key, text string) *parser.Record {
	return &parser.Record{Key: key, Fields: map[string]string{"abstract": text}}
}

func TestLoadTable_CSV(t *testing.T) {
	tbl, err := category.LoadTable(writeFile(t, "Categorias.csv", tableCSV))
	require.NoError(t, err)
	require.Equal(t, []string{"Security", "Privacy"}, tbl.Names())
	sec := tbl.Categories[0]
	require.Len(t, sec.Groups, 2)
	assert.Equal(t, []string{"access control"}, sec.Groups[0].Components)
	assert.Equal(t, []string{"encryption", "cipher"}, sec.Groups[1].Components)
	assert.Equal(t, "encryption - cipher", sec.Groups[1].Label())
	assert.Len(t, tbl.Categories[1].Groups, 1)
}

func TestLoadTable_TSV(t *testing.T) {
	tbl, err := category.LoadTable(writeFile(t, "cats.tsv", "Variable\tCategoria\nfirewall\tNetwork\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Network"}, tbl.Names())
	assert.Equal(t, "firewall", tbl.Categories[0].Groups[0].Label())
}

func TestLoadTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]string{{"Categoria", "Variable"}, {"Security", "access control"}, {"Cloud", "saas - paas"}}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	p := filepath.Join(t.TempDir(), "cats.xlsx")
	require.NoError(t, f.SaveAs(p))

	tbl, err := category.LoadTable(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Security", "Cloud"}, tbl.Names())
	assert.Equal(t, []string{"saas", "paas"}, tbl.Categories[1].Groups[0].Components)
}

func TestLoadTable_Errors(t *testing.T) {
	_, err := category.LoadTable(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, parser.IsNotFound(err))

	_, err = category.LoadTable(writeFile(t, "bad.csv", "Name,Term\nA,b\n"))
	assert.ErrorIs(t, err, category.ErrInvalidTable)

	_, err = category.LoadTable(writeFile(t, "cats.json", "{}"))
	assert.ErrorIs(t, err, category.ErrInvalidTable)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"access", "control", "is", "key_point", "für", "2024"},
		category.Tokenize("Access-Control, is KEY_POINT! Für 2024."))
	assert.Empty(t, category.Tokenize(" ... "))
}

func TestCount_RepeatedPhrase(t *testing.T) {
	tbl, err := category.FromRows([][]string{{"Categoria", "Variable"}, {"Security", "access control"}})
	require.NoError(t, err)
	counts := category.Count([]*parser.Record{abstract("a", "access control access control")}, tbl, "abstract")
	assert.Equal(t, 2, counts.Totals()["Security"])
	assert.Equal(t, 2, counts.BySynonym()["Security"]["access control"])
}

func TestCount_CompositeAndZeroes(t *testing.T) {
	tbl, err := category.LoadTable(writeFile(t, "Categorias.csv", tableCSV))
	require.NoError(t, err)
	recs := []*parser.Record{
		abstract("a", "Encryption and a CIPHER; encryption again."),
		abstract("b", "Role-based access control."),
		abstract("c", "   "),
		{Key: "d", Fields: map[string]string{"title": "no abstract"}},
	}
	counts := category.Count(recs, tbl, "")
	assert.Equal(t, "abstract", counts.Field)
	assert.Equal(t, 2, counts.Records)
	assert.Equal(t, map[string]int{"Security": 4, "Privacy": 0}, counts.Totals())
	assert.Equal(t, map[string]map[string]int{
		"Security": {"access control": 1, "encryption - cipher": 3},
		"Privacy":  {"anonymity": 0},
	}, counts.BySynonym())
	assert.Equal(t, map[string]int{"access control": 1, "encryption - cipher": 3}, counts.Weights())

	md := counts.Markdown()
	assert.Contains(t, md, "| Security | 4 |")
	assert.Contains(t, md, "  • anonymity: 0")
}

func TestCount_WordBounded(t *testing.T) {
	tbl, err := category.FromRows([][]string{{"Categoria", "Variable"}, {"Net", "net"}})
	require.NoError(t, err)
	counts := category.Count([]*parser.Record{abstract("a", "network nets net, NET.")}, tbl, "abstract")
	assert.Equal(t, 2, counts.Totals()["Net"])
}

func TestCount_SharedLabelWeightedOnce(t *testing.T) {
	tbl, err := category.FromRows([][]string{
		{"Categoria", "Variable"},
		{"Security", "privacy"},
		{"Ethics", "privacy"},
	})
	require.NoError(t, err)
	counts := category.Count([]*parser.Record{abstract("a", "privacy matters")}, tbl, "abstract")
	assert.Equal(t, map[string]map[string]int{
		"Security": {"privacy": 1},
		"Ethics":   {"privacy": 1},
	}, counts.BySynonym())
	assert.Equal(t, map[string]int{"privacy": 1}, counts.Weights())
}
