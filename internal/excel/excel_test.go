package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/roadmap/internal/progress"
	"github.com/example/roadmap/pkg/models"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, writeRows(f, "Sheet1", rows))

	path := filepath.Join(t.TempDir(), "concepts.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportConceptsFromExcel(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"phase", "phase title", "concept", "name", "description", "doc", "video", "label"},
		{"phase-1", "Basics", "go-syntax", "Go syntax", "Types and funcs", "https://go.dev/doc", "", "doc"},
		{"phase-1", "", "go-tests", "Testing", "", "", "abc123", "Video"},
		{},
		{"phase-2", "Services", "grpc", "gRPC", "", "", "", "Code"},
		{"", "", "orphan", "No phase", "", "", "", ""},
		{"phase-2", "", "bad", "Bad label", "", "", "", "Podcast"},
	})

	cfg := DefaultImportConfig()
	cfg.FilePath = path

	r, result, err := ImportConcepts(cfg, models.Roadmap{Title: "Go"})
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalProcessed)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 2, result.PhasesCreated)
	assert.Len(t, result.Errors, 2)

	require.Len(t, r.Phases, 2)
	assert.Equal(t, "Basics", r.Phases[0].Title)
	assert.Equal(t, []string{"go-syntax", "go-tests"}, r.Phases[0].ConceptIDs())
	assert.Equal(t, models.LabelDoc, r.Phases[0].Concepts[0].Label)
	assert.Equal(t, "abc123", r.Phases[0].Concepts[1].VideoURL)
	assert.Equal(t, []string{"grpc"}, r.Phases[1].ConceptIDs())
	assert.Equal(t, "Go", r.Title)
}

func TestImportConceptsFromCSVMergesIntoBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concepts.csv")
	csv := "phase,title,concept,name,description,doc,video,label\n" +
		"p1,,a,Renamed,,,,Book\n" +
		"p1,,c,New,,,,Doc\n" +
		"p2,,b,Moved,,,,Doc\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	base := models.Roadmap{Phases: []models.Phase{
		{ID: "p1", Title: "One", Concepts: []models.Concept{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}},
	}}

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	r, result, err := ImportConcepts(cfg, base)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 1, "b already belongs to p1")
	assert.Equal(t, []string{"a", "b", "c"}, r.Phases[0].ConceptIDs())
	assert.Equal(t, "Renamed", r.Phases[0].Concepts[0].Name)
	assert.Equal(t, "A", base.Phases[0].Concepts[0].Name, "base roadmap must not be modified")
	assert.Len(t, base.Phases[0].Concepts, 2)
}

func TestImportConceptsMissingFile(t *testing.T) {
	cfg := DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "nope.xlsx")
	_, _, err := ImportConcepts(cfg, models.Roadmap{})
	assert.Error(t, err)
}

func TestExportProgress(t *testing.T) {
	r := models.Roadmap{
		Title: "Go",
		Phases: []models.Phase{
			{ID: "p1", Title: "Basics", Concepts: []models.Concept{
				{ID: "a", Name: "A", Label: models.LabelDoc},
				{ID: "b", Name: "B", Label: models.LabelCode},
				{ID: "c", Name: "C", Label: models.LabelBook},
			}},
		},
	}
	summary := progress.Summary{
		Overall: 100.0 / 3.0, CompletedCount: 1, TotalCount: 3,
		Phases: []progress.PhaseSummary{{PhaseID: "p1", Title: "Basics",
			PhaseProgress: models.PhaseProgress{Progress: 100.0 / 3.0, CompletedCount: 1, TotalCount: 3}}},
	}
	done := map[string]bool{"b": true}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ExportProgress(path, r, summary, func(id string) bool { return done[id] }))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"p1", "Basics", "1", "3", "33.3"}, rows[1])
	assert.Equal(t, "overall", rows[2][0])

	rows, err = f.GetRows(conceptsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"p1", "b", "B", "Code", "TRUE"}, rows[2])
	assert.Equal(t, "FALSE", rows[1][4])
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 7, columnToIndex("h"))
	assert.Equal(t, 26, columnToIndex("AA"))
}
