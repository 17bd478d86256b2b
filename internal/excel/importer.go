package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/roadmap/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	PhaseIDColumn     string // Column with the phase id
	PhaseTitleColumn  string // Column with the phase title
	ConceptIDColumn   string // Column with the concept id
	NameColumn        string // Column with the concept name
	DescriptionColumn string // Column with the description
	DocURLColumn      string // Column with the documentation link
	VideoColumn       string // Column with the YouTube video id
	LabelColumn       string // Column with the label (Doc, Video, Code, Book)
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		PhaseIDColumn:     "A",
		PhaseTitleColumn:  "B",
		ConceptIDColumn:   "C",
		NameColumn:        "D",
		DescriptionColumn: "E",
		DocURLColumn:      "F",
		VideoColumn:       "G",
		LabelColumn:       "H",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	PhasesCreated  int
	Created        int
	Updated        int
	Errors         []string
}

// ImportConcepts reads concepts from an Excel or CSV file and merges them
// into base. Concepts are matched by id; phases are created on first use.
func ImportConcepts(config ImportConfig, base models.Roadmap) (models.Roadmap, *ImportResult, error) {
	rows, err := readRows(config)
	if err != nil {
		return models.Roadmap{}, nil, err
	}

	m := newMerger(base)
	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if isBlank(row) {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, m, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return m.roadmap, result, nil
}

// readRows returns every row of the file; the extension picks the format
func readRows(config ImportConfig) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return readCSV(config.FilePath)
	}
	return readExcel(config.FilePath, config.SheetName)
}

// readExcel reads the rows of one sheet of an Excel file
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSV reads every record of a CSV file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processRow processes a single row
func processRow(row []string, config ImportConfig, m *merger, result *ImportResult) error {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if colIdx := columnToIndex(column); colIdx >= 0 && colIdx < len(row) {
			return strings.TrimSpace(row[colIdx])
		}
		return ""
	}

	phaseID := cell(config.PhaseIDColumn)
	concept := models.Concept{
		ID:          cell(config.ConceptIDColumn),
		Name:        cell(config.NameColumn),
		Description: cell(config.DescriptionColumn),
		DocURL:      cell(config.DocURLColumn),
		VideoURL:    cell(config.VideoColumn),
		Label:       normalizeLabel(cell(config.LabelColumn)),
	}

	if phaseID == "" {
		return fmt.Errorf("phase id cannot be empty")
	}
	if concept.ID == "" {
		return fmt.Errorf("concept id cannot be empty")
	}
	if concept.Label != "" && !concept.Label.Valid() {
		return fmt.Errorf("unknown label %q", concept.Label)
	}

	created, err := m.put(phaseID, cell(config.PhaseTitleColumn), concept)
	if err != nil {
		return err
	}
	if created.phase {
		result.PhasesCreated++
	}
	if created.concept {
		result.Created++
	} else {
		result.Updated++
	}
	return nil
}

// normalizeLabel maps "video", "VIDEO" and friends to the canonical label
func normalizeLabel(s string) models.Label {
	for _, l := range []models.Label{models.LabelDoc, models.LabelVideo, models.LabelCode, models.LabelBook} {
		if strings.EqualFold(s, string(l)) {
			return l
		}
	}
	return models.Label(s)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type putResult struct {
	phase   bool
	concept bool
}

// merger places imported concepts into a roadmap
type merger struct {
	roadmap models.Roadmap
	phases  map[string]int    // phase id -> index in roadmap.Phases
	owners  map[string]string // concept id -> phase id
}

func newMerger(base models.Roadmap) *merger {
	m := &merger{
		roadmap: base,
		phases:  make(map[string]int),
		owners:  make(map[string]string),
	}
	m.roadmap.Phases = append([]models.Phase(nil), base.Phases...)
	for i, p := range m.roadmap.Phases {
		m.roadmap.Phases[i].Concepts = append([]models.Concept(nil), p.Concepts...)
		m.phases[p.ID] = i
		for _, c := range p.Concepts {
			m.owners[c.ID] = p.ID
		}
	}
	return m
}

func (m *merger) put(phaseID, phaseTitle string, concept models.Concept) (putResult, error) {
	var res putResult

	if owner, ok := m.owners[concept.ID]; ok && owner != phaseID {
		return res, fmt.Errorf("concept %q already exists in phase %q", concept.ID, owner)
	}

	idx, ok := m.phases[phaseID]
	if !ok {
		title := phaseTitle
		if title == "" {
			title = phaseID
		}
		m.roadmap.Phases = append(m.roadmap.Phases, models.Phase{ID: phaseID, Title: title})
		idx = len(m.roadmap.Phases) - 1
		m.phases[phaseID] = idx
		res.phase = true
	} else if phaseTitle != "" {
		m.roadmap.Phases[idx].Title = phaseTitle
	}

	phase := &m.roadmap.Phases[idx]
	for i := range phase.Concepts {
		if phase.Concepts[i].ID == concept.ID {
			phase.Concepts[i] = concept
			return res, nil
		}
	}

	phase.Concepts = append(phase.Concepts, concept)
	m.owners[concept.ID] = phaseID
	res.concept = true
	return res, nil
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
