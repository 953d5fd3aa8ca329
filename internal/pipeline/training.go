package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"skuqty/internal"
	"skuqty/internal/util"
)

var trainingColumns = map[string][]string{
	"text":   {"text", "description", "наимен", "описан"},
	"type":   {"type", "container", "тара"},
	"weight": {"weight", "вес"},
	"pieces": {"pieces", "pcs", "штук"},
	"packs":  {"containers", "packs", "упаков", "блок"},
}

type TrainingImport struct {
	Examples []internal.TrainingExample
	Skipped  int
}

// ReadTrainingXLSX reads labeled examples from the first sheet. The header
// row must name text, type, weight, pieces and containers columns.
func ReadTrainingXLSX(path string) (TrainingImport, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return TrainingImport{}, err
	}
	return parseTrainingXLSX(blob)
}

func parseTrainingXLSX(content []byte) (TrainingImport, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return TrainingImport{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return TrainingImport{}, err
	}
	if len(rows) == 0 {
		return TrainingImport{}, fmt.Errorf("training sheet is empty")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(util.NormalizeSpaces(h))
	}
	idx := map[string]int{}
	for key, probes := range trainingColumns {
		i := findHeaderIndex(header, probes)
		if i < 0 {
			return TrainingImport{}, fmt.Errorf("training sheet: missing %s column", key)
		}
		idx[key] = i
	}

	var out TrainingImport
	for _, row := range rows[1:] {
		cells := normalizeCells(row)
		ex, ok := trainingExample(cells, idx)
		if !ok {
			out.Skipped++
			continue
		}
		out.Examples = append(out.Examples, ex)
	}
	return out, nil
}

func trainingExample(cells []string, idx map[string]int) (internal.TrainingExample, bool) {
	cell := func(key string) string {
		return pickDescription(cells, idx[key])
	}
	text := cell("text")
	if text == "" {
		return internal.TrainingExample{}, false
	}
	ct := internal.ParseContainerType(strings.ToLower(cell("type")))
	if ct == internal.ContainerUnknown {
		return internal.TrainingExample{}, false
	}
	weight, err := util.NormalizeNumber(cell("weight"))
	if err != nil || weight <= 0 {
		return internal.TrainingExample{}, false
	}
	pieces, err := util.NormalizeCount(cell("pieces"))
	if err != nil {
		return internal.TrainingExample{}, false
	}
	packs, err := util.NormalizeCount(cell("packs"))
	if err != nil {
		return internal.TrainingExample{}, false
	}
	return internal.TrainingExample{
		Text:          text,
		ContainerType: ct,
		Weight:        weight,
		PiecesPerPack: pieces,
		PacksPerCase:  packs,
	}, true
}
