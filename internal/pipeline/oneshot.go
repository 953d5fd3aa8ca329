package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skuqty/internal"
)

const (
	InputText = "text"
	InputHTML = "html"
	InputXLSX = "xlsx"
	InputPDF  = "pdf"
	InputEML  = "eml"
)

// DetectInputType maps a file extension to an input type. Unknown
// extensions are read as plain text.
func DetectInputType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return InputXLSX
	case ".html", ".htm":
		return InputHTML
	case ".pdf":
		return InputPDF
	case ".eml":
		return InputEML
	default:
		return InputText
	}
}

// ExtractItemsFromInput reads descriptions from the file at path. column
// names the description column for tabular inputs and may be empty.
func ExtractItemsFromInput(inputType, path, column string) ([]internal.DescriptionItem, error) {
	if inputType == "" {
		inputType = DetectInputType(path)
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractItemsFromBytes(inputType, blob, column)
}

func ExtractItemsFromBytes(inputType string, blob []byte, column string) ([]internal.DescriptionItem, error) {
	switch inputType {
	case InputText:
		return parsePlainText(string(blob)), nil
	case InputHTML:
		return parseHTMLTable(string(blob), column), nil
	case InputXLSX:
		return parseXLSX(blob, column)
	case InputPDF:
		return parsePDF(blob)
	case InputEML:
		res, err := ExtractItemsFromEmailRaw(blob)
		if err != nil {
			return nil, err
		}
		return res.Items, nil
	default:
		return nil, fmt.Errorf("unsupported input type: %s", inputType)
	}
}

func Descriptions(items []internal.DescriptionItem, sourceID string) []internal.ProductDescription {
	out := make([]internal.ProductDescription, 0, len(items))
	for _, item := range items {
		d := item.Description()
		if sourceID != "" {
			d.SourceID = sourceID
		}
		out = append(out, d)
	}
	return out
}
