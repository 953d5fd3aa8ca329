package internal

type ItemSource string

const (
	SourceText      ItemSource = "text"
	SourceHTMLTable ItemSource = "html_table"
	SourceXLSX      ItemSource = "xlsx"
	SourcePDF       ItemSource = "pdf"
	SourceEmail     ItemSource = "eml"
)

// ProductDescription is one SKU label as supplied by the caller.
type ProductDescription struct {
	Text     string
	SourceID string
}

type DescriptionItem struct {
	LineNo int
	Source ItemSource
	Text   string
	Meta   map[string]any
}

func (d DescriptionItem) Description() ProductDescription {
	return ProductDescription{Text: d.Text, SourceID: string(d.Source)}
}

type WeightUnit string

const (
	UnitNone       WeightUnit = ""
	UnitGram       WeightUnit = "gram"
	UnitMilliliter WeightUnit = "milliliter"
)

type ContainerType string

const (
	ContainerBox     ContainerType = "box"
	ContainerJar     ContainerType = "jar"
	ContainerTray    ContainerType = "tray"
	ContainerBag     ContainerType = "bag"
	ContainerVase    ContainerType = "vase"
	ContainerUnknown ContainerType = "unknown"
)

func ParseContainerType(v string) ContainerType {
	switch ContainerType(v) {
	case ContainerBox, ContainerJar, ContainerTray, ContainerBag, ContainerVase:
		return ContainerType(v)
	default:
		return ContainerUnknown
	}
}

type ParseMethod string

const (
	MethodRule  ParseMethod = "rule"
	MethodModel ParseMethod = "model"
	MethodNone  ParseMethod = "none"
)

type ParsedQuantity struct {
	Weight              float64       `json:"weight"`
	WeightUnit          WeightUnit    `json:"weightUnit"`
	PiecesPerPack       int           `json:"piecesPerPack"`
	PacksPerCase        int           `json:"packsPerCase"`
	ContainerType       ContainerType `json:"containerType"`
	ContainerConfidence float64       `json:"containerConfidence"`
	MatchedRuleID       string        `json:"matchedRuleId,omitempty"`
	Method              ParseMethod   `json:"method"`
	Confidence          float64       `json:"confidence"`
	Parsed              bool          `json:"parsed"`
}

// Unparsed is the terminal result for input that neither the rules nor the
// model could read.
func Unparsed() ParsedQuantity {
	return ParsedQuantity{ContainerType: ContainerUnknown, Method: MethodNone}
}

type TrainingExample struct {
	Text          string        `json:"text"`
	ContainerType ContainerType `json:"containerType"`
	Weight        float64       `json:"weight"`
	PiecesPerPack int           `json:"piecesPerPack"`
	PacksPerCase  int           `json:"packsPerCase"`
}

func ExampleFromResult(text string, q ParsedQuantity) TrainingExample {
	return TrainingExample{
		Text:          text,
		ContainerType: q.ContainerType,
		Weight:        q.Weight,
		PiecesPerPack: q.PiecesPerPack,
		PacksPerCase:  q.PacksPerCase,
	}
}

type StoredDescription struct {
	ID        int
	SourceID  string
	Text      string
	Status    string
	CreatedAt string
}

type ResultExportRow struct {
	DescriptionID int
	SourceID      string
	Text          string
	Parsed        bool
	Weight        *float64
	WeightUnit    *string
	PiecesPerPack *int
	PacksPerCase  *int
	ContainerType *string
	RuleID        *string
	Method        string
	Confidence    float64
}

type RunRow struct {
	ID        int64
	TraceID   string
	Timings   map[string]float64
	Counts    map[string]int
	CreatedAt string
}
