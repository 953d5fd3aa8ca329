package pipeline

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"skuqty/internal"
	"skuqty/internal/util"
)

var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^--+$`),
	regexp.MustCompile(`(?i)^спасибо`),
	regexp.MustCompile(`(?i)^с уважением`),
	regexp.MustCompile(`(?i)^(?:best )?regards`),
	regexp.MustCompile(`(?i)^тел[:\s]`),
	regexp.MustCompile(`(?i)^e-?mail[:\s]`),
	regexp.MustCompile(`(?i)^http`),
	regexp.MustCompile(`(?i)^(?:итого|всего|total)\b`),
}

var descriptionHeaders = []string{"наимен", "номенк", "описан", "товар", "продук", "позиц", "description", "product", "item", "name", "text"}

type EmailExtraction struct {
	Items           []internal.DescriptionItem
	Subject         string
	Text            string
	HTML            string
	AttachmentNames []string
}

// ExtractItemsFromEmailRaw collects descriptions from the body, HTML tables
// and spreadsheet or PDF attachments of one message.
func ExtractItemsFromEmailRaw(raw []byte) (EmailExtraction, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return EmailExtraction{}, err
	}

	items := make([]internal.DescriptionItem, 0)
	if env.Text != "" {
		items = append(items, parseEmailText(env.Text)...)
	}
	if env.HTML != "" {
		items = append(items, parseHTMLTable(env.HTML, "")...)
	}

	attachmentNames := make([]string, 0, len(env.Attachments))
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		attachmentNames = append(attachmentNames, filename)
		lower := strings.ToLower(filename)

		var extra []internal.DescriptionItem
		switch {
		case strings.HasSuffix(lower, ".xlsx"):
			extra, err = parseXLSX(att.Content, "")
		case strings.HasSuffix(lower, ".pdf"):
			extra, err = parsePDF(att.Content)
		case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
			extra, err = parseHTMLTable(string(att.Content), ""), nil
		default:
			continue
		}
		if err != nil {
			continue
		}
		for i := range extra {
			if extra[i].Meta == nil {
				extra[i].Meta = map[string]any{}
			}
			extra[i].Meta["attachment"] = filename
		}
		items = append(items, extra...)
	}

	items = dedupeItems(items)
	for i := range items {
		items[i].LineNo = i + 1
		items[i].Source = internal.SourceEmail
	}

	return EmailExtraction{
		Items:           items,
		Subject:         env.GetHeader("Subject"),
		Text:            env.Text,
		HTML:            env.HTML,
		AttachmentNames: attachmentNames,
	}, nil
}

// parsePlainText keeps every non-blank line so results line up with the
// input file.
func parsePlainText(text string) []internal.DescriptionItem {
	lines := splitLines(text)
	out := make([]internal.DescriptionItem, 0, len(lines))
	for i, line := range lines {
		out = append(out, internal.DescriptionItem{
			LineNo: i + 1,
			Source: internal.SourceText,
			Text:   util.NormalizeText(line),
		})
	}
	return out
}

func parseEmailText(text string) []internal.DescriptionItem {
	lines := splitLines(text)
	out := make([]internal.DescriptionItem, 0, len(lines))
	lineNo := 0
	for _, line := range lines {
		lineNo++
		compact := util.NormalizeText(line)
		if isLikelyNoise(compact) || !util.LooksLikeDescription(compact) {
			continue
		}
		out = append(out, internal.DescriptionItem{
			LineNo: lineNo,
			Source: internal.SourceText,
			Text:   compact,
			Meta:   map[string]any{"part": "body"},
		})
	}
	return out
}

func parseHTMLTable(html, column string) []internal.DescriptionItem {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	out := []internal.DescriptionItem{}
	globalLine := 0
	doc.Find("table").Each(func(tableIdx int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.ToLower(util.NormalizeSpaces(cell.Text())))
		})
		textIdx := inferDescriptionColumn(headers, column)
		body := rows
		if textIdx >= 0 {
			body = rows.Slice(1, rows.Length())
		}

		body.Each(func(rowIdx int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeText(cell.Text()))
			})
			text := pickDescription(cells, textIdx)
			if text == "" {
				return
			}

			globalLine++
			out = append(out, internal.DescriptionItem{
				LineNo: globalLine,
				Source: internal.SourceHTMLTable,
				Text:   text,
				Meta:   map[string]any{"table": tableIdx, "row": cells},
			})
		})
	})

	return out
}

func parseXLSX(content []byte, column string) ([]internal.DescriptionItem, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lineNo := 0
	out := []internal.DescriptionItem{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(rows) == 0 {
			continue
		}

		textIdx := -1
		for i, row := range rows {
			cells := normalizeCells(row)
			if len(cells) == 0 {
				continue
			}
			if i < 3 && textIdx < 0 {
				lowered := make([]string, len(cells))
				for j, c := range cells {
					lowered[j] = strings.ToLower(c)
				}
				if textIdx = inferDescriptionColumn(lowered, column); textIdx >= 0 {
					continue
				}
			}

			text := pickDescription(cells, textIdx)
			if text == "" {
				continue
			}

			lineNo++
			out = append(out, internal.DescriptionItem{
				LineNo: lineNo,
				Source: internal.SourceXLSX,
				Text:   text,
				Meta:   map[string]any{"sheet": sheet, "rowNumber": i + 1},
			})
		}
	}

	return out, nil
}

func parsePDF(content []byte) ([]internal.DescriptionItem, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	out := []internal.DescriptionItem{}
	lineNo := 0
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range splitLines(text) {
			lineNo++
			compact := util.NormalizeText(line)
			if isLikelyNoise(compact) || !util.LooksLikeDescription(compact) {
				continue
			}
			out = append(out, internal.DescriptionItem{
				LineNo: lineNo,
				Source: internal.SourcePDF,
				Text:   compact,
				Meta:   map[string]any{"page": i},
			})
		}
	}
	return out, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isLikelyNoise(line string) bool {
	for _, re := range ignorePatterns {
		if re.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func dedupeItems(items []internal.DescriptionItem) []internal.DescriptionItem {
	seen := map[string]struct{}{}
	out := make([]internal.DescriptionItem, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Text)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func findHeaderIndex(headers []string, probes []string) int {
	for _, probe := range probes {
		for i, h := range headers {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

// inferDescriptionColumn finds the description column in a header row. A
// caller-supplied column name takes precedence over the built-in probes.
func inferDescriptionColumn(headers []string, column string) int {
	if c := strings.ToLower(strings.TrimSpace(column)); c != "" {
		if idx := findHeaderIndex(headers, []string{c}); idx >= 0 {
			return idx
		}
	}
	for _, h := range headers {
		if util.HasDigit(h) {
			// a data row, not a header
			return -1
		}
	}
	return findHeaderIndex(headers, descriptionHeaders)
}

// pickDescription returns the description cell of a row. Without a known
// column the longest cell holding both letters and digits wins.
func pickDescription(cells []string, idx int) string {
	if idx >= 0 {
		if idx < len(cells) {
			return strings.TrimSpace(cells[idx])
		}
		return ""
	}
	best := ""
	for _, c := range cells {
		if util.LooksLikeDescription(c) && len([]rune(c)) > len([]rune(best)) {
			best = c
		}
	}
	return best
}

func normalizeCells(row []string) []string {
	out := make([]string, 0, len(row))
	for _, c := range row {
		out = append(out, util.NormalizeText(c))
	}
	return out
}
