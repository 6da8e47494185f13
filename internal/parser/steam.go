package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/stmdev/steam-game-scraper/internal/models"
)

var freeToPlayPattern = regexp.MustCompile(`(?i)free to play`)

// Localized display tokens for the voiceover column.
const (
	VoiceoverYes      = "Да"
	VoiceoverNo       = "Нет"
	VoiceoverNotFound = "Не найдено"
)

type extractor func(doc *goquery.Document) models.FieldValue

// SteamParser extracts the declared field set from a store page document.
// Extractors are independent: one field failing never affects the others.
type SteamParser struct {
	priceSelectors []string
	dateSelectors  []string
	devSelectors   []string
	extractors     map[models.FieldID]extractor
}

func NewSteamParser() *SteamParser {
	p := &SteamParser{
		priceSelectors: []string{
			".game_purchase_price",
			".discount_final_price",
			".price",
		},
		dateSelectors: []string{
			".release_date .date",
			".release_date",
			".date",
			`[itemprop="datePublished"]`,
		},
		devSelectors: []string{
			".dev_row #developers_list",
		},
	}
	p.extractors = map[models.FieldID]extractor{
		models.FieldPrice:            p.extractPrice,
		models.FieldReleaseDate:      p.extractReleaseDate,
		models.FieldDev:              p.extractDev,
		models.FieldMetascore:        p.extractMetascore,
		models.FieldReviewsCount:     p.extractReviewsCount,
		models.FieldReviewsTone:      p.extractReviewsTone,
		models.FieldRussianVoiceover: p.extractRussianVoiceover,
		models.FieldTags:             p.extractTags,
		models.FieldPegi:             p.extractPegi,
		models.FieldPlayed:           p.extractPlayedHours,
	}
	return p
}

// ParsePage builds a document from raw page HTML.
func ParsePage(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractFields runs every extractor against the document and returns one
// value per declared field. detail_url is a passthrough of the resolved
// reference and is filled here rather than read from the page.
func (p *SteamParser) ExtractFields(doc *goquery.Document, detailURL string) map[models.FieldID]models.FieldValue {
	fields := make(map[models.FieldID]models.FieldValue, len(models.FieldOrder))
	for _, id := range models.FieldOrder {
		if id == models.FieldDetailURL {
			fields[id] = models.Found(detailURL)
			continue
		}
		fields[id] = p.runExtractor(id, doc)
	}
	return fields
}

// runExtractor shields the record assembly from a panicking extractor; a
// broken page structure degrades to an error marker for that field only.
func (p *SteamParser) runExtractor(id models.FieldID, doc *goquery.Document) (value models.FieldValue) {
	defer func() {
		if r := recover(); r != nil {
			value = models.ExtractionError(id)
		}
	}()

	fn, ok := p.extractors[id]
	if !ok {
		return models.NotFound()
	}
	return fn(doc)
}

// firstText tries selectors in order and returns the first non-empty text.
func firstText(doc *goquery.Document, selectors []string) (string, bool) {
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}

func (p *SteamParser) extractPrice(doc *goquery.Document) models.FieldValue {
	if text, ok := firstText(doc, p.priceSelectors); ok {
		return models.Found(text)
	}
	if freeToPlayPattern.MatchString(doc.Text()) {
		return models.Found("Free to Play")
	}
	return models.NotFound()
}

func (p *SteamParser) extractReleaseDate(doc *goquery.Document) models.FieldValue {
	if text, ok := firstText(doc, p.dateSelectors); ok {
		return models.Found(NormalizeDate(text))
	}
	return models.NotFound()
}

func (p *SteamParser) extractDev(doc *goquery.Document) models.FieldValue {
	if text, ok := firstText(doc, p.devSelectors); ok {
		return models.Found(text)
	}
	return models.NotFound()
}

func (p *SteamParser) extractMetascore(doc *goquery.Document) models.FieldValue {
	if text, ok := firstText(doc, []string{"#game_area_metascore .score"}); ok {
		return models.Found(text)
	}
	return models.NotFound()
}

func (p *SteamParser) extractReviewsCount(doc *goquery.Document) models.FieldValue {
	return attrValue(doc, `meta[itemprop="reviewCount"]`, "content")
}

func (p *SteamParser) extractReviewsTone(doc *goquery.Document) models.FieldValue {
	return attrValue(doc, `meta[itemprop="ratingValue"]`, "content")
}

func (p *SteamParser) extractPegi(doc *goquery.Document) models.FieldValue {
	return attrValue(doc, ".game_rating_icon img", "alt")
}

func attrValue(doc *goquery.Document, selector, attr string) models.FieldValue {
	if value, exists := doc.Find(selector).First().Attr(attr); exists && value != "" {
		return models.Found(value)
	}
	return models.NotFound()
}

func (p *SteamParser) extractTags(doc *goquery.Document) models.FieldValue {
	container := doc.Find(".glance_tags.popular_tags").First()
	if container.Length() == 0 {
		return models.NotFound()
	}

	var tags []string
	container.Find("a").Each(func(_ int, s *goquery.Selection) {
		if tag := strings.TrimSpace(s.Text()); tag != "" {
			tags = append(tags, tag)
		}
	})
	if len(tags) == 0 {
		return models.NotFound()
	}
	return models.Found(strings.Join(tags, ", "))
}

func (p *SteamParser) extractPlayedHours(doc *goquery.Document) models.FieldValue {
	element := doc.Find(".details_block.hours_played").First()
	if element.Length() == 0 {
		// Absent on pages the player never opened; count as zero hours.
		return models.Found("0")
	}

	text := element.Text()
	if parts := strings.Split(text, "/"); len(parts) >= 2 {
		text = parts[1]
	}
	text = strings.ReplaceAll(text, "ч. всего", "")
	text = strings.ReplaceAll(text, "hrs on record", "")
	return models.Found(strings.TrimSpace(text))
}

// extractRussianVoiceover walks the language-options table looking for the
// Russian row and inspects its voiceover check column. The check columns are
// ordered interface, voiceover, subtitles.
func (p *SteamParser) extractRussianVoiceover(doc *goquery.Document) models.FieldValue {
	table := doc.Find("table.game_language_options").First()
	if table.Length() == 0 {
		return models.Found(VoiceoverNotFound)
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return models.Found(VoiceoverNotFound)
	}

	var russianRow *goquery.Selection
	rows.Slice(1, rows.Length()).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		name := strings.ToLower(strings.TrimSpace(row.Find("td.ellipsis").First().Text()))
		if strings.Contains(name, "русский") {
			russianRow = row
			return false
		}
		return true
	})
	if russianRow == nil {
		return models.Found(VoiceoverNo)
	}

	checkCols := russianRow.Find("td.checkcol")
	if checkCols.Length() < 3 {
		return models.Found(VoiceoverNotFound)
	}

	voiceover := checkCols.Eq(1)
	if strings.Contains(voiceover.Find("span").Text(), "✔") {
		return models.Found(VoiceoverYes)
	}
	return models.Found(VoiceoverNo)
}
