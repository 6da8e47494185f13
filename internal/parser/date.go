package parser

import "strings"

// monthNumbers maps English three-letter and Russian abbreviated month names
// to their two-digit numbers. Steam renders "ав" for August and the genitive
// "мая" for May in Russian locale.
var monthNumbers = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
	"янв": "01", "фев": "02", "мар": "03", "апр": "04",
	"мая": "05", "июн": "06", "июл": "07", "ав": "08",
	"сен": "09", "окт": "10", "ноя": "11", "дек": "12",
}

// NormalizeDate converts store-page date text like "16 Feb, 2012" or
// "18 сен 2018" to DD.MM.YYYY. Best effort: any text it cannot interpret is
// returned unchanged.
func NormalizeDate(raw string) string {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, "г", "")
	cleaned = strings.TrimSpace(cleaned)

	parts := strings.Fields(cleaned)

	var day, month, year string
	switch len(parts) {
	case 3:
		day, month, year = parts[0], parts[1], parts[2]
	case 2:
		day, month, year = "01", parts[0], parts[1]
	default:
		return raw
	}

	monthKey := strings.TrimRight(strings.ToLower(month), ". ")
	monthNum, ok := monthNumbers[monthKey]
	if !ok {
		monthNum, ok = monthNumbers[month]
		if !ok {
			return raw
		}
	}

	day = digitsOnly(day)
	year = digitsOnly(year)
	if day == "" || year == "" {
		return raw
	}
	if len(day) < 2 {
		day = "0" + day
	}

	return day + "." + monthNum + "." + year
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
