package compare

var (
	numeralDigits = map[rune]int{
		'零': 0, '一': 1, '二': 2, '三': 3, '四': 4,
		'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
	}
	numeralUnits = map[rune]int{
		'十': 10, '百': 100, '千': 1000, '萬': 10000,
	}
)

// ParseNumeral converts a run of Chinese numerals such as 一百零五 to an
// integer. Characters outside the numeral set are ignored.
func ParseNumeral(s string) int {
	var result, section, number int
	for _, r := range s {
		if d, ok := numeralDigits[r]; ok {
			number = d
			continue
		}
		unit, ok := numeralUnits[r]
		if !ok {
			continue
		}
		// a bare leading 十 means one ten
		if unit == 10 && number == 0 {
			number = 1
		}
		section += number * unit
		number = 0
		if unit >= 10000 {
			result += section
			section = 0
		}
	}
	return result + section + number
}
