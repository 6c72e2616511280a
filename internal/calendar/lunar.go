package calendar

// LunarPlaceholder returns a decorative secondary-calendar label for a
// day-of-month number.
//
// This is NOT a lunisolar calculation. The label is looked up by the
// Gregorian day number alone, so it does not track real lunar dates and
// drifts across month boundaries. Out-of-range days fall back to 初一.
func LunarPlaceholder(day int) string {
	if day < 1 || day > len(lunarPlaceholderLabels) {
		return lunarPlaceholderLabels[0]
	}
	return lunarPlaceholderLabels[day-1]
}

var lunarPlaceholderLabels = [31]string{
	"初一", "初二", "初三", "初四", "初五",
	"初六", "初七", "初八", "重阳", "初十",
	"十一", "十二", "十三", "十四", "十五",
	"十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五",
	"廿六", "廿七", "廿八", "廿九", "三十",
	"三一",
}
