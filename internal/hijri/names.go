package hijri

import "strconv"

// Arabic Hijri month names, 1 = Muharram ... 12 = Dhu al-Hijjah.
var monthNamesAr = map[int]string{
	1:  "محرم",
	2:  "صفر",
	3:  "ربيع الأول",
	4:  "ربيع الآخر",
	5:  "جمادى الأولى",
	6:  "جمادى الآخرة",
	7:  "رجب",
	8:  "شعبان",
	9:  "رمضان",
	10: "شوال",
	11: "ذو القعدة",
	12: "ذو الحجة",
}

// MonthName returns the Arabic name of month, or the numeral itself when
// month is out of range.
func MonthName(month int) string {
	if name, ok := monthNamesAr[month]; ok {
		return name
	}
	return strconv.Itoa(month)
}

// FormatDay renders "10 ذو الحجة".
func FormatDay(day, month int) string {
	return strconv.Itoa(day) + " " + MonthName(month)
}
