package dateformat

// Locale holds the month and weekday names of one language.
type Locale struct {
	Tag           string
	Months        [12]string
	MonthsShort   [12]string
	Weekdays      [7]string
	WeekdaysShort [7]string
}

var locales = map[string]Locale{
	"pt-BR": {
		Tag: "pt-BR",
		Months: [12]string{
			"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
		},
		MonthsShort: [12]string{
			"jan", "fev", "mar", "abr", "mai", "jun",
			"jul", "ago", "set", "out", "nov", "dez",
		},
		Weekdays: [7]string{
			"domingo", "segunda-feira", "terça-feira", "quarta-feira",
			"quinta-feira", "sexta-feira", "sábado",
		},
		WeekdaysShort: [7]string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"},
	},
	"en-US": {
		Tag: "en-US",
		Months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		MonthsShort: [12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
		Weekdays: [7]string{
			"Sunday", "Monday", "Tuesday", "Wednesday",
			"Thursday", "Friday", "Saturday",
		},
		WeekdaysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	},
}

// LookupLocale returns the locale registered under tag.
func LookupLocale(tag string) (Locale, bool) {
	l, ok := locales[tag]
	return l, ok
}
