package domain

import "strings"

const currencyPrefix = "CURRENCY_"

const DefaultCurrency = "CURRENCY_USD"

// Currencies holds the currency semantic types a report can be configured with.
var Currencies = []string{
	"CURRENCY_AED", "CURRENCY_ALL", "CURRENCY_ARS", "CURRENCY_AUD", "CURRENCY_BDT",
	"CURRENCY_BGN", "CURRENCY_BOB", "CURRENCY_BRL", "CURRENCY_CAD", "CURRENCY_CDF",
	"CURRENCY_CHF", "CURRENCY_CLP", "CURRENCY_CNY", "CURRENCY_COP", "CURRENCY_CRC",
	"CURRENCY_CZK", "CURRENCY_DKK", "CURRENCY_DOP", "CURRENCY_EGP", "CURRENCY_ETB",
	"CURRENCY_EUR", "CURRENCY_GBP", "CURRENCY_HKD", "CURRENCY_HRK", "CURRENCY_HUF",
	"CURRENCY_IDR", "CURRENCY_ILS", "CURRENCY_INR", "CURRENCY_IRR", "CURRENCY_ISK",
	"CURRENCY_JMD", "CURRENCY_JPY", "CURRENCY_KRW", "CURRENCY_LKR", "CURRENCY_LTL",
	"CURRENCY_MNT", "CURRENCY_MVR", "CURRENCY_MXN", "CURRENCY_MYR", "CURRENCY_NOK",
	"CURRENCY_NZD", "CURRENCY_PAB", "CURRENCY_PEN", "CURRENCY_PHP", "CURRENCY_PKR",
	"CURRENCY_PLN", "CURRENCY_RON", "CURRENCY_RSD", "CURRENCY_RUB", "CURRENCY_SAR",
	"CURRENCY_SEK", "CURRENCY_SGD", "CURRENCY_THB", "CURRENCY_TRY", "CURRENCY_TWD",
	"CURRENCY_TZS", "CURRENCY_UAH", "CURRENCY_USD", "CURRENCY_UYU", "CURRENCY_VEF",
	"CURRENCY_VND", "CURRENCY_YER", "CURRENCY_ZAR",
}

// CurrencyOptions returns the currencies as select options labelled by ISO code.
func CurrencyOptions() []SelectOption {
	options := make([]SelectOption, 0, len(Currencies))
	for _, c := range Currencies {
		options = append(options, SelectOption{
			Label: strings.TrimPrefix(c, currencyPrefix),
			Value: c,
		})
	}

	return options
}

// IsKnownCurrency reports whether code is one of Currencies.
func IsKnownCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}
