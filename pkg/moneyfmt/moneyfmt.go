// Package moneyfmt formatea montos para presentación: separador de miles y
// símbolo de moneda. El redondeo ya viene hecho por el caller; aquí solo se
// formatea.
package moneyfmt

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Comma formatea un entero con separador de miles: 600000 -> "600,000".
func Comma(n int64) string {
	return printer.Sprintf("%d", n)
}

// Symbol devuelve el símbolo a mostrar para un código de moneda.
// Monedas no reconocidas caen en "$".
func Symbol(currency string) string {
	switch currency {
	case "MWK":
		return "MK"
	case "USD":
		return "$"
	default:
		return "$"
	}
}
