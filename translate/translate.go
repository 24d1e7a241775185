// Package translate localizes the user visible messages of the emulator.
package translate

import (
	"log"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FALLBACK is the language of the message keys themselves.
const FALLBACK = "en-US"

var printer atomic.Pointer[message.Printer]

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("chip8: locale: %v", err)
	}

	printer.Store(newPrinter(locales))
}

func newPrinter(locales []string) *message.Printer {
	if len(locales) == 0 {
		locales = []string{FALLBACK}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage selects the message language, overriding the host locale.
// An empty name restores the host locale.
func SetLanguage(name string) (err error) {
	if len(name) == 0 {
		locales, _ := locale.GetLocales()
		printer.Store(newPrinter(locales))
		return
	}

	tag, err := language.Parse(name)
	if err != nil {
		return
	}

	printer.Store(message.NewPrinter(tag))
	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Load().Sprintf(key, args...)
}
