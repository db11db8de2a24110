// Package translate formats diagnostics in the language of the user.
package translate

import (
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer atomic.Pointer[message.Printer]

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		glog.Warningf("twopass: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer.Store(message.NewPrinter(message.MatchLanguage(locales...)))
}

// SetLanguage replaces the locale picked up from the environment.
func SetLanguage(tag string) (err error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	printer.Store(message.NewPrinter(lang))
	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Load().Sprintf(key, args...)
}
