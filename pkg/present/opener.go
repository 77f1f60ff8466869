package present

import (
	"io"
	"sync"

	"github.com/pkg/browser"
)

// Opener opens a link clicked on a slide.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens links in the system browser.
type BrowserOpener struct{}

//nolint:gochecknoglobals // Guards the one-time browser output redirect.
var quietBrowser sync.Once

// NewBrowserOpener returns an opener that keeps the launched browser's
// output off the terminal.
func NewBrowserOpener() BrowserOpener {
	quietBrowser.Do(func() { browser.Stdout = io.Discard })
	return BrowserOpener{}
}

// Open implements Opener.
func (BrowserOpener) Open(url string) error {
	return browser.OpenURL(url)
}

type discardOpener struct{}

func (discardOpener) Open(string) error { return nil }
