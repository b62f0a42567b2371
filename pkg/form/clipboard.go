package form

import "github.com/atotto/clipboard"

// Clipboard receives the expression on submit.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API, whichever is available).
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a system clipboard utility was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}
