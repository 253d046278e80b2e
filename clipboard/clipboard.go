// Package clipboard copies text to the system clipboard, falling back to
// an OSC52 escape sequence when no native clipboard tool is available.
package clipboard

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/andareed/siftly-dash/logging"
	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

var ErrUnavailable = errors.New("clipboard unavailable (no native tool and OSC52 unsupported by terminal)")

// native is swapped in tests.
var native = clipboard.WriteAll

func Copy(text string) error {
	if !clipboard.Unsupported {
		err := native(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes natively", len(text))
			return nil
		}
		logging.Warnf("Clipboard: native copy failed: %v", err)
	}
	if !osc52Supported(os.Getenv("TERM"), os.Stdout) {
		logging.Warnf("Clipboard: OSC52 unavailable (stdout not TTY or TERM=dumb)")
		return ErrUnavailable
	}
	return copyOSC52(os.Stdout, text, os.Getenv("TMUX") != "")
}

func copyOSC52(w io.Writer, text string, tmux bool) error {
	seq := osc52.New(text)
	if tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(w); err != nil {
		logging.Warnf("Clipboard: OSC52 write failed: %v", err)
		return err
	}
	logging.Infof("Clipboard: copied via OSC52")
	return nil
}

func osc52Supported(term string, out *os.File) bool {
	if term == "" || strings.EqualFold(term, "dumb") {
		return false
	}
	return isTTY(out)
}

func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
