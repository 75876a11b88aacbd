package printer

import "sync"

var (
	defaultMu      sync.Mutex
	defaultPrinter *Printer
)

// Default returns the process-wide printer, creating one with a zero Config on first
// use. Only the accessor is synchronized; the printer itself is not.
func Default() *Printer {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultPrinter == nil {
		defaultPrinter = New(Config{})
	}
	return defaultPrinter
}

// SetDefault replaces the process-wide printer and returns the previous one.
func SetDefault(p *Printer) *Printer {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultPrinter
	defaultPrinter = p
	return prev
}
