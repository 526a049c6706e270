package style

import "github.com/footprint-tools/clikit/internal/domain"

// Styler exposes the package-level styles through domain.Styler, so
// callers can be handed NopStyler in tests.
type Styler struct{}

// NewStyler returns a Styler bound to the styles set up by Init.
func NewStyler() *Styler { return &Styler{} }

func (*Styler) Enabled() bool              { return Enabled() }
func (*Styler) Success(text string) string { return Success(text) }
func (*Styler) Warning(text string) string { return Warning(text) }
func (*Styler) Error(text string) string   { return Error(text) }
func (*Styler) Info(text string) string    { return Info(text) }
func (*Styler) Muted(text string) string   { return Muted(text) }
func (*Styler) Header(text string) string  { return Header(text) }

// NopStyler returns every text unchanged.
type NopStyler struct{}

func (NopStyler) Enabled() bool              { return false }
func (NopStyler) Success(text string) string { return text }
func (NopStyler) Warning(text string) string { return text }
func (NopStyler) Error(text string) string   { return text }
func (NopStyler) Info(text string) string    { return text }
func (NopStyler) Muted(text string) string   { return text }
func (NopStyler) Header(text string) string  { return text }

var (
	_ domain.Styler = (*Styler)(nil)
	_ domain.Styler = NopStyler{}
)
