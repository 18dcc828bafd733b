package linkvalidate

import "fmt"

// Warning describes a recognized rule construct that has no canonical schema
// counterpart and was dropped during normalization. Compilation proceeds, but
// every drop is reported so information loss is never silent.
type Warning struct {
	Field string // JSON Pointer to the field whose rule carried the key.
	Key   string // The rule key that could not be translated.
	Msg   string
}

func (w Warning) String() string {
	if w.Msg == "" {
		return fmt.Sprintf("field %q: rule %q not supported", w.Field, w.Key)
	}
	return fmt.Sprintf("field %q: %s", w.Field, w.Msg)
}

// Diag carries non-fatal warnings produced during compilation.
type Diag interface {
	HasWarnings() bool
	Warnings() []Warning
}

type simpleDiag struct{ ws []Warning }

func (d *simpleDiag) HasWarnings() bool   { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []Warning { return append([]Warning(nil), d.ws...) }

func (d *simpleDiag) warn(field, key, msg string) {
	d.ws = append(d.ws, Warning{Field: field, Key: key, Msg: msg})
}

func (d *simpleDiag) warnf(field, key, f string, a ...any) {
	d.warn(field, key, fmt.Sprintf(f, a...))
}
