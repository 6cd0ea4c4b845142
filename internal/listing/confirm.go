package listing

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always approves every prompt. It backs the CLI's --yes flag.
var Always Confirmer = ConfirmFunc(func(string) bool { return true })

func confirmed(c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(prompt)
}

func orDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return quiet
}
