//go:build !darwin

package input

type nopAuthorizer struct{}

// NewAuthorizer returns an Authorizer that always reports trusted. Windows
// and X11 deliver synthetic input without a per-application permission grant.
func NewAuthorizer() Authorizer { return nopAuthorizer{} }

func (nopAuthorizer) Trusted() bool { return true }
func (nopAuthorizer) Prompt()       {}
