package pages

import (
	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/layout"
)

// Login field targets for daemon.ActionLogin.
const (
	LoginEmail    = "email"
	LoginPassword = "password"
	LoginSubmit   = "submit"
)

// LoginView carries the already-rendered input fields.
type LoginView struct {
	Email    string
	Password string
	Busy     bool
	Spinner  string
}

func Login(c Context, v LoginView) layout.Block {
	w := c.width()
	var b layout.Block
	b.Add(c.Styles.Accent.Render("P5") + " " + c.Styles.Title.Render(c.tr("App.Brand")))
	b.Add(c.Styles.Muted.Render(layout.Truncate(c.tr("App.Tagline"), w)))
	b.Add("")
	b.Add(c.Styles.Title.Render(layout.Truncate(c.tr("Login.Title"), w)))
	b.Add("")

	b.Add(c.Styles.Muted.Render(c.tr("Login.Email")))
	b.AddLink(v.Email, daemon.ActionLogin, LoginEmail)
	b.Add(c.Styles.Muted.Render(c.tr("Login.Password")))
	b.AddLink(v.Password, daemon.ActionLogin, LoginPassword)
	b.Add("")

	if v.Busy {
		b.Add(c.Styles.Accent.Render(v.Spinner + " " + c.tr("Login.Authenticating")))
		return b
	}
	submit := button(c.Styles.ButtonPrimary, c.tr("Login.Submit")+" →", LoginSubmit)
	submit.Action = daemon.ActionLogin
	b.AddRow(submit)
	return b
}
