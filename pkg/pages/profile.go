package pages

import (
	"github.com/b/plouto/pkg/daemon"
	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/session"
)

// Tabs are the profile sections in display order.
var Tabs = []string{"info", "workspaces", "settings", "activity", "security"}

type ProfileView struct {
	User      session.User
	Workspace session.Workspace
	Tab       string
	// Layout is the effective layout, which may differ from the user's
	// preference when configuration forces one.
	Layout   session.Layout
	Activity []session.Activity
}

func Profile(c Context, v ProfileView) layout.Block {
	w := c.width()
	var b layout.Block

	b.AddRow(button(c.Styles.Button, "← "+c.tr("Page.Back"), TargetProfileBack))
	b.Add("")
	b.Add(c.Styles.Badge.Render(" "+v.User.Initials()+" ") + " " + c.Styles.Title.Render(v.User.Name))
	b.Add(c.Styles.Muted.Render(layout.Truncate(v.User.Email, w)))
	b.Add("")

	tab := v.Tab
	if tab == "" {
		tab = Tabs[0]
	}
	var spans []layout.Span
	for i, name := range Tabs {
		if i > 0 {
			spans = append(spans, gap(1))
		}
		style := c.Styles.Button
		if name == tab {
			style = c.Styles.ButtonPrimary
		}
		spans = append(spans, layout.Span{
			Text:   style.Render(" " + c.tr("Profile.Tab."+name) + " "),
			Action: daemon.ActionPage,
			Target: TargetTab + name,
		})
	}
	b.AddRow(spans...)
	b.Add("")

	switch tab {
	case "workspaces":
		profileWorkspaces(&b, c, v)
	case "settings":
		profileSettings(&b, c, v)
	case "activity":
		profileActivity(&b, c, v)
	case "security":
		paragraph(&b, c.Styles.Text, c.tr("Profile.Security"), w)
	default:
		profileInfo(&b, c, v)
	}
	return b
}

func profileInfo(b *layout.Block, c Context, v ProfileView) {
	rows := [][2]string{
		{"ID", v.User.ID},
		{"Email", v.User.Email},
		{c.tr("Header.SwitchContext"), v.Workspace.Name + " · " + v.Workspace.Role.Label()},
		{c.tr("Profile.Default"), v.User.DefaultWorkspaceID},
		{c.tr("Profile.Layout"), string(v.User.PreferredLayout)},
	}
	for _, r := range rows {
		b.Add(layout.Fit(c.Styles.Muted.Render(r[0]), 18) + c.Styles.Text.Render(layout.Truncate(r[1], c.width()-18)))
	}
}

func profileWorkspaces(b *layout.Block, c Context, v ProfileView) {
	for _, ws := range v.User.Workspaces {
		label := "[" + ws.Role.Initial() + "] " + ws.Name + " · " + ws.CompanyName
		line := layout.Span{Text: layout.Fit(c.Styles.Text.Render(layout.Truncate(label, 44)), 46)}
		if ws.ID == v.User.DefaultWorkspaceID {
			b.AddRow(line, layout.Span{Text: c.Styles.Badge.Render(" " + c.tr("Profile.Default") + " ")})
			continue
		}
		b.AddRow(line, button(c.Styles.Button, c.tr("Profile.SetDefault"), TargetSetDefault+ws.ID))
	}
}

func profileSettings(b *layout.Block, c Context, v ProfileView) {
	b.Add(c.Styles.Title.Render(c.tr("Profile.Layout")))
	opts := []struct {
		layout session.Layout
		label  string
	}{
		{session.LayoutSidebar, c.tr("Profile.LayoutSidebar")},
		{session.LayoutTopbar, c.tr("Profile.LayoutTopbar")},
	}
	var spans []layout.Span
	for i, o := range opts {
		if i > 0 {
			spans = append(spans, gap(2))
		}
		style, mark := c.Styles.Button, "( ) "
		if v.User.PreferredLayout == o.layout {
			style, mark = c.Styles.ButtonPrimary, "(•) "
		}
		spans = append(spans, button(style, mark+o.label, TargetSetLayout+string(o.layout)))
	}
	b.AddRow(spans...)
	if v.Layout != "" && v.Layout != v.User.PreferredLayout {
		b.Add(c.Styles.Muted.Render("ui.layout = " + string(v.Layout)))
	}
	b.Add("")
	paragraph(b, c.Styles.Muted, c.tr("Profile.LayoutHint"), c.width())
}

func profileActivity(b *layout.Block, c Context, v ProfileView) {
	for _, a := range v.Activity {
		b.Add(c.Styles.Muted.Render(a.Timestamp.Format("15:04:05")) + "  " +
			layout.Fit(c.Styles.Accent.Render(string(a.Type)), 18) +
			c.Styles.Text.Render(layout.Truncate(a.Details, c.width()-28)))
	}
}
