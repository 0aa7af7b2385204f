package pages

import (
	"fmt"
	"strings"

	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/router"
	"github.com/b/plouto/pkg/session"
)

type stat struct {
	label string
	value string
	trend string
}

type shipment struct {
	id, status, origin, dest, eta string
}

var (
	velocity = []struct {
		day   string
		value int
	}{{"Mon", 400}, {"Tue", 300}, {"Wed", 550}, {"Thu", 450}, {"Fri", 700}, {"Sat", 600}, {"Sun", 800}}

	modality = []struct {
		name  string
		share int
	}{{"Ocean", 45}, {"Air", 25}, {"Road", 20}, {"Rail", 10}}

	events = []shipment{
		{"SH-82910", "In Transit", "Shanghai (CNSHA)", "Los Angeles (USLAX)", "Nov 24, 2023"},
		{"SH-11029", "Customs Hold", "Mumbai (INBOM)", "Felixstowe (GBFXT)", "Nov 22, 2023"},
		{"SH-77631", "Delivered", "Hamburg (DEHAM)", "Chicago DC", "Completed"},
		{"SH-22934", "At Origin", "Shenzhen (CNSZN)", "New York (USNYC)", "Dec 02, 2023"},
	}
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// Dashboard is the landing page for the home and system roots.
func Dashboard(c Context, user session.User, ws session.Workspace) layout.Block {
	w := c.width()
	var b layout.Block

	b.Add(c.Styles.Title.Render(layout.Truncate(c.tr("Dashboard.Welcome", map[string]interface{}{"Name": user.Name}), w)))
	b.Add(c.Styles.Muted.Render(layout.Truncate(c.tr("Dashboard.Context", map[string]interface{}{
		"Workspace": ws.Name,
		"Role":      ws.Role.Label(),
	}), w)))
	b.Add("")

	stats := []stat{
		{c.tr("Dashboard.ActiveOrders"), "1,284", "+12%"},
		{c.tr("Dashboard.PendingArrival"), "42", "-3"},
		{c.tr("Dashboard.ClearedToday"), "89", "+14%"},
		{c.tr("Dashboard.Alerts"), "7", "+2"},
	}
	for _, s := range stats {
		trend := c.Styles.Success
		if strings.HasPrefix(s.trend, "-") {
			trend = c.Styles.Error
		}
		b.Add(layout.Fit(c.Styles.Text.Render(layout.Truncate(s.label, 20)), 22) +
			c.Styles.Accent.Render(fmt.Sprintf("%7s", s.value)) + "  " + trend.Render(s.trend))
	}
	b.Add("")

	b.Add(c.Styles.Title.Render(c.tr("Dashboard.Velocity")))
	var days, bars strings.Builder
	for _, v := range velocity {
		idx := v.value * (len(sparks) - 1) / 800
		bars.WriteString(strings.Repeat(string(sparks[idx]), 3) + " ")
		days.WriteString(v.day + " ")
	}
	b.Add(c.Styles.Accent.Render(bars.String()), c.Styles.Muted.Render(days.String()))
	b.Add("")

	b.Add(c.Styles.Title.Render(c.tr("Dashboard.Modality")))
	barWidth := min(30, w-16)
	for _, m := range modality {
		n := m.share * barWidth / 100
		b.Add(fmt.Sprintf("%-6s ", m.name) + c.Styles.Accent.Render(strings.Repeat("█", n)) +
			c.Styles.Muted.Render(strings.Repeat("░", barWidth-n)) + fmt.Sprintf(" %3d%%", m.share))
	}
	b.Add("")

	b.Add(c.Styles.Title.Render(c.tr("Dashboard.Events")))
	cols := []int{10, 14, 20, 22, 14}
	header := []string{
		c.tr("Dashboard.Col.Shipment"), c.tr("Dashboard.Col.Status"), c.tr("Dashboard.Col.Origin"),
		c.tr("Dashboard.Col.Destination"), c.tr("Dashboard.Col.ETA"),
	}
	b.Add(layout.Fit(c.Styles.Muted.Render(tableRow(header, cols)), w))
	for _, e := range events {
		b.Add(layout.Fit(c.Styles.Text.Render(tableRow([]string{e.id, e.status, e.origin, e.dest, e.eta}, cols)), w))
	}
	b.Add("")

	b.Add(c.Styles.Title.Render(c.tr("Dashboard.Demos")))
	b.AddRow(
		button(c.Styles.Button, c.tr("Dashboard.OrderDemo"), TargetGoto+router.OrderDemoID),
		gap(2),
		button(c.Styles.Button, c.tr("Dashboard.NotFoundDemo"), TargetGoto+router.NotFoundDemoID),
	)
	return b
}

func tableRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		sb.WriteString(layout.Fit(layout.Truncate(cell, widths[i]-1), widths[i]))
	}
	return sb.String()
}
