package pages

import (
	"fmt"

	"github.com/b/plouto/pkg/layout"
	"github.com/b/plouto/pkg/order"
)

// OrderView is a snapshot of the order flow. Spinner is the current spinner
// frame shown next to the running step.
type OrderView struct {
	Status  order.Status
	Step    int
	Number  string
	Items   []order.Item
	Totals  order.Totals
	Spinner string
}

func ViewOf(f *order.Flow, spinner string) OrderView {
	return OrderView{
		Status:  f.Status(),
		Step:    f.Step(),
		Number:  f.OrderNumber(),
		Items:   f.Items(),
		Totals:  f.Totals(),
		Spinner: spinner,
	}
}

func Order(c Context, v OrderView) layout.Block {
	w := c.width()
	var b layout.Block
	heading(&b, c, c.tr("Order.Title"))
	b.Add("")

	switch v.Status {
	case order.StatusSaving:
		b.Add(c.Styles.Title.Render(c.tr("Order.Saving")))
		b.Add("")
		for i, step := range order.Steps {
			switch {
			case i < v.Step:
				b.Add(c.Styles.Success.Render("✓ ") + c.Styles.Text.Render(step))
			case i == v.Step:
				b.Add(c.Styles.Accent.Render(v.Spinner+" ") + c.Styles.Title.Render(step))
			default:
				b.Add(c.Styles.Muted.Render("· " + step))
			}
		}
		return b
	case order.StatusSuccess:
		b.Add(c.Styles.Success.Render(layout.Truncate("✓ "+c.tr("Order.Success", map[string]interface{}{"Number": v.Number}), w)))
		b.Add("")
		b.AddRow(button(c.Styles.ButtonPrimary, c.tr("Order.CreateNew"), TargetOrderNew))
		return b
	}

	b.Add(c.Styles.Title.Render(c.tr("Order.Items")))
	cols := []int{6, 12, 24, 8, 10, 12}
	b.Add(c.Styles.Muted.Render(tableRow([]string{"#", "SKU", "Description", "Qty", "Unit", "Amount"}, cols)))
	editable := v.Status == order.StatusIdle
	for _, it := range v.Items {
		row := layout.Span{Text: c.Styles.Text.Render(tableRow([]string{
			it.ID, it.SKU, it.Description, fmt.Sprint(it.Qty), c.money(it.Price), c.money(it.Amount()),
		}, cols))}
		if editable && len(v.Items) > 1 {
			b.AddRow(row, button(c.Styles.Button, c.tr("Order.Remove"), TargetOrderRemove+it.ID))
			continue
		}
		b.AddRow(row)
	}
	if editable {
		b.AddRow(button(c.Styles.Button, "+ "+c.tr("Order.AddItem"), TargetOrderAdd))
	}
	b.Add("")

	b.Add(c.Styles.Title.Render(c.tr("Order.Summary")))
	for _, line := range []struct {
		label string
		value float64
	}{
		{c.tr("Order.Subtotal"), v.Totals.Subtotal},
		{c.tr("Order.Duty"), v.Totals.Duty},
		{c.tr("Order.Freight"), v.Totals.Freight},
	} {
		b.Add(layout.Fit(c.Styles.Muted.Render(line.label), 20) + fmt.Sprintf("%14s", c.money(line.value)))
	}
	b.Add(layout.Fit(c.Styles.Title.Render(c.tr("Order.Total")), 20) + c.Styles.Accent.Render(fmt.Sprintf("%14s", c.money(v.Totals.Total))))
	b.Add("")

	if v.Status == order.StatusError {
		b.Add(c.Styles.Error.Render(layout.Truncate("✗ "+c.tr("Order.Failed"), w)))
		b.AddRow(button(c.Styles.ButtonPrimary, c.tr("Order.Retry"), TargetOrderDismiss))
		return b
	}
	b.AddRow(button(c.Styles.ButtonPrimary, c.tr("Order.Submit"), TargetOrderSave))
	return b
}
