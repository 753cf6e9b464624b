package app

import (
	"io"

	"github.com/louisbranch/cookieclicker/internal/services/game/domain/catalog"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/clicker"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteReport prints a human-readable summary of state, formatting numbers
// for tag. Rates are shown per second at the catalog tick rate.
func WriteReport(w io.Writer, tag language.Tag, c *catalog.Catalog, state clicker.State) error {
	p := message.NewPrinter(tag)
	tps := float64(c.TicksPerSecond())

	if _, err := p.Fprintf(w, "ticks:            %d\n", state.Ticks()); err != nil {
		return err
	}
	lines := []struct {
		label string
		value float64
	}{
		{label: "bank", value: state.Bank()},
		{label: "cookies baked", value: state.CookiesBaked()},
		{label: "handmade cookies", value: state.HandmadeCookies()},
		{label: "cookies/second", value: state.TotalRate() * tps},
		{label: "cookies/click", value: state.CookiesPerClick()},
		{label: "clicks/second", value: state.ClickingRate() * tps},
	}
	for _, line := range lines {
		if _, err := p.Fprintf(w, "%-17s %.2f\n", line.label+":", line.value); err != nil {
			return err
		}
	}
	for _, t := range c.Buildings() {
		count := state.Count(t)
		if count == 0 {
			continue
		}
		price, err := state.TransactionPrice(t, 1)
		if err != nil {
			return err
		}
		if _, err := p.Fprintf(w, "  %-15s %d owned, %.2f/s, next %.0f\n", t.ID, count, state.Rate(t)*tps, price); err != nil {
			return err
		}
	}
	for _, u := range state.Upgrades() {
		if _, err := p.Fprintf(w, "  upgrade %s\n", u.ID); err != nil {
			return err
		}
	}
	for _, b := range state.ActiveBuffs() {
		if _, err := p.Fprintf(w, "  buff %s %d/%d ticks\n", b.ID, b.TimeLeft, b.TimeTotal); err != nil {
			return err
		}
	}
	return nil
}
