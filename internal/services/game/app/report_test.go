package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/louisbranch/cookieclicker/internal/services/game/domain/catalog"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/clicker"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/pricing"
	"golang.org/x/text/language"
)

func TestWriteReport(t *testing.T) {
	c := catalog.Default()
	state, err := clicker.NewGame(pricing.Default())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	state, err = state.AdjustBank(12345)
	if err != nil {
		t.Fatalf("fund: %v", err)
	}
	state, err = state.TransactBuildings(c.MustBuilding(catalog.Farm), 1)
	if err != nil {
		t.Fatalf("buy farm: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, language.AmericanEnglish, c, state); err != nil {
		t.Fatalf("write report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"bank:", "11,245.00", "farm", "1 owned", "8.00/s", "next 1,26"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cursor") {
		t.Fatalf("report lists unowned buildings:\n%s", out)
	}
}
