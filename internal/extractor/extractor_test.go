// internal/extractor/extractor_test.go
package extractor

import (
	"testing"

	"github.com/hwcatalog/harvester/internal/config"
)

const specTable = `
<html><body>
<table class="nav-junk"><tr><td>Home</td><td>About</td></tr></table>
<table class="items-desktop-table">
  <thead>
    <tr><th>Name</th><th>Codename</th><th>Cores</th><th>Clock</th><th>Socket</th><th>Process</th><th>L3 Cache</th><th>TDP</th></tr>
  </thead>
  <tbody>
    <tr><td><a href="/cpu/1">AMD Ryzen 7 5800X</a></td><td>Vermeer</td><td>8 / 16</td><td>3.8 to 4.7 GHz</td><td>AM4</td><td>7 nm</td><td>32 MB</td><td>105 W</td></tr>
    <tr><td>Intel Core i5-12400F</td><td>Alder Lake</td><td>6 / 12</td><td>2.5 to 4.4 GHz</td><td>LGA1700</td><td>10 nm</td><td>18 MB</td><td>65 W</td></tr>
    <tr><td>Name</td><td>Codename</td><td>Cores</td><td>Clock</td><td>Socket</td><td>Process</td><td>L3 Cache</td><td>TDP</td></tr>
    <tr><td>AMD Ryzen 5 5600X</td><td>Vermeer</td><td>6 / 12</td><td>3.7 to 4.6 GHz</td><td>AM4</td><td>7 nm</td><td>32 MB</td></tr>
  </tbody>
</table>
</body></html>`

func TestTablesExtraction(t *testing.T) {
	tables, err := Tables(specTable, 3, 3)
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table (nav table skipped), got %d", len(tables))
	}

	table := tables[0]
	if len(table.Header) != 8 {
		t.Fatalf("header width = %d, want 8", len(table.Header))
	}
	if table.Header[0] != "Name" || table.Header[7] != "TDP" {
		t.Errorf("unexpected header: %v", table.Header)
	}

	// Header echo row dropped: 3 data rows remain.
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 data rows, got %d", len(table.Rows))
	}

	first := table.Rows[0]
	if first[0] != "AMD Ryzen 7 5800X" {
		t.Errorf("nested link text not flattened: %q", first[0])
	}
	if first[3] != "3.8 to 4.7 GHz" {
		t.Errorf("clock cell = %q", first[3])
	}

	// Short row padded to header width.
	last := table.Rows[2]
	if len(last) != 8 {
		t.Fatalf("short row not padded: width %d", len(last))
	}
	if last[7] != "" {
		t.Errorf("pad cell should be empty, got %q", last[7])
	}
}

func TestTablesSkipsSmallTables(t *testing.T) {
	markup := `<table>
	  <tr><th>A</th><th>B</th><th>C</th></tr>
	  <tr><td>1</td><td>2</td><td>3</td></tr>
	</table>`

	tables, err := Tables(markup, 3, 3)
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("table with 1 data row must be skipped, got %d tables", len(tables))
	}
}

func TestTablesDecodesEntities(t *testing.T) {
	markup := `<table>
	  <tr><th>Name</th><th>Price</th><th>Note</th></tr>
	  <tr><td>A &amp; B</td><td>&yen;1999</td><td>x</td></tr>
	  <tr><td>C</td><td>2</td><td>y</td></tr>
	  <tr><td>D</td><td>3</td><td>z</td></tr>
	</table>`

	tables, err := Tables(markup, 3, 3)
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if got := tables[0].Rows[0][0]; got != "A & B" {
		t.Errorf("entity not decoded: %q", got)
	}
	if got := tables[0].Rows[0][1]; got != "¥1999" {
		t.Errorf("entity not decoded: %q", got)
	}
}

const listingPage = `
<div id="results">
  <div class="gl-item">
    <div class="p-name"><a href="//item.example.com/100"><em>NVIDIA GeForce RTX 4060 8GB GDDR6</em></a></div>
    <div class="p-price"><strong><i>2499.00</i></strong></div>
  </div>
  <div class="gl-item">
    <div class="p-name"><a href="https://item.example.com/200"><em>AMD Radeon RX 7600 8GB</em></a></div>
    <div class="p-price"><strong><i>2099.00</i></strong></div>
  </div>
  <div class="gl-item">
    <div class="p-name"><a href="/300"><em></em></a></div>
    <div class="p-price"><strong><i>999.00</i></strong></div>
  </div>
</div>`

func TestListingsExtraction(t *testing.T) {
	table, err := Listings(listingPage, config.ListingSelectors{
		Item:  ".gl-item",
		Title: ".p-name em",
		Price: ".p-price i",
		Link:  ".p-name a",
	})
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}

	if len(table.Header) != 3 || table.Header[0] != "Name" {
		t.Errorf("unexpected synthetic header: %v", table.Header)
	}
	// Titleless third item dropped.
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 items, got %d", len(table.Rows))
	}

	first := table.Rows[0]
	if first[0] != "NVIDIA GeForce RTX 4060 8GB GDDR6" {
		t.Errorf("title = %q", first[0])
	}
	if first[1] != "2499.00" {
		t.Errorf("price = %q", first[1])
	}
	if first[2] != "https://item.example.com/100" {
		t.Errorf("scheme-relative link not absolutized: %q", first[2])
	}
}

func TestListingsRequiresItemSelector(t *testing.T) {
	if _, err := Listings("<div></div>", config.ListingSelectors{}); err == nil {
		t.Error("empty item selector must error")
	}
}
