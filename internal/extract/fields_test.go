package extract

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/Havardbaban/buildcarbon-sub000/internal/textnorm"
)

func TestVendor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		none bool
	}{
		{
			name: "explicit label",
			text: "Leverandør: Byggfirma AS\nFakturanr: 1001\n",
			want: "Byggfirma AS",
		},
		{
			name: "line above org number",
			text: "Side 1\nNordisk Betong AS\nOrg.nr 987 654 321\n",
			want: "Nordisk Betong AS",
		},
		{
			name: "first plausible top line",
			text: "Maskinutleie Vest\nStorgata 1\n0155 Oslo\n",
			want: "Maskinutleie Vest",
		},
		{
			name: "labeled value that is noise falls through",
			text: "Fra: 990 011 223 344\nEntreprenør Øst AS\nOrg.nr 987 654 321\n",
			want: "Entreprenør Øst AS",
		},
		{
			name: "nothing usable",
			text: "123456\n987,00\n",
			none: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vendor(textnorm.Lines(tt.text), 12)
			if tt.none {
				if got != nil {
					t.Fatalf("want nil vendor, got %q", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("want %q, got nil", tt.want)
			}
			if *got != tt.want {
				t.Errorf("vendor = %q, want %q", *got, tt.want)
			}
		})
	}
}

func TestInvoiceNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		none bool
	}{
		{"norwegian label", "Fakturanr: 2024-0042\n", "2024-0042", false},
		{"english label", "Invoice No. INV12345\n", "INV12345", false},
		{"bare faktura word", "Faktura 100587\n", "100587", false},
		{"token too short", "Invoice No. 12\n", "", true},
		{"no label", "Betaling innen 14 dager\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvoiceNumber(textnorm.Lines(tt.text))
			if tt.none {
				if got != nil {
					t.Fatalf("want nil, got %q", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("invoice number = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestOrgNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		none bool
	}{
		{"labeled with spaces", "Org.nr 987 654 321\n", "987654321", false},
		{"labeled compact", "Organisasjonsnummer: 912345678\n", "912345678", false},
		{"bare nine digits", "Byggfirma AS 987 654 321 MVA\n", "987654321", false},
		{"labeled but wrong length", "Org.nr 12345678\n", "", true},
		{"no digits", "Ingen identifikator\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrgNumber(textnorm.Lines(tt.text))
			if tt.none {
				if got != nil {
					t.Fatalf("want nil, got %q", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("org number = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestIssueDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		none bool
	}{
		{"labeled date", "Fakturadato: 15.03.2024\n", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"bare token", "Oslo, 02/01/2023\n", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"two digit year 1900s", "Dato: 01.06.98\n", time.Date(1998, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"two digit year 2000s", "Dato: 01.06.24\n", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"invalid day and month rejected", "Dato: 45.13.2024\n", time.Time{}, true},
		{"normalized impossible date rejected", "Dato: 31.02.2024\n", time.Time{}, true},
		{"no date", "Ingen dato her\n", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IssueDate(textnorm.Lines(tt.text))
			if tt.none {
				if got != nil {
					t.Fatalf("want nil date, got %v", got)
				}
				return
			}
			if got == nil || !got.Equal(tt.want) {
				t.Errorf("issue date = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"default home currency", "Ingen valuta nevnt\n", "NOK"},
		{"iso code", "Totalt EUR 1 200,00\n", "EUR"},
		{"kr marker", "Å betale: kr 500,00\n", "NOK"},
		{"euro symbol", "Total € 99,00\n", "EUR"},
		{"currency word", "Betales i euro\n", "EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(textnorm.Lines(tt.text), "NOK"); got != tt.want {
				t.Errorf("currency = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeaderQuantities(t *testing.T) {
	lines := textnorm.Lines("Strømforbruk 1 250 kWh\nDiesel levert 200 liter\nNaturgass 85 m3\nUtslipp 12,5 kg CO2\n")

	if d := EnergyKwh(lines); d == nil || d.String() != "1250" {
		t.Errorf("energy = %v, want 1250", d)
	}
	if d := FuelLiters(lines); d == nil || d.String() != "200" {
		t.Errorf("fuel = %v, want 200", d)
	}
	if d := GasM3(lines); d == nil || d.String() != "85" {
		t.Errorf("gas = %v, want 85", d)
	}
	if d := StatedCO2Kg(lines); d == nil || d.String() != "12.5" {
		t.Errorf("co2 = %v, want 12.5", d)
	}
}

func TestHeaderQuantityIgnoresPrecedingAmount(t *testing.T) {
	// a monetary amount on the same line must not merge into the quantity
	lines := textnorm.Lines("Diesel kr 5 360,00 200 liter\n")
	if d := FuelLiters(lines); d == nil || d.String() != "200" {
		t.Errorf("fuel = %v, want 200", d)
	}
	lines = textnorm.Lines("Byggstrøm kr 1 200,00 1500 kwh\n")
	if d := EnergyKwh(lines); d == nil || d.String() != "1500" {
		t.Errorf("energy = %v, want 1500", d)
	}
}

func TestFuelLitersNeedsContext(t *testing.T) {
	// a bare liter token without fuel context is too ambiguous
	if d := FuelLiters(textnorm.Lines("Maling 10 l\n")); d != nil {
		t.Errorf("expected nil, got %s", d.String())
	}
}

func TestHeaderDeterministic(t *testing.T) {
	e := New(slog.Default(), Config{HomeCurrency: "NOK"})
	lines := textnorm.Lines("Byggfirma AS\nOrg.nr 987 654 321\nFakturanr: 1001\nFakturadato: 15.03.2024\nTotal: kr 12 450,00\n")
	first := e.Header(lines)
	for i := 0; i < 10; i++ {
		if got := e.Header(lines); !reflect.DeepEqual(got, first) {
			t.Fatalf("Header not deterministic on run %d", i)
		}
	}
}
