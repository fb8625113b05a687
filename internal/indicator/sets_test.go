package indicator

import "testing"

func TestResolveNamedSets(t *testing.T) {
	cases := []struct {
		selector string
		want     []string
	}{
		{"default", []string{"SMA_20", "SMA_50", "RSI_14", "MACD", "VOLUME_SMA_20", "ADX_14"}},
		{"chart_basic", []string{"SMA_20", "SMA_50", "VOLUME_SMA_20"}},
		{"scan_momentum", []string{"RSI_14", "MACD", "STOCH"}},
		{"scan_volume", []string{"OBV", "VOLUME_SMA_20", "CMF_20"}},
	}

	for _, tc := range cases {
		got := Resolve(tc.selector)
		if len(got) != len(tc.want) {
			t.Fatalf("Resolve(%q): got %d names, want %d", tc.selector, len(got), len(tc.want))
		}
		for i, name := range got {
			if name != tc.want[i] {
				t.Errorf("Resolve(%q)[%d] = %s, want %s", tc.selector, i, name, tc.want[i])
			}
		}
	}
}

func TestResolveAllIsUnionOfSets(t *testing.T) {
	got := Resolve("all")
	if len(got) != len(registry) {
		t.Errorf("Resolve(all) returned %d names, registry has %d", len(got), len(registry))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Errorf("Resolve(all) not sorted: %s before %s", got[i-1], got[i])
		}
	}
}

func TestResolveEmptyDefaultsToDefaultSet(t *testing.T) {
	if got := Resolve(""); len(got) != 6 {
		t.Errorf("empty selector resolved %d names, want 6", len(got))
	}
}

func TestResolveCommaListAndPassthrough(t *testing.T) {
	got := Resolve("rsi_14, macd, NOPE_99")
	want := []string{"RSI_14", "MACD", "NOPE_99"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// Single unknown token passes through unvalidated.
	if got := Resolve("mystery"); len(got) != 1 || got[0] != "MYSTERY" {
		t.Errorf("single passthrough = %v", got)
	}
}

func TestValidateDropsUnknowns(t *testing.T) {
	defs := Validate([]string{"SMA_20", "NOPE_99", "MACD", "SMA_20"})
	if len(defs) != 2 {
		t.Fatalf("got %d defs, want 2 (unknowns and duplicates dropped)", len(defs))
	}
	if defs[0].Name != "SMA_20" || defs[1].Name != "MACD" {
		t.Errorf("got %s, %s", defs[0].Name, defs[1].Name)
	}
}

func TestRequiredHistory(t *testing.T) {
	if got := RequiredHistory(ResolveAndValidate("chart_full")); got != 200 {
		t.Errorf("RequiredHistory(chart_full) = %d, want 200 (SMA_200)", got)
	}
	if got := RequiredHistory(ResolveAndValidate("scan_volatility")); got != 20 {
		t.Errorf("RequiredHistory(scan_volatility) = %d, want 20 (BB_20)", got)
	}
	if got := RequiredHistory(nil); got != 0 {
		t.Errorf("RequiredHistory(nil) = %d, want 0", got)
	}
}

func TestRegistryMinHistory(t *testing.T) {
	want := map[string]int{
		"SMA_20": 20, "SMA_50": 50, "SMA_200": 200,
		"EMA_12": 25, "EMA_26": 50,
		"RSI_14": 15, "MACD": 35, "BB_20": 20,
		"ADX_14": 28, "ATR_14": 15, "STOCH": 14,
		"OBV": 2, "CMF_20": 21, "VOLUME_SMA_20": 20,
	}
	for name, min := range want {
		def, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		if def.MinHistory != min {
			t.Errorf("%s MinHistory = %d, want %d", name, def.MinHistory, min)
		}
	}
}
