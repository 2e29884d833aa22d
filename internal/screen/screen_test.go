package screen

import (
	"sync"
	"testing"
)

func TestApply_DefaultTransitions(t *testing.T) {
	tests := []struct {
		from ID
		key  Key
		want ID
	}{
		{Home, Ok, Menu},
		{Home, Cancel, SystemInfo},
		{Home, Main, Home},
		{Home, Up, Home},
		{Menu, Cancel, Home},
		{Menu, Ok, Menu},
		{Menu, Main, Menu},
		{SystemInfo, Cancel, Home},
		{SystemInfo, Ok, SystemInfo},
		{Wifi, Cancel, Home},
		{Wifi, Press, Wifi},
	}
	for _, tt := range tests {
		if got := Apply(tt.from, tt.key); got != tt.want {
			t.Errorf("Apply(%s, %s) = %s, want %s", tt.from, tt.key, got, tt.want)
		}
	}
}

func TestApply_TotalAndDeterministic(t *testing.T) {
	for _, s := range All {
		for _, k := range Keys {
			first := Apply(s, k)
			if !first.Valid() {
				t.Fatalf("Apply(%s, %s) produced invalid screen %d", s, k, first)
			}
			if second := Apply(s, k); second != first {
				t.Errorf("Apply(%s, %s) not deterministic: %s then %s", s, k, first, second)
			}
		}
	}
}

func TestApply_RoundTrip(t *testing.T) {
	s := Home
	s = Apply(s, Cancel)
	if s != SystemInfo {
		t.Fatalf("expected system-info, got %s", s)
	}
	s = Apply(s, Cancel)
	if s != Home {
		t.Fatalf("expected home, got %s", s)
	}
}

func TestNewTable_MainReturnsHome(t *testing.T) {
	table := NewTable(Main)
	for _, s := range []ID{Menu, SystemInfo, Wifi} {
		if got := table.Apply(s, Main); got != Home {
			t.Errorf("Apply(%s, main) = %s, want home", s, got)
		}
		if got := table.Apply(s, Cancel); got != s {
			t.Errorf("Apply(%s, cancel) = %s, want no-op", s, got)
		}
	}
	if got := table.Apply(Home, Cancel); got != SystemInfo {
		t.Errorf("home cancel should still open system-info, got %s", got)
	}
}

func TestNewTable_ShortcutsOnlyFillNoOps(t *testing.T) {
	table := NewTable(Cancel,
		Shortcut{From: Home, Key: Right, To: Wifi},
		Shortcut{From: Home, Key: Ok, To: Wifi},
		Shortcut{From: Menu, Key: Down, To: ID(42)},
	)
	if got := table.Apply(Home, Right); got != Wifi {
		t.Errorf("shortcut home/right = %s, want wifi", got)
	}
	if got := table.Apply(Home, Ok); got != Menu {
		t.Errorf("shortcut must not override home/ok, got %s", got)
	}
	if got := table.Apply(Menu, Down); got != Menu {
		t.Errorf("invalid target should be ignored, got %s", got)
	}
}

func TestFooter(t *testing.T) {
	table := DefaultTable()
	tests := []struct {
		id   ID
		want Slots
	}{
		{Home, Slots{Left: "menu", Middle: "home", Right: "system-info"}},
		{Menu, Slots{Left: "", Middle: "menu", Right: "home"}},
		{SystemInfo, Slots{Left: "", Middle: "system-info", Right: "home"}},
		{Wifi, Slots{Left: "", Middle: "wifi", Right: "home"}},
	}
	for _, tt := range tests {
		if got := table.Footer(tt.id); got != tt.want {
			t.Errorf("Footer(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestFooter_MainReturnKey(t *testing.T) {
	table := NewTable(Main)
	if got := table.Footer(Home).Right; got != "system-info" {
		t.Errorf("home right slot = %q, want system-info", got)
	}
	if got := table.Footer(Menu).Right; got != "home" {
		t.Errorf("menu right slot = %q, want home", got)
	}
}

func TestParse(t *testing.T) {
	for _, id := range All {
		got, err := ParseID(id.String())
		if err != nil || got != id {
			t.Errorf("ParseID(%q) = %v, %v", id.String(), got, err)
		}
	}
	for _, k := range Keys {
		got, err := ParseKey(" " + k.String() + " ")
		if err != nil || got != k {
			t.Errorf("ParseKey(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKey("select"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := ParseID("settings"); err == nil {
		t.Error("expected error for unknown screen")
	}
}

func TestNavigator(t *testing.T) {
	nav := NewNavigator(nil)
	if nav.Current() != Home {
		t.Fatalf("navigator should start at home, got %s", nav.Current())
	}
	prev, next := nav.Apply(Ok)
	if prev != Home || next != Menu {
		t.Fatalf("Apply(ok) = %s -> %s", prev, next)
	}
	prev, next = nav.Apply(Ok)
	if prev != Menu || next != Menu {
		t.Fatalf("menu/ok should be a no-op, got %s -> %s", prev, next)
	}
	nav.Apply(Cancel)
	if nav.Current() != Home {
		t.Fatalf("expected home after cancel, got %s", nav.Current())
	}
}

func TestNavigator_ConcurrentApply(t *testing.T) {
	nav := NewNavigator(nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				nav.Apply(Keys[(i+j)%len(Keys)])
				_ = nav.Current()
			}
		}(i)
	}
	wg.Wait()
	if !nav.Current().Valid() {
		t.Fatalf("navigator ended on invalid screen %d", nav.Current())
	}
}
