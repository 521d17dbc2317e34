package community

import "testing"

func TestSampleTipsDistinctFromPool(t *testing.T) {
	pool := map[string]bool{}
	for _, tip := range tips {
		pool[tip] = true
	}
	for i := 0; i < 50; i++ {
		got := SampleTips(3)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		seen := map[string]bool{}
		for _, tip := range got {
			if !pool[tip] {
				t.Fatalf("tip not from pool: %q", tip)
			}
			if seen[tip] {
				t.Fatalf("duplicate tip in one sample: %q", tip)
			}
			seen[tip] = true
		}
	}
}

func TestSampleTipsCappedAtPoolSize(t *testing.T) {
	got := SampleTips(TipPoolSize() + 10)
	if len(got) != TipPoolSize() {
		t.Fatalf("len = %d, want %d", len(got), TipPoolSize())
	}
}

func TestSampleTipsZeroAndNegative(t *testing.T) {
	if len(SampleTips(0)) != 0 {
		t.Fatalf("expected empty sample for 0")
	}
	if len(SampleTips(-1)) != 0 {
		t.Fatalf("expected empty sample for negative")
	}
}

func TestTipPoolSize(t *testing.T) {
	if TipPoolSize() != 30 {
		t.Fatalf("pool size = %d, want 30", TipPoolSize())
	}
}
