package taxon

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

const listing = `# product taxonomy sample
1 - Electronics > Telephony > Mobile Phones
2 - Home & Garden > Furniture > Chairs
3 - Electronics > Audio > Headphones
4 - Electronics
5 - Clothing > Shoes > Running Shoes
`

func newLoaded(t *testing.T, opts ...Option) *Detector {
	t.Helper()
	d, err := New(append([]Option{WithSourceText(listing)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return d
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error when no source is configured")
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		opt  Option
	}{
		{"negative topk", WithTopK(-1)},
		{"zero temperature", WithTemperature(0)},
		{"negative temperature", WithTemperature(-0.5)},
		{"negative mindepth", WithMinDepth(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(WithSourceText(listing), tc.opt); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDetectBeforeLoad(t *testing.T) {
	d, err := New(WithSourceText(listing))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := d.Detect("mobile phone"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("error = %v, want ErrNotReady", err)
	}
}

func TestLoadEmptySource(t *testing.T) {
	d, err := New(WithSourceText("# only comments\n"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := d.Load(context.Background()); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("Load() error = %v, want ErrEmptySource", err)
	}
}

func TestDetect(t *testing.T) {
	d := newLoaded(t)

	got, err := d.Detect("mobile phone case")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected candidates")
	}
	if got[0].ID != 1 {
		t.Fatalf("top candidate = %d, want 1", got[0].ID)
	}
	if got[0].Leaf != "Mobile Phones" || got[0].Depth != 3 {
		t.Errorf("top candidate = %+v, want leaf Mobile Phones at depth 3", got[0])
	}

	var sum float64
	for _, c := range got {
		sum += c.Probability
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("probability mass = %g, want 1 ± 1e-6", sum)
	}
}

func TestDetectHonorsConfiguredOptions(t *testing.T) {
	d := newLoaded(t, WithTopK(2), WithMinDepth(3))

	got, err := d.Detect("electronics accessories")
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if len(got) > 2 {
		t.Fatalf("got %d candidates, want at most 2", len(got))
	}
	for _, c := range got {
		if c.Depth < 3 {
			t.Errorf("candidate %d depth %d below configured MinDepth", c.ID, c.Depth)
		}
	}
}

func TestDetectCategory(t *testing.T) {
	d := newLoaded(t)

	best, err := d.DetectCategory("noise cancelling headphones")
	if err != nil {
		t.Fatalf("DetectCategory() error: %v", err)
	}
	if best.ID != 3 {
		t.Fatalf("best.ID = %d, want 3", best.ID)
	}
	want := []string{"Electronics", "Audio", "Headphones"}
	if !reflect.DeepEqual(best.Path, want) {
		t.Fatalf("best.Path = %v, want %v", best.Path, want)
	}
}

func TestDetectCategoryNoMatch(t *testing.T) {
	d, err := New(WithSourceText("1 - Electronics\n2 - Clothing\n"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if _, err := d.DetectCategory("anything"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("error = %v, want ErrNoMatch", err)
	}
}

func TestRefresh(t *testing.T) {
	d := newLoaded(t)

	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	st := d.Stats()
	if !st.Ready || st.Entries != 5 {
		t.Fatalf("Stats() = %+v, want ready with 5 entries", st)
	}
}
