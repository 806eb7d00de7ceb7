package normalizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokens(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "simple title",
			in:   "Mobile Phone Case",
			want: []string{"mobile", "phone", "case"},
		},
		{
			name: "whitelist chars split tokens",
			in:   "Wi-Fi Router A/V Cable",
			want: []string{"wi", "fi", "router", "cable"},
		},
		{
			name: "plus survives inside a token",
			in:   "USB+C hub",
			want: []string{"usb+c", "hub"},
		},
		{
			name: "curly quote folds then strips",
			in:   "Men’s Watch",
			want: []string{"mens", "watch"},
		},
		{
			name: "stop words and short tokens dropped",
			in:   "New 128 GB phone for the car, 5 m cable",
			want: []string{"128", "phone", "car", "cable"},
		},
		{
			name: "punctuation and symbols stripped",
			in:   "Laptop (15.6\") — £499!",
			want: []string{"laptop", "156", "499"},
		},
		{
			name: "accents folded",
			in:   "Café Décor",
			want: []string{"cafe", "decor"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "only noise",
			in:   "!!! ??? ...",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokens(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokens(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTokensIdempotent(t *testing.T) {
	inputs := []string{
		"Apple iPhone 15 Pro Max 256GB — Unlocked",
		"Men’s Running Shoes size 10",
		"Health & Beauty / Skin Care",
		"café crème machine",
	}
	for _, in := range inputs {
		once := Tokens(in)
		again := Tokens(strings.Join(once, " "))
		if !reflect.DeepEqual(once, again) {
			t.Errorf("not idempotent for %q: first %v, second %v", in, once, again)
		}
	}
}

func TestTokensDeterministic(t *testing.T) {
	in := "Sony WH-1000XM5 Wireless Noise Cancelling Headphones"
	first := Tokens(in)
	for i := 0; i < 10; i++ {
		if got := Tokens(in); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
