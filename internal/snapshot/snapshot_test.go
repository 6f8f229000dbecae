package snapshot

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

func TestRoundTrip(t *testing.T) {
	in := []domain.Recipe{
		{
			ID:           "a",
			Name:         "Pancakes",
			Ingredients:  []string{"flour", "milk", "egg"},
			Instructions: "Mix and fry.",
			Category:     domain.CategoryDessert,
			IsFavorite:   true,
			PrepTime:     domain.IntPtr(15),
			Servings:     domain.IntPtr(4),
		},
		{
			ID:           "b",
			Name:         "Lemonade",
			Ingredients:  []string{"lemon", "water", "sugar"},
			Instructions: "Squeeze, stir.",
			ImageURL:     "https://example.com/lemonade.jpg",
			Category:     domain.CategoryBeverage,
		},
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode([]domain.Recipe{{ID: "x", Name: "n", Ingredients: []string{"i"}, Instructions: "s", Category: domain.CategorySnack}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"id"`, `"name"`, `"ingredients"`, `"instructions"`, `"imageUrl"`, `"category"`, `"isFavorite"`} {
		if !strings.Contains(s, key) {
			t.Errorf("missing key %s in %s", key, s)
		}
	}
	for _, key := range []string{`"prepTime"`, `"servings"`} {
		if strings.Contains(s, key) {
			t.Errorf("absent optional %s should be omitted: %s", key, s)
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %s", data)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantLen     int
		wantCorrupt bool
	}{
		{"empty", "", 0, false},
		{"whitespace", "  \n", 0, false},
		{"null", "null", 0, false},
		{"empty array", "[]", 0, false},
		{"one recipe", `[{"id":"1","name":"Toast","ingredients":["bread"],"instructions":"toast it","category":"Snack","isFavorite":false,"prepTime":null}]`, 1, false},
		{"truncated", `[{"id":"1","name":`, 0, true},
		{"wrong shape", `{"recipes":[]}`, 0, true},
		{"garbage", "not json at all", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if tt.wantCorrupt {
				if !errors.Is(err, domain.ErrCorruptSnapshot) {
					t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
				}
				var de *domain.DeserializationError
				if !errors.As(err, &de) {
					t.Fatalf("expected *DeserializationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("expected %d recipes, got %d", tt.wantLen, len(got))
			}
		})
	}
}
