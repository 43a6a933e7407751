package domain

import (
	"slices"
	"testing"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindShapedCrafting, len(CraftingCategories)},
		{KindSmoking, len(CookingCategories)},
		{KindSmithingTransform, 6},
		{KindStonecutting, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := tt.kind.Categories()
			if len(got) != tt.want {
				t.Fatalf("expected %d categories, got %v", tt.want, got)
			}
			sorted := slices.Sorted(slices.Values(got))
			if len(slices.Compact(sorted)) != len(got) {
				t.Fatalf("expected unique categories, got %v", got)
			}
		})
	}

	smithing := KindSmithingTransform.Categories()
	for _, c := range append(slices.Clone(CraftingCategories), CookingCategories...) {
		if !slices.Contains(smithing, c) {
			t.Fatalf("smithing should accept %q", c)
		}
	}
}
