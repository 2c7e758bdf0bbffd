package services

import "testing"

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		want     int
	}{
		{"no filters", "", "", 8},
		{"all category", "", AllCategories, 8},
		{"category", "", "Phones", 2},
		{"search name", "macbook", "", 1},
		{"search sku", "acc-", "", 2},
		{"search description", "mechanical keyboard", "", 1},
		{"search and category", "pro", "Laptops", 1},
		{"no match", "toaster", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(SampleProducts, tt.search, tt.category)
			if len(got) != tt.want {
				t.Errorf("FilterProducts(%q, %q) returned %d products, want %d", tt.search, tt.category, len(got), tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	cats := Categories(SampleProducts)
	if len(cats) == 0 || cats[0] != AllCategories {
		t.Fatalf("Categories() = %v, want %q first", cats, AllCategories)
	}
	for i := 2; i < len(cats); i++ {
		if cats[i-1] > cats[i] {
			t.Errorf("categories not sorted: %v", cats)
		}
	}
}

func TestQuickPick(t *testing.T) {
	if got := QuickPick(SampleProducts, 5); len(got) != 5 {
		t.Errorf("QuickPick(5) returned %d", len(got))
	}
	if got := QuickPick(SampleProducts, 50); len(got) != len(SampleProducts) {
		t.Errorf("QuickPick(50) returned %d", len(got))
	}
}

func TestProductToForm(t *testing.T) {
	p, ok := FindProduct(SampleProducts, "7")
	if !ok {
		t.Fatal("product 7 not found")
	}
	form := p.ToForm()
	if form.Quantity != "1" || form.Discount != "0" || form.Price != p.Price {
		t.Errorf("ToForm() = %+v", form)
	}
	if _, ok := FindProduct(SampleProducts, "missing"); ok {
		t.Error("FindProduct found a missing id")
	}
}

func TestFindTheme(t *testing.T) {
	if th, ok := FindTheme(DefaultThemeID); !ok || th.ID != DefaultThemeID {
		t.Errorf("FindTheme(default) = %+v, %v", th, ok)
	}
	if _, ok := FindTheme("neon"); ok {
		t.Error("FindTheme found unknown theme")
	}
}

func TestFindUser(t *testing.T) {
	if u, ok := FindUser(SampleUsers, "user1"); !ok || u.Name == "" {
		t.Errorf("FindUser(user1) = %+v, %v", u, ok)
	}
}
