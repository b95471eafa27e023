package catalog

import (
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
)

// Seed ids match the catalog migrations so both storage backends expose the same products.
const (
	CategoryWomen  = "40e58a25-7a1f-4fed-b5ff-26b9bf4f3029"
	CategoryMen    = "fe9a246b-7af2-4a64-93f1-f28736a6f653"
	CategorySummer = "c4c9f797-1ca1-4ae7-8737-575292dfc868"
	CategoryWinter = "a985c613-8530-48a2-8a07-bab7005a1ff9"
)

func SeedCategories() []*domain.Category {
	return []*domain.Category{
		{ID: CategoryWomen, Name: "Women", Description: "Women's clothing"},
		{ID: CategoryMen, Name: "Men", Description: "Men's clothing"},
		{ID: CategorySummer, Name: "Summer Wear", Description: "Light clothing for summer"},
		{ID: CategoryWinter, Name: "Winter Wear", Description: "Warm clothing for winter"},
	}
}

func SeedProducts() []*domain.Product {
	now := time.Now().UTC()
	p := func(id, name, description string, price, taxRate int64, categoryID, sku, image string) *domain.Product {
		return &domain.Product{
			ID:          id,
			Name:        name,
			Description: description,
			Price:       decimal.NewFromInt(price),
			TaxRate:     decimal.NewFromInt(taxRate),
			CategoryID:  categoryID,
			SKU:         sku,
			ImageURL:    "https://images.unsplash.com/" + image + "?w=400",
			CreatedAt:   now,
		}
	}

	return []*domain.Product{
		p("23a625aa-c13b-4c51-845d-724639543338", "Silk Scarf", "Elegant silk scarf in various colors", 499, 5, CategoryWomen, "SCARF-001", "photo-1601924994987-69e26d50dc26"),
		p("48d84c91-f52c-4dd0-b88f-f1aa2ee63bda", "Designer Dress", "Beautiful floral summer dress", 2999, 12, CategoryWomen, "DRESS-001", "photo-1595777457583-95e059d581b8"),
		p("18091dee-7777-4900-9e7d-3a0874de3381", "Women's Blazer", "Professional blazer for office wear", 3999, 12, CategoryWomen, "BLAZER-W-001", "photo-1591369822096-ffd140ec948f"),
		p("01f5f3ed-ad95-4153-863e-f38080c0e346", "Cotton Shirt", "Comfortable cotton shirt", 1299, 5, CategoryMen, "SHIRT-M-001", "photo-1602810318383-e386cc2a3ccf"),
		p("4b465ff2-c73e-468e-a749-3f5186518598", "Denim Jeans", "Classic blue denim jeans", 1999, 12, CategoryMen, "JEANS-M-001", "photo-1542272604-787c3835535d"),
		p("f675528b-187a-4c11-8d1b-49e2eda8c6d3", "Men's Blazer", "Formal blazer for special occasions", 4999, 12, CategoryMen, "BLAZER-M-001", "photo-1507679799987-c73779587ccf"),
		p("dcb5a6d6-7720-491a-ab0e-5800bebbbe82", "Summer T-Shirt", "Lightweight cotton t-shirt", 599, 5, CategorySummer, "TSHIRT-SUM-001", "photo-1521572163474-6864f9cf17ab"),
		p("83bcb083-b313-46d5-8013-fada661cbb65", "Beach Shorts", "Comfortable shorts for beach", 899, 5, CategorySummer, "SHORTS-001", "photo-1591195853828-11db59a44f6b"),
		p("6b125319-89ce-4282-967b-0c5afc26a1bd", "Sun Hat", "Wide-brim sun protection hat", 699, 5, CategorySummer, "HAT-001", "photo-1588850561407-ed78c282e89b"),
		p("5f349de0-00da-4484-a741-e5637c38062a", "Wool Sweater", "Warm wool sweater", 2499, 12, CategoryWinter, "SWEATER-001", "photo-1576871337622-98d48d1cf531"),
		p("75a8d8fa-ec19-43b2-8835-1a11f27b8d9d", "Winter Jacket", "Heavy winter jacket with hood", 4999, 12, CategoryWinter, "JACKET-001", "photo-1548126032-79d6f8a8567e"),
		p("d1779fe9-3ed3-4299-83f5-e3f60ae76895", "Woolen Scarf", "Cozy woolen scarf", 799, 5, CategoryWinter, "SCARF-W-001", "photo-1520903920243-00d872a2d1c9"),
	}
}
