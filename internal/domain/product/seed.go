// internal/domain/product/seed.go
package product

// defaultProducts is the built-in demo catalog
var defaultProducts = []Product{
	{
		ID:          "1",
		Name:        "Aura Wireless Headphones",
		Description: "Over-ear noise cancelling headphones with 40 hour battery life.",
		Price:       19999,
		Category:    "Electronics",
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e",
		Rating:      4.8,
		Reviews:     1240,
	},
	{
		ID:          "2",
		Name:        "Minimalist Leather Watch",
		Description: "Slim stainless steel case with an Italian leather strap.",
		Price:       12900,
		Category:    "Fashion",
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30",
		Rating:      4.6,
		Reviews:     856,
	},
	{
		ID:          "3",
		Name:        "Nova Smartphone X",
		Description: "6.5 inch OLED display, triple camera and all-day battery.",
		Price:       89900,
		Category:    "Electronics",
		Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9",
		Rating:      4.7,
		Reviews:     2310,
	},
	{
		ID:          "4",
		Name:        "Classic Canvas Sneakers",
		Description: "Everyday low-top sneakers with a cushioned sole.",
		Price:       5900,
		Category:    "Fashion",
		Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff",
		Rating:      4.4,
		Reviews:     642,
	},
	{
		ID:          "5",
		Name:        "Ceramic Pour-Over Set",
		Description: "Hand-glazed dripper and carafe for slow morning coffee.",
		Price:       4500,
		Category:    "Home",
		Image:       "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085",
		Rating:      4.9,
		Reviews:     318,
	},
	{
		ID:          "6",
		Name:        "Portable Bluetooth Speaker",
		Description: "Waterproof speaker with deep bass and 12 hour playtime.",
		Price:       7999,
		Category:    "Electronics",
		Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1",
		Rating:      4.5,
		Reviews:     977,
	},
	{
		ID:          "7",
		Name:        "Wool Blend Overcoat",
		Description: "Tailored single-breasted coat for cold city days.",
		Price:       24900,
		Category:    "Fashion",
		Image:       "https://images.unsplash.com/photo-1539533018447-63fcce2678e3",
		Rating:      4.3,
		Reviews:     211,
	},
	{
		ID:          "8",
		Name:        "Linen Throw Blanket",
		Description: "Stonewashed linen throw, breathable and soft.",
		Price:       6800,
		Category:    "Home",
		Image:       "https://images.unsplash.com/photo-1522771739844-6a9f6d5f14af",
		Rating:      4.7,
		Reviews:     154,
	},
}

// DefaultCatalog returns the built-in demo catalog
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultProducts)
	if err != nil {
		panic(err)
	}
	return c
}
