package configs

import (
	"log"

	"cafebot/entity"
)

// SeedMenu fills the catalog on first boot. FirstOrCreate keyed on the unique
// name keeps it idempotent across restarts.
func SeedMenu() error {
	db := DB()

	var count int64
	if err := db.Model(&entity.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("menu already seeded")
		return nil
	}

	root := func(name string) (*entity.Category, error) {
		c := entity.Category{Name: name}
		err := db.FirstOrCreate(&c, entity.Category{Name: name}).Error
		return &c, err
	}
	sub := func(name string, parent *entity.Category) (*entity.Category, error) {
		c := entity.Category{Name: name, ParentID: &parent.ID}
		err := db.FirstOrCreate(&c, entity.Category{Name: name}).Error
		return &c, err
	}

	drinks, err := root("🥤 Drinks")
	if err != nil {
		return err
	}
	desserts, err := root("🍰 Desserts")
	if err != nil {
		return err
	}

	hot, err := sub("Hot drinks", drinks)
	if err != nil {
		return err
	}
	cold, err := sub("Cold drinks", drinks)
	if err != nil {
		return err
	}
	bakery, err := sub("Bakery", desserts)
	if err != nil {
		return err
	}
	cakes, err := sub("Cakes", desserts)
	if err != nil {
		return err
	}

	str := func(s string) *string { return &s }
	items := []entity.MenuItem{
		{Name: "Espresso", Price: 120, Description: str("Classic strong coffee. 40 ml."), CategoryID: hot.ID},
		{Name: "Americano", Price: 140, Description: str("Espresso with hot water. 180 ml."), CategoryID: hot.ID},
		{Name: "Cappuccino", Price: 180, Description: str("Coffee with silky milk foam. 250 ml."), CategoryID: hot.ID},
		{Name: "Latte", Price: 200, Description: str("More milk than a cappuccino. 300 ml."), CategoryID: hot.ID},
		{Name: "Cocoa", Price: 170, Description: str("Hot chocolate with milk. 250 ml."), CategoryID: hot.ID},
		{Name: "Black tea", Price: 100, Description: str("Assam or Earl Grey. 400 ml."), CategoryID: hot.ID},
		{Name: "Masala chai", Price: 220, Description: str("Spiced Indian tea with milk. 300 ml."), CategoryID: hot.ID},

		{Name: "Iced latte", Price: 220, Description: str("Chilled coffee with milk over ice. 350 ml."), CategoryID: cold.ID},
		{Name: "Iced tea", Price: 150, Description: str("Black or green, with ice and lemon. 400 ml."), CategoryID: cold.ID},
		{Name: "Classic lemonade", Price: 160, Description: str("Fresh lemon, mint, soda water. 400 ml."), CategoryID: cold.ID},
		{Name: "Fresh juice", Price: 250, Description: str("Orange, apple or carrot. 300 ml."), CategoryID: cold.ID},

		{Name: "Butter croissant", Price: 110, Description: str("Crisp and airy. ~70 g."), CategoryID: bakery.ID},
		{Name: "Almond croissant", Price: 150, Description: str("Almond cream and flakes. ~90 g."), CategoryID: bakery.ID},
		{Name: "Chocolate muffin", Price: 140, Description: str("With dark chocolate chunks. ~110 g."), CategoryID: bakery.ID},
		{Name: "Cinnamon roll", Price: 220, Description: str("Cinnamon bun with cream cheese. ~180 g."), CategoryID: bakery.ID},

		{Name: "New York cheesecake", Price: 280, Description: str("Classic cheesecake on a shortbread base. 150 g."), CategoryID: cakes.ID},
		{Name: "Tiramisu", Price: 260, Description: str("Mascarpone and coffee. 140 g."), CategoryID: cakes.ID},
		{Name: "Honey cake", Price: 240, Description: str("Thin honey layers. 160 g."), CategoryID: cakes.ID},
		{Name: "Macaron", Price: 90, Description: str("French almond cookie, one piece. ~20 g."), CategoryID: cakes.ID},
	}
	for i := range items {
		if err := db.FirstOrCreate(&items[i], entity.MenuItem{Name: items[i].Name, CategoryID: items[i].CategoryID}).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Menu seeded")
	return nil
}
