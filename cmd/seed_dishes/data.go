package main

import "github.com/pageza/vegandiet/backend/internal/models"

func ing(name, quantity, category string) models.Ingredient {
	return models.Ingredient{Name: name, Quantity: quantity, Category: category}
}

var seedDishes = []models.Dish{
	{
		Name:        "Tofu Scramble",
		Description: "A savory vegan alternative to scrambled eggs",
		Ingredients: []models.Ingredient{
			ing("Tofu", "400g", "Proteins"),
			ing("Nutritional Yeast", "2 tbsp", "Pantry Staples"),
			ing("Garlic", "2 cloves", "Produce"),
			ing("Onion", "1 medium", "Produce"),
		},
		Instructions: []string{
			"Crumble tofu into a pan",
			"Sauté onion and garlic until fragrant",
			"Add tofu and nutritional yeast",
			"Cook for 5-7 minutes, stirring occasionally",
			"Season with turmeric, salt, and pepper",
		},
		PrepTime: 10, CookTime: 15, Servings: 2,
		Difficulty:      models.DifficultyEasy,
		Cuisine:         "American",
		Tags:            []string{"breakfast", "protein", "quick"},
		MealType:        models.Breakfast,
		NutritionalInfo: models.NutritionalInfo{Calories: 320, Protein: 24, Carbs: 12, Fat: 18, Fiber: 4},
	},
	{
		Name:        "Overnight Oats with Berries",
		Description: "Creamy oats soaked in almond milk with fresh berries",
		Ingredients: []models.Ingredient{
			ing("Rolled Oats", "1 cup", "Grains & Pasta"),
			ing("Almond Milk", "1 cup", "Dairy Alternatives"),
			ing("Chia Seeds", "1 tbsp", "Nuts & Seeds"),
			ing("Mixed Berries", "1/2 cup", "Produce"),
		},
		Instructions: []string{
			"Combine oats, almond milk and chia seeds in a jar",
			"Refrigerate overnight",
			"Top with berries before serving",
		},
		PrepTime: 5, CookTime: 0, Servings: 1,
		Difficulty:      models.DifficultyEasy,
		Cuisine:         "International",
		Tags:            []string{"breakfast", "make-ahead"},
		MealType:        models.Breakfast,
		NutritionalInfo: models.NutritionalInfo{Calories: 380, Protein: 12, Carbs: 58, Fat: 11, Fiber: 10},
	},
	{
		Name:        "Vegan Buddha Bowl",
		Description: "A nutritious bowl with quinoa, roasted chickpeas and tahini dressing",
		Ingredients: []models.Ingredient{
			ing("Quinoa", "1 cup", "Grains & Pasta"),
			ing("Spinach", "2 cups", "Produce"),
			ing("Avocado", "1 whole", "Produce"),
			ing("Chickpeas", "1 cup", "Proteins"),
		},
		Instructions: []string{
			"Cook quinoa according to package instructions",
			"Roast chickpeas with spices at 200°C for 20 minutes",
			"Arrange spinach, quinoa, chickpeas and sliced avocado in a bowl",
			"Drizzle with tahini dressing",
		},
		PrepTime: 15, CookTime: 30, Servings: 2,
		Difficulty:      models.DifficultyEasy,
		Cuisine:         "International",
		Tags:            []string{"healthy", "bowl"},
		MealType:        models.Lunch,
		NutritionalInfo: models.NutritionalInfo{Calories: 540, Protein: 19, Carbs: 62, Fat: 24, Fiber: 16},
	},
	{
		Name:        "Black Bean Tacos",
		Description: "Smoky black beans with corn salsa in soft tortillas",
		Ingredients: []models.Ingredient{
			ing("Black Beans", "1 can", "Canned & Jarred"),
			ing("Corn Tortillas", "6", "Grains & Pasta"),
			ing("Corn", "1 cup", "Frozen"),
			ing("Lime", "1", "Produce"),
		},
		Instructions: []string{
			"Warm the beans with cumin and smoked paprika",
			"Mix corn with lime juice and chopped cilantro",
			"Fill warm tortillas with beans and salsa",
		},
		PrepTime: 10, CookTime: 10, Servings: 2,
		Difficulty:      models.DifficultyEasy,
		Cuisine:         "Mexican",
		Tags:            []string{"quick", "lunch"},
		MealType:        models.Lunch,
		NutritionalInfo: models.NutritionalInfo{Calories: 460, Protein: 17, Carbs: 78, Fat: 8, Fiber: 18},
	},
	{
		Name:        "Lentil Curry",
		Description: "Creamy and flavorful Indian-style lentil curry",
		Ingredients: []models.Ingredient{
			ing("Lentils", "2 cups", "Proteins"),
			ing("Coconut Milk", "1 can", "Dairy Alternatives"),
			ing("Tomatoes", "3 medium", "Produce"),
			ing("Onion", "1 large", "Produce"),
		},
		Instructions: []string{
			"Sauté onions until golden",
			"Add curry powder, cumin and turmeric",
			"Add lentils, tomatoes and coconut milk",
			"Simmer for 25-30 minutes until lentils are tender",
			"Serve with rice or naan",
		},
		PrepTime: 10, CookTime: 35, Servings: 4,
		Difficulty:      models.DifficultyMedium,
		Cuisine:         "Indian",
		Tags:            []string{"curry", "comfort-food"},
		MealType:        models.Dinner,
		NutritionalInfo: models.NutritionalInfo{Calories: 610, Protein: 26, Carbs: 70, Fat: 25, Fiber: 19},
	},
	{
		Name:        "Mushroom Risotto",
		Description: "Creamy vegan risotto with mixed mushrooms",
		Ingredients: []models.Ingredient{
			ing("Mushrooms", "500g", "Produce"),
			ing("Arborio Rice", "2 cups", "Grains & Pasta"),
			ing("Nutritional Yeast", "3 tbsp", "Pantry Staples"),
			ing("Olive Oil", "3 tbsp", "Pantry Staples"),
		},
		Instructions: []string{
			"Sauté mushrooms in olive oil until golden",
			"Add rice and toast for 2 minutes",
			"Gradually add vegetable broth, stirring constantly",
			"Cook until rice is creamy and tender, about 25 minutes",
			"Stir in nutritional yeast and season to taste",
		},
		PrepTime: 10, CookTime: 35, Servings: 4,
		Difficulty:      models.DifficultyMedium,
		Cuisine:         "Italian",
		Tags:            []string{"risotto", "comfort-food"},
		MealType:        models.Dinner,
		NutritionalInfo: models.NutritionalInfo{Calories: 580, Protein: 14, Carbs: 88, Fat: 17, Fiber: 6},
	},
	{
		Name:        "Tempeh Stir-Fry",
		Description: "Crispy tempeh with vegetables in a ginger soy glaze",
		Ingredients: []models.Ingredient{
			ing("Tempeh", "250g", "Proteins"),
			ing("Bell Peppers", "2", "Produce"),
			ing("Broccoli", "1 head", "Produce"),
			ing("Soy Sauce", "3 tbsp", "Condiments"),
		},
		Instructions: []string{
			"Cube and pan-fry the tempeh until crisp",
			"Stir-fry peppers and broccoli for 4 minutes",
			"Add tempeh and soy sauce with grated ginger",
			"Serve over rice",
		},
		PrepTime: 15, CookTime: 15, Servings: 2,
		Difficulty:      models.DifficultyMedium,
		Cuisine:         "Asian",
		Tags:            []string{"stir-fry", "high-protein"},
		MealType:        models.Dinner,
		NutritionalInfo: models.NutritionalInfo{Calories: 520, Protein: 32, Carbs: 40, Fat: 24, Fiber: 9},
	},
}

var seedStores = []models.Store{
	{Name: "Whole Foods Market", Address: "123 Rue de Rivoli, 75001 Paris, France", Location: models.NewGeoPoint(48.8566, 2.3522), Type: "organic-store"},
	{Name: "Bio c' Bon", Address: "45 Boulevard Saint-Germain, 75005 Paris, France", Location: models.NewGeoPoint(48.8534, 2.3488), Type: "organic-store"},
	{Name: "Naturalia", Address: "78 Rue de la Pompe, 75016 Paris, France", Location: models.NewGeoPoint(48.8606, 2.3364), Type: "organic-store"},
}
