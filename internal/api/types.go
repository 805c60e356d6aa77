package api

// User is the account profile returned by the auth endpoints.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is the body returned by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// FridgeItem is a single server-owned inventory entry.
type FridgeItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Fridge is the authoritative inventory for the current user.
type Fridge struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	Items []FridgeItem `json:"items"`
}

// Ingredient is one ingredient reference inside a recipe suggestion.
type Ingredient struct {
	ID       int     `json:"id"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Name     string  `json:"name"`
	Original string  `json:"original"`
}

// Recipe is a suggestion from the find-by-ingredients endpoint. It is
// read-only to the client and never persisted.
type Recipe struct {
	ID                    int          `json:"id"`
	Title                 string       `json:"title"`
	Image                 string       `json:"image"`
	ImageType             string       `json:"imageType"`
	UsedIngredientCount   int          `json:"usedIngredientCount"`
	MissedIngredientCount int          `json:"missedIngredientCount"`
	UsedIngredients       []Ingredient `json:"usedIngredients"`
	MissedIngredients     []Ingredient `json:"missedIngredients"`
	Likes                 int          `json:"likes"`
}

// RecipeResult is the outcome of a recipe search. When the server has
// no usable ingredients to work with it answers with a human-readable
// message instead of a list; that is an empty result with an
// explanation, not an error.
type RecipeResult struct {
	Recipes []Recipe
	Message string
}
