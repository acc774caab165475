// Package ladle provides a Go client for the ladle recipe catalog API.
//
// Every operation is a POST with a JSON body; the caller's group travels
// in the x-group-id header and decides write permissions server-side.
//
//	client := ladle.New("https://api.ladle.example",
//	    ladle.WithAPIKey("sk-..."),
//	    ladle.WithGroup("kitchen-a"),
//	)
//
//	egg, _ := client.Ingredients().Create(ctx, ladle.IngredientCreate{Name: "Egg"})
//	recipes, _ := client.Search().Keyword(ctx, ladle.KeywordQuery{Query: "tomato soup"})
//	_ = egg
//	_ = recipes
//
// Errors carry the HTTP status and the server's message; use errors.As
// with *APIError, or the IsNotFound helper for the common case.
package ladle
