package recipeimport

import (
	"strings"
)

const (
	// MaxJSONLDPromptChars and MaxSplitTextPromptChars apply when a JSON-LD recipe was found.
	// Without one, the cleaned text gets the whole MaxCleanedTextChars budget.
	MaxJSONLDPromptChars    = 3000
	MaxSplitTextPromptChars = 3000
)

// SystemPrompt is sent as the system message of every extraction request.
const SystemPrompt = "You are a precise recipe extraction engine. You read recipe web pages and answer with exactly one JSON object and nothing else."

const promptHeader = `Extract the recipe from the web page content below.

Return ONLY a JSON object with exactly this shape:
{
  "title": string,
  "description": string,
  "tags": string[],
  "ingredients": string[],
  "steps": string[]
}

Rules:
- Write every text value in English. Translate titles, descriptions, ingredients and steps when the page uses another language.
- "title": the dish name only, at most 6 words. Remove words like "recipe", "rezept" or "recette". Remove marketing words such as "best", "ultimate", "authentic", "perfect", "easy", "original". Remove the site name and anything after a ":", "-" or "|" separator.
- "description": one or two plain sentences about the dish, at most 500 characters. No marketing language.
- "tags": choose only from this list, lowercase, at most 10: `

const promptRules = `
- "ingredients": one entry per ingredient including its quantity, in the order the page lists them. At most 50.
- "steps": one entry per instruction step, in order, without numbering. At most 30.
- If the page contains no recipe, return empty arrays.
- Do not wrap the JSON in markdown.

Example input:
Page text:
Grandma's Best Banana Bread Recipe | Bake With Us. Ingredients: 3 ripe bananas, 75 g melted butter, 150 g sugar, 1 egg, 190 g flour, 1 tsp baking soda. Mash the bananas. Stir in the butter, sugar and egg. Fold in flour and baking soda. Bake at 175 C for 60 minutes.

Example output:
{"title":"Banana Bread","description":"A moist loaf made with ripe bananas and melted butter.","tags":["baking","breakfast"],"ingredients":["3 ripe bananas","75 g melted butter","150 g sugar","1 egg","190 g flour","1 tsp baking soda"],"steps":["Mash the bananas.","Stir in the butter, sugar and egg.","Fold in flour and baking soda.","Bake at 175 C for 60 minutes."]}

Now extract the recipe from this page.
`

// BuildPrompt assembles the user message for the model. It is deterministic.
func BuildPrompt(hint StructuredHint, cleanedText string) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString(strings.Join(Vocabulary, ", "))
	sb.WriteString(".")
	sb.WriteString(promptRules)

	if hint.RecipeJSONLD != "" {
		sb.WriteString("\nStructured data (JSON-LD):\n")
		sb.WriteString(truncateRunes(hint.RecipeJSONLD, MaxJSONLDPromptChars))
		sb.WriteString("\n\nPage text:\n")
		sb.WriteString(truncateRunes(cleanedText, MaxSplitTextPromptChars))
	} else {
		sb.WriteString("\nPage text:\n")
		sb.WriteString(truncateRunes(cleanedText, MaxCleanedTextChars))
	}
	sb.WriteString("\n")

	return sb.String()
}
