package recipeimport

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/user/recipe-service/internal/entity"
)

const (
	MaxTitleChars       = 200
	MaxDescriptionChars = 500
	MaxTags             = 10
	MaxIngredients      = 50
	MaxSteps            = 30
)

var (
	ErrUnparsableOutput = errors.New("model output is not valid JSON")
	ErrIncompleteRecipe = errors.New("extracted recipe is missing a title, ingredients or steps")
)

var (
	leadingFenceRe  = regexp.MustCompile("(?i)^\\s*```(?:json)?\\s*")
	trailingFenceRe = regexp.MustCompile("\\s*```\\s*$")

	genericTitleWordRe  = regexp.MustCompile(`(?i)\b(?:recipes?|rezepte?|recettes?|recetas?|ricett[ae])\b`)
	leadingSeparatorRe  = regexp.MustCompile(`^[\s:|\-–—]+`)
	trailingSeparatorRe = regexp.MustCompile(`(?:\s*[:|]|\s+[-–—])(?:\s.*)?$`)
	marketingPrefixRe   = regexp.MustCompile(`(?i)^(?:the\s+)?(?:(?:original|best|ultimate|authentic|perfect|easy)\s+)+`)
)

// StripCodeFence removes a leading ```json (or bare ```) fence and a trailing ``` fence.
func StripCodeFence(raw string) string {
	s := leadingFenceRe.ReplaceAllString(raw, "")
	s = trailingFenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Normalize turns raw model text into a validated ImportedRecipe.
// The model output is treated as untrusted: every field is type-checked on its own.
// imageHint is the image found on the page before the model call; the model's own
// image suggestion is ignored.
func Normalize(rawText, imageHint string) (*entity.ImportedRecipe, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(StripCodeFence(rawText)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableOutput, err)
	}
	if parsed == nil {
		return nil, ErrUnparsableOutput
	}

	title := CleanTitle(asString(parsed["title"]))

	recipe := &entity.ImportedRecipe{
		Title:       title,
		Description: normalizeDescription(parsed["description"], title),
		Tags:        normalizeTags(parsed["tags"]),
		Ingredients: stringList(parsed["ingredients"], MaxIngredients),
		Steps:       stringList(parsed["steps"], MaxSteps),
	}
	if imageHint != "" {
		img := imageHint
		recipe.ImageURL = &img
	}

	if !recipe.Complete() {
		return nil, ErrIncompleteRecipe
	}
	return recipe, nil
}

// CleanTitle strips generic words, trailing site names and marketing prefixes.
func CleanTitle(title string) string {
	t := genericTitleWordRe.ReplaceAllString(title, " ")
	t = leadingSeparatorRe.ReplaceAllString(t, "")
	t = trailingSeparatorRe.ReplaceAllString(t, "")
	t = strings.TrimSpace(spaceRe.ReplaceAllString(t, " "))
	t = marketingPrefixRe.ReplaceAllString(t, "")
	return truncateRunes(strings.TrimSpace(t), MaxTitleChars)
}

func normalizeDescription(v any, title string) *string {
	desc := strings.TrimSpace(asString(v))
	if desc == "" {
		desc = fmt.Sprintf("A homemade %s recipe.", strings.ToLower(title))
	}
	desc = truncateRunes(desc, MaxDescriptionChars)
	return &desc
}

func normalizeTags(v any) []string {
	items, _ := v.([]any)
	tags := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		tag := strings.ToLower(strings.TrimSpace(s))
		if !IsKnownTag(tag) {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

// stringList keeps non-blank string entries in order, up to max.
func stringList(v any, max int) []string {
	items, _ := v.([]any)
	out := make([]string, 0, min(len(items), max))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
