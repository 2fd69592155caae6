package recipeimport

import (
	"bytes"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/user/recipe-service/pkg/utils"
)

// MaxCleanedTextChars bounds the plain-text rendition handed to the prompt builder.
const MaxCleanedTextChars = 6000

var spaceRe = regexp.MustCompile(`\s+`)

// StructuredHint is the best-effort data found before asking the model.
// Empty fields mean the hint was not present.
type StructuredHint struct {
	OGImageURL   string
	RecipeJSONLD string
}

// Extraction is everything the prompt builder needs from a fetched page.
type Extraction struct {
	Hint        StructuredHint
	CleanedText string
}

// Extract scans html for an og:image, a JSON-LD Recipe and the visible text.
// It never fails: anything it cannot read simply yields an empty hint.
// pageURL, when non-nil, is used to resolve a relative image URL.
func Extract(htmlContent string, pageURL *url.URL) Extraction {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return Extraction{}
	}

	var out Extraction
	out.Hint.OGImageURL = ogImage(doc)

	if recipe := findJSONLDRecipe(doc); recipe != nil {
		out.Hint.RecipeJSONLD = encodeCompact(recipe)
		if out.Hint.OGImageURL == "" {
			out.Hint.OGImageURL = imageFromJSONLD(recipe["image"])
		}
	}

	if out.Hint.OGImageURL != "" && pageURL != nil {
		if abs, err := utils.ToAbsoluteURL(pageURL, out.Hint.OGImageURL); err == nil {
			out.Hint.OGImageURL = abs
		}
	}

	// Extract clean text content
	doc.Find("script, style").Remove()
	out.CleanedText = truncateRunes(cleanText(doc), MaxCleanedTextChars)

	return out
}

func ogImage(doc *goquery.Document) string {
	var found string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		property, _ := s.Attr("property")
		if !strings.EqualFold(strings.TrimSpace(property), "og:image") {
			return true
		}
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return true
		}
		found = content
		return false
	})
	return found
}

// findJSONLDRecipe returns the first Recipe object across all ld+json blocks, in document order.
func findJSONLDRecipe(doc *goquery.Document) map[string]any {
	var recipe map[string]any
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		typ := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		if typ != "application/ld+json" {
			return true
		}
		var v any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &v); err != nil {
			return true // broken blocks are skipped
		}
		recipe = recipeNode(v)
		return recipe == nil
	})
	return recipe
}

func recipeNode(v any) map[string]any {
	switch node := v.(type) {
	case map[string]any:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"].([]any); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]any); ok && isRecipeType(m["@type"]) {
					return m
				}
			}
		}
	case []any:
		// Some sites emit a bare array of top-level objects.
		for _, item := range node {
			if m := recipeNode(item); m != nil {
				return m
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch typ := t.(type) {
	case string:
		return typ == "Recipe"
	case []any:
		for _, item := range typ {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// imageFromJSONLD accepts the string, array and {url} forms of schema.org image.
func imageFromJSONLD(v any) string {
	switch img := v.(type) {
	case string:
		return strings.TrimSpace(img)
	case []any:
		for _, item := range img {
			if s := imageFromJSONLD(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if u, ok := img["url"].(string); ok {
			return strings.TrimSpace(u)
		}
	}
	return ""
}

func encodeCompact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

// cleanText joins every text node with a space so adjacent elements don't run together.
func cleanText(doc *goquery.Document) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(sb.String(), " "))
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
