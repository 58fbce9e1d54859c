package forms

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	normalArtHost = "https://www.pokemon.com/static-assets/content-assets/cms2/img/pokedex/full/"
	spriteHost    = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"
)

// FallbackImage is shown when an artwork URL fails to load.
const FallbackImage = "/static/fallback.svg"

// NormalArt returns the official artwork URL for tab of species id.
func NormalArt(id int, tab FormTab) string {
	return fmt.Sprintf("%s%03d%s.png", normalArtHost, id, tab.ArtworkSuffix)
}

// ShinyArt returns the shiny artwork URL for tab, or "" when there is none.
// Tabs without their own shiny art fall back to a name-based URL only on the
// base tab, and only when the record has a shiny sprite at all.
func ShinyArt(tab FormTab, recordName string, hasShiny bool) string {
	if tab.Shiny != nil {
		if u := tab.Shiny(); u != "" {
			return u
		}
	}
	if tab.Key == BaseKey && hasShiny {
		return shinyHost + CleanShinyName(recordName) + ".jpg"
	}
	return ""
}

// Select returns the artwork to display: the shiny art when shiny is
// requested and available, the normal art otherwise.
func Select(id int, tab FormTab, recordName string, hasShiny, shiny bool) string {
	if shiny {
		if u := ShinyArt(tab, recordName, hasShiny); u != "" {
			return u
		}
	}
	return NormalArt(id, tab)
}

// shinyNameRules apply in order, each replacing only its first match.
var shinyNameRules = []struct{ old, new string }{
	{"gmax", "gigantamax"},
	{"-amped", ""},
	{"-normal", ""},
	{"-ordinary", ""},
	{"-land", ""},
	{"-incarnate", ""},
	{"-altered", ""},
	{"-origin", ""},
}

// CleanShinyName turns an API record name into the slug used by the shiny
// art host.
func CleanShinyName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "mr-mime", "mr-rime", "mime-jr", "nidoran-m", "nidoran-f":
		return n
	}
	for _, r := range shinyNameRules {
		n = strings.Replace(n, r.old, r.new, 1)
	}
	return n
}

// SpriteURL is the small front sprite used for list thumbnails.
func SpriteURL(id int) string {
	return spriteHost + strconv.Itoa(id) + ".png"
}

// BackSpriteURL is the small back sprite.
func BackSpriteURL(id int) string {
	return spriteHost + "back/" + strconv.Itoa(id) + ".png"
}

// ShinySpriteURL is the small shiny front sprite.
func ShinySpriteURL(id int) string {
	return spriteHost + "shiny/" + strconv.Itoa(id) + ".png"
}

// Thumbnail picks the list sprite for the back/shiny toggles.
func Thumbnail(id int, back, shiny bool) string {
	switch {
	case back && shiny:
		return spriteHost + "back/shiny/" + strconv.Itoa(id) + ".png"
	case back:
		return BackSpriteURL(id)
	case shiny:
		return ShinySpriteURL(id)
	}
	return SpriteURL(id)
}
