package server

import (
	"fmt"
	"net/url"

	"github.com/sail-dex/pokedex/internal/utils"
	"github.com/sail-dex/pokedex/pkg/detail"
	"github.com/sail-dex/pokedex/pkg/dictionary"
	"github.com/sail-dex/pokedex/pkg/filter"
	"github.com/sail-dex/pokedex/pkg/forms"
	"github.com/sail-dex/pokedex/pkg/roster"
	"github.com/sail-dex/pokedex/pkg/session"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const fallbackOnError = "this.onerror=null;this.src='" + forms.FallbackImage + "'"

// PageLayout wraps content in the common document shell.
func PageLayout(title string, dark bool, navbar, content g.Node) g.Node {
	theme := "theme-light"
	if dark {
		theme = "theme-dark"
	}
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(Class(theme),
			Head(
				Meta(Charset("UTF-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(title)),
				Link(Rel("stylesheet"), Href("/static/style.css")),
			),
			Body(
				navbar,
				Main(Class("container"), content),
			),
		),
	})
}

// Navbar shows the title and the three display toggles.
func Navbar(p session.Preferences) g.Node {
	toggle := func(name, label string, on bool) g.Node {
		cls := "toggle"
		if on {
			cls += " active"
		}
		return A(Href("/?toggle="+name), Class(cls), g.Attr("aria-pressed", fmt.Sprint(on)), g.Text(label))
	}
	return Nav(Class("topbar"),
		A(Href("/"), Class("brand"), g.Text("Pokédex")),
		Div(Class("toggles"),
			toggle("back", "Turn back", p.ShowBack),
			toggle("shiny", "ShinyDex", p.ShowShiny),
			toggle("dark", "Dark mode", p.DarkMode),
		),
	)
}

func errorBanner(msg string) g.Node {
	return Div(Class("error-banner"), g.Attr("role", "alert"), Strong(g.Text("Error: ")), g.Text(msg))
}

func vocabularySelect(name, anyLabel, current string, entries []dictionary.Entry) g.Node {
	options := []g.Node{Option(Value(""), g.Text(anyLabel))}
	for _, e := range entries {
		opt := Option(Value(e.Name), g.Text(e.Label))
		if e.Name == current {
			opt = Option(Value(e.Name), g.Text(e.Label), Selected())
		}
		options = append(options, opt)
	}
	return Select(Name(name), ID("filter-"+name), g.Group(options))
}

func formGroupEntries() []dictionary.Entry {
	var out []dictionary.Entry
	for _, fg := range filter.FormGroups {
		out = append(out, dictionary.Entry{Name: string(fg), Label: fg.Label()})
	}
	return out
}

// FilterBar is the search box plus the type, region and form selectors.
func FilterBar(d dictionary.Dictionaries, st session.State) g.Node {
	return Form(Method("get"), Action("/"), Class("filter-bar"),
		Input(Type("search"), Name("q"), ID("search"), Placeholder("Search Pokémon"), Value(st.Prefs.SearchText)),
		vocabularySelect("type", "Any type", st.Criteria.TypeName, d.Types),
		vocabularySelect("region", "Any region", st.Criteria.RegionName, d.Regions),
		vocabularySelect("form", "Any form", string(st.Criteria.FormGroup), formGroupEntries()),
		Button(Type("submit"), g.Text("Apply")),
		A(Href("/?reset=1"), Class("reset"), g.Text("Reset")),
	)
}

func speciesCard(ref roster.SpeciesRef, p session.Preferences) g.Node {
	return A(Href("/pokemon/"+url.PathEscape(ref.Name)), Class("card"),
		Img(
			Src(forms.Thumbnail(ref.ID, p.ShowBack, p.ShowShiny)),
			Alt("pokemon "+ref.Name),
			g.Attr("loading", "lazy"),
			g.Attr("onerror", fallbackOnError),
		),
		H2(g.Text(ref.Name)),
	)
}

// ListPage renders the filtered list view.
func ListPage(d dictionary.Dictionaries, dictsErr error, st session.State, results []roster.SpeciesRef, resolveErr error) g.Node {
	content := []g.Node{FilterBar(d, st)}
	if dictsErr != nil {
		content = append(content, errorBanner("Could not load filter options. "+dictsErr.Error()))
	}
	if resolveErr != nil {
		content = append(content, errorBanner("Could not apply filters. "+resolveErr.Error()))
	} else {
		content = append(content,
			P(Class("result-count"), g.Textf("%d Pokémon", len(results))),
		)
	}

	cards := make([]g.Node, 0, len(results))
	for _, ref := range results {
		cards = append(cards, speciesCard(ref, st.Prefs))
	}
	content = append(content, Div(Class("card-list"), g.Group(cards)))

	return PageLayout("Pokédex", st.Prefs.DarkMode, Navbar(st.Prefs), g.Group(content))
}

// DetailOptions carries the view choices of a detail request.
type DetailOptions struct {
	Tab     string
	Shiny   bool
	Prefs   session.Preferences
	Warning string
}

func detailHref(name, tab string, shiny bool) string {
	v := url.Values{}
	if tab != "" && tab != forms.BaseKey {
		v.Set("tab", tab)
	}
	if shiny {
		v.Set("shiny", "1")
	}
	href := "/pokemon/" + url.PathEscape(name)
	if len(v) > 0 {
		href += "?" + v.Encode()
	}
	return href
}

func infoRow(key string, val ...g.Node) g.Node {
	return Div(Class("info-row"),
		Span(Class("info-key"), g.Text(key)),
		Span(Class("info-val"), g.Group(val)),
	)
}

// DetailPage renders one record with its artwork tabs, data and evolution
// chain.
func DetailPage(p *detail.Page, o DetailOptions) g.Node {
	rec := p.Record
	active := forms.ActiveTab(p.Tabs, o.Tab)
	hasShiny := rec.Sprites.FrontShiny != ""
	art := forms.Select(rec.ID, active, rec.Name, hasShiny, o.Shiny)

	var tabs g.Node = g.Group(nil)
	if len(p.Tabs) > 1 {
		links := make([]g.Node, 0, len(p.Tabs))
		for _, t := range p.Tabs {
			cls := "sprite-tab"
			if t.Key == active.Key {
				cls += " active"
			}
			links = append(links, A(
				Href(detailHref(rec.Name, t.Key, o.Shiny)),
				Class(cls),
				g.Attr("role", "tab"),
				g.Attr("aria-selected", fmt.Sprint(t.Key == active.Key)),
				g.Text(t.Label),
			))
		}
		tabs = Div(Class("sprite-tabs"), g.Attr("role", "tablist"), g.Attr("aria-label", "Sprite forms"), g.Group(links))
	}

	shinyLabel := "Shiny"
	if o.Shiny {
		shinyLabel = "Normal"
	}

	var typeChips, abilityChips []g.Node
	for _, t := range rec.Types {
		typeChips = append(typeChips, Span(Class("type type-"+t), g.Text(t)))
	}
	for _, a := range rec.Abilities {
		abilityChips = append(abilityChips, Span(Class("ability-chip"), g.Text(a)))
	}

	chain := make([]g.Node, 0, len(p.Chain))
	for _, c := range p.Chain {
		img := c.Sprites.FrontDefault
		if o.Shiny && c.Sprites.FrontShiny != "" {
			img = c.Sprites.FrontShiny
		}
		chain = append(chain, A(Href(detailHref(c.Name, "", o.Shiny)), Class("evolution-chain-item"),
			Img(Src(img), Alt(c.Name), g.Attr("onerror", fallbackOnError)),
			P(g.Text(c.Name)),
		))
	}

	content := Div(Class("details-page"),
		A(Href("/"), Class("back-button"), g.Text("< Back")),
		H1(Class("details-title"), g.Text(utils.DisplayName(rec.Name))),
		g.If(o.Warning != "", errorBanner(o.Warning)),
		Div(Class("details-grid"),
			Div(Class("col-left"),
				Div(Class("panel sprite-panel"),
					tabs,
					Div(Class("sprite-stage"),
						Img(ID("artwork"), Src(art), Alt("pokemon "+rec.Name), g.Attr("onerror", fallbackOnError)),
					),
					A(Href(detailHref(rec.Name, active.Key, !o.Shiny)), Class("shiny-toggle"), g.Text(shinyLabel)),
				),
				Div(Class("panel training-panel"),
					H2(Class("panel-title"), g.Text("Pokédex entry")),
					P(Class("dex-text"), g.Text(p.FlavorText)),
				),
			),
			Div(Class("col-right"),
				Div(Class("panel info-panel"),
					H2(Class("panel-title"), g.Text("Pokédex data")),
					infoRow("National №", g.Text("#"+utils.PadID(rec.ID))),
					infoRow("Type", typeChips...),
					infoRow("Height", g.Text(utils.FormatTenths(rec.Height, "m"))),
					infoRow("Weight", g.Text(utils.FormatTenths(rec.Weight, "kg"))),
					infoRow("Abilities", abilityChips...),
				),
				Div(Class("panel breeding-panel"),
					H2(Class("panel-title"), g.Text("Evolution chain")),
					Div(Class("evolution-chain-container"), g.Group(chain)),
				),
			),
		),
	)

	return PageLayout(utils.DisplayName(rec.Name)+" | Pokédex", o.Prefs.DarkMode, Navbar(o.Prefs), content)
}

// NotFoundPage is shown when a detail record cannot be loaded.
func NotFoundPage(name string, err error, suggestions []string, prefs session.Preferences) g.Node {
	msg := fmt.Sprintf("Could not load %q.", name)
	if err != nil {
		msg += " " + err.Error()
	}
	var links []g.Node
	for _, s := range suggestions {
		links = append(links, Li(A(Href(detailHref(s, "", false)), g.Text(s))))
	}
	content := Div(Class("details-page"),
		A(Href("/"), Class("back-button"), g.Text("< Back")),
		errorBanner(msg),
		g.If(len(links) > 0, Div(Class("suggestions"),
			P(g.Text("Did you mean:")),
			Ul(g.Group(links)),
		)),
	)
	return PageLayout("Not found | Pokédex", prefs.DarkMode, Navbar(prefs), content)
}
