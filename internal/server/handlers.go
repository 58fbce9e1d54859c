package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sail-dex/pokedex/internal/metrics"
	"github.com/sail-dex/pokedex/pkg/detail"
	"github.com/sail-dex/pokedex/pkg/dictionary"
	"github.com/sail-dex/pokedex/pkg/filter"
	"github.com/sail-dex/pokedex/pkg/forms"
	"github.com/sail-dex/pokedex/pkg/pokeapi"
	"github.com/sail-dex/pokedex/pkg/roster"
	"github.com/sail-dex/pokedex/pkg/session"
)

var errSuperseded = errors.New("superseded by a newer request")

// actionsFromQuery turns list-view query parameters into reducer actions.
// Only parameters present in the query produce an action.
func actionsFromQuery(q url.Values) ([]session.Action, error) {
	var actions []session.Action
	if q.Get("reset") != "" {
		actions = append(actions, session.Reset{})
	}
	if q.Has("q") {
		actions = append(actions, session.SearchChanged{Text: q.Get("q")})
	}
	if q.Has("type") {
		actions = append(actions, session.TypeSelected{Name: strings.TrimSpace(q.Get("type"))})
	}
	if q.Has("region") {
		actions = append(actions, session.RegionSelected{Name: strings.TrimSpace(q.Get("region"))})
	}
	if q.Has("form") {
		g, err := filter.ParseFormGroup(q.Get("form"))
		if err != nil {
			return nil, err
		}
		actions = append(actions, session.FormSelected{Group: g})
	}
	if t := q.Get("toggle"); t != "" {
		a, ok := session.ToggleFor(t)
		if !ok {
			return nil, fmt.Errorf("unknown toggle %q", t)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// listState loads the session, applies the query and stores the result.
func (s *Server) listState(w http.ResponseWriter, r *http.Request) (string, session.State, int, error) {
	id, st, err := s.session(w, r)
	if err != nil {
		return "", st, http.StatusInternalServerError, err
	}
	actions, err := actionsFromQuery(r.URL.Query())
	if err != nil {
		return "", st, http.StatusBadRequest, err
	}
	if len(actions) > 0 {
		st = session.Reduce(st, actions...)
		if err := s.Sessions.Save(r.Context(), id, st); err != nil {
			return "", st, http.StatusInternalServerError, err
		}
	}
	return id, st, http.StatusOK, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	id, st, status, err := s.listState(w, r)
	if err != nil {
		s.Log.Warnf("list: %v", err)
		http.Error(w, err.Error(), status)
		return
	}
	// toggles and reset are already stored; redirect so a reload does not
	// apply them a second time
	if q := r.URL.Query(); q.Get("toggle") != "" || q.Get("reset") != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	results, committed, err := s.viewFor(id).Update(r.Context(), s.Dir, st.Criteria, s.API)
	metrics.ObserveResolution(committed)
	if err != nil {
		s.Log.Warnf("list: resolve %+v: %v", st.Criteria, err)
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	ListPage(s.Dicts, s.DictsErr, st, results, err).Render(w)
}

type speciesItem struct {
	Name   string `json:"name"`
	ID     int    `json:"id"`
	URL    string `json:"url"`
	Sprite string `json:"sprite"`
}

type speciesResponse struct {
	Criteria filter.Criteria `json:"criteria"`
	Count    int             `json:"count"`
	Results  []speciesItem   `json:"results"`
}

func (s *Server) handleAPISpecies(w http.ResponseWriter, r *http.Request) {
	id, st, status, err := s.listState(w, r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	results, committed, err := s.viewFor(id).Update(r.Context(), s.Dir, st.Criteria, s.API)
	metrics.ObserveResolution(committed)
	if err != nil {
		s.Log.Warnf("api species: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if !committed {
		writeError(w, http.StatusConflict, errSuperseded.Error())
		return
	}

	writeJSON(w, http.StatusOK, speciesResponse{
		Criteria: st.Criteria,
		Count:    len(results),
		Results:  speciesItems(results, st.Prefs),
	})
}

func speciesItems(refs []roster.SpeciesRef, p session.Preferences) []speciesItem {
	out := make([]speciesItem, len(refs))
	for i, ref := range refs {
		out[i] = speciesItem{
			Name:   ref.Name,
			ID:     ref.ID,
			URL:    ref.URL,
			Sprite: forms.Thumbnail(ref.ID, p.ShowBack, p.ShowShiny),
		}
	}
	return out
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.PathValue("name"))
	id, st, err := s.session(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	opts := DetailOptions{
		Tab:   q.Get("tab"),
		Shiny: q.Get("shiny") == "1",
		Prefs: st.Prefs,
	}

	res := s.resolverFor(id)
	page, err := res.Load(r.Context(), name)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if page == nil {
		status := http.StatusBadGateway
		var suggestions []string
		if errors.Is(err, pokeapi.ErrNotFound) {
			status = http.StatusNotFound
			suggestions = s.Dir.Suggest(name, 3)
		}
		s.Log.Warnf("detail %s: %v", name, err)
		w.WriteHeader(status)
		NotFoundPage(name, err, suggestions, opts.Prefs).Render(w)
		return
	}
	if err != nil {
		opts.Warning = "Some details could not be loaded: " + err.Error()
	}
	DetailPage(page, opts).Render(w)
}

type tabArt struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Art      string `json:"art"`
	ShinyArt string `json:"shiny_art,omitempty"`
}

type detailResponse struct {
	Record     pokeapi.Pokemon   `json:"record"`
	FlavorText string            `json:"flavor_text"`
	Chain      []pokeapi.Pokemon `json:"chain"`
	Tabs       []tabArt          `json:"tabs"`
	Error      string            `json:"error,omitempty"`
}

func detailJSON(p *detail.Page, err error) detailResponse {
	resp := detailResponse{Record: p.Record, FlavorText: p.FlavorText, Chain: p.Chain}
	hasShiny := p.Record.Sprites.FrontShiny != ""
	for _, t := range p.Tabs {
		resp.Tabs = append(resp.Tabs, tabArt{
			Key:      t.Key,
			Label:    t.Label,
			Art:      forms.NormalArt(p.Record.ID, t),
			ShinyArt: forms.ShinyArt(t, p.Record.Name, hasShiny),
		})
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func (s *Server) handleAPIPokemon(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.PathValue("name"))
	id, _, err := s.session(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	page, err := s.resolverFor(id).Load(r.Context(), name)
	if page == nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"error":       "not found",
				"suggestions": s.Dir.Suggest(name, 3),
			})
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, detailJSON(page, err))
}

func (s *Server) handleAPIDictionaries(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		dictionary.Dictionaries
		Forms []dictionary.Entry `json:"forms"`
		Error string             `json:"error,omitempty"`
	}{Dictionaries: s.Dicts}
	for _, g := range filter.FormGroups {
		resp.Forms = append(resp.Forms, dictionary.Entry{Name: string(g), Label: g.Label()})
	}
	if s.DictsErr != nil {
		resp.Error = s.DictsErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
