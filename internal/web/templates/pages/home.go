package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/jurdabos/countries-visited/internal/model"
	"github.com/jurdabos/countries-visited/internal/palette"
	"github.com/jurdabos/countries-visited/internal/web/templates/layout"
)

// PlayerRow is one player in the legend
type PlayerRow struct {
	ID         model.PlayerID
	Colour     string
	ColourName string
	Visited    int
	Percentage float64
}

// CountryRow is one country in the picker / map table
type CountryRow struct {
	Name    string
	Code    model.CountryCode
	Colour  string // fill colour, empty when unvisited
	Checked bool   // visited by the selected player
}

// OverlapRow is one shared country in the overlap table
type OverlapRow struct {
	Country  string
	Code     model.CountryCode
	Count    int
	Visitors string
}

// HomeData holds everything the map page renders
type HomeData struct {
	layout.PageData
	Players   []PlayerRow
	Colors    []palette.Choice
	Used      map[string]bool
	Countries []CountryRow
	Overlaps  []OverlapRow
	Selected  model.PlayerID
}

// Home renders the map page
func Home(data HomeData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, section := range []templ.Component{
			legend(data),
			addPlayerForm(data),
			countryPicker(data),
			worldTable(data),
			overlapTable(data),
			mapFilePanel(data),
		} {
			if err := section.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	}))
}

func legend(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="legend"><h2>Players</h2>`); err != nil {
			return err
		}
		if len(data.Players) == 0 {
			if _, err := io.WriteString(w, `<p class="empty">No players yet. Add one below.</p></section>`); err != nil {
				return err
			}
			return nil
		}
		if _, err := io.WriteString(w,
			`<table class="players"><thead><tr><th></th><th>Player</th><th>Colour</th>`+
				`<th>Visited</th><th>Coverage</th><th></th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, p := range data.Players {
			id := templ.EscapeString(string(p.ID))
			selected := ""
			if p.ID == data.Selected {
				selected = ` class="selected"`
			}
			if _, err := fmt.Fprintf(w,
				`<tr%s data-player="%s">`+
					`<td><span class="swatch" style="background:%s"></span></td>`+
					`<td><a href="/?player=%s">%s</a></td>`+
					`<td>%s</td><td>%d</td><td>%.1f%%</td>`+
					`<td><form method="post" action="/players/%s/clear" class="inline"><button>Clear</button></form> `+
					`<form method="post" action="/players/%s/delete" class="inline"><button>Remove</button></form></td>`+
					`</tr>`,
				selected, id,
				templ.EscapeString(p.Colour),
				id, id,
				templ.EscapeString(p.ColourName), p.Visited, p.Percentage,
				id, id); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}

func addPlayerForm(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<section class="add-player"><h2>Add player</h2>`+
				`<form method="post" action="/players">`+
				`<label>Name <input type="text" name="player_id" required maxlength="40"></label>`+
				`<label>Colour <select name="colour">`); err != nil {
			return err
		}
		for _, c := range data.Colors {
			disabled := ""
			if data.Used[c.Hex] {
				disabled = " disabled"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
				templ.EscapeString(c.Hex), disabled, templ.EscapeString(c.Label)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label><button type="submit">Add</button></form></section>`)
		return err
	})
}

func countryPicker(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Selected == "" {
			return nil
		}
		id := templ.EscapeString(string(data.Selected))
		if _, err := fmt.Fprintf(w,
			`<section class="picker"><h2>Countries for %s</h2>`+
				`<form method="post" action="/players/%s/visits"><div class="picker-grid">`, id, id); err != nil {
			return err
		}
		for _, c := range data.Countries {
			checked := ""
			if c.Checked {
				checked = " checked"
			}
			if _, err := fmt.Fprintf(w,
				`<label class="pick"><input type="checkbox" name="codes" value="%s"%s> %s</label>`,
				templ.EscapeString(string(c.Code)), checked, templ.EscapeString(c.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div><button type="submit">Save visits</button></form></section>`)
		return err
	})
}

func worldTable(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<section class="world"><h2>Map</h2><table class="map"><tbody>`); err != nil {
			return err
		}
		for _, c := range data.Countries {
			style := ""
			if c.Colour != "" {
				style = ` style="background:` + templ.EscapeString(c.Colour) + `"`
			}
			if _, err := fmt.Fprintf(w,
				`<tr><td class="country-cell" data-code="%s"%s>%s</td></tr>`,
				templ.EscapeString(string(c.Code)), style, templ.EscapeString(c.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}

func mapFilePanel(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !data.LoggedIn {
			return nil
		}
		_, err := io.WriteString(w,
			`<section class="map-file"><h2>Map file</h2>`+
				`<a href="/map/download" class="button">Download map</a>`+
				`<form method="post" action="/map/upload" enctype="multipart/form-data" class="inline">`+
				`<input type="file" name="container" required>`+
				`<button type="submit">Load map</button></form>`+
				`<form method="post" action="/map/reset" class="inline" `+
				`onsubmit="return confirm('Start a new map? All players will be removed.')">`+
				`<button type="submit" class="danger">New map</button></form>`+
				`</section>`)
		return err
	})
}

func overlapTable(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(data.Overlaps) == 0 {
			return nil
		}
		if _, err := io.WriteString(w,
			`<section class="overlaps"><h2>Shared countries</h2>`+
				`<table class="overlap"><thead><tr><th>Country</th><th>Visitors</th><th>Count</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, o := range data.Overlaps {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td></tr>`,
				templ.EscapeString(o.Country),
				templ.EscapeString(o.Visitors),
				strconv.Itoa(o.Count)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}
