package roster

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sail-dex/pokedex/pkg/forms"
)

// PrintSpecies writes one line per ref. Each character of outputFlags picks a
// column: n (name), i (id), u (API url), s (sprite url).
func PrintSpecies(w io.Writer, refs []SpeciesRef, outputFlags, delimiter string) error {
	for _, r := range refs {
		line, err := createLine(r, outputFlags, delimiter)
		if err != nil {
			return err
		}
		if len(line) > 0 {
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

func createLine(r SpeciesRef, outputFlags, delimiter string) (string, error) {
	var line string
	for _, f := range outputFlags {
		switch f {
		case 'n':
			line += r.Name + delimiter
		case 'i':
			line += strconv.Itoa(r.ID) + delimiter
		case 'u':
			line += r.URL + delimiter
		case 's':
			line += forms.SpriteURL(r.ID) + delimiter
		default:
			return "", fmt.Errorf("invalid print flag %q", f)
		}
	}
	return strings.TrimSuffix(line, delimiter), nil
}
