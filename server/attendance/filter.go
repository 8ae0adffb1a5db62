package attendance

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/topi314/church-tools/server/community"
)

// PersonTypeAll matches every person type in Filter.
const PersonTypeAll community.PersonType = "all"

// SortByName sorts people by name the way a Brazilian Portuguese reader expects,
// so "Ângela" sorts next to "Ana" and not after "Zé".
func SortByName(people []community.Person) {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	slices.SortStableFunc(people, func(a, b community.Person) int {
		return c.CompareString(a.Name, b.Name)
	})
}

// Filter returns the people whose name contains search, ignoring case, and whose type
// matches personType. An empty search or an empty/"all" type matches everyone.
// The order of people is kept.
func Filter(people []community.Person, search string, personType community.PersonType) []community.Person {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))

	filtered := make([]community.Person, 0, len(people))
	for _, person := range people {
		if personType != "" && personType != PersonTypeAll && person.Type != personType {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(person.Name), needle) {
			continue
		}
		filtered = append(filtered, person)
	}
	return filtered
}
