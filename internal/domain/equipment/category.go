package equipment

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const pathSeparator = " / "

// CategoryIndex maps category id to category.
type CategoryIndex map[int64]Category

func IndexCategories(categories []Category) CategoryIndex {
	idx := make(CategoryIndex, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}

// Chain returns the categories from the root down to id.
func (idx CategoryIndex) Chain(id int64) ([]Category, error) {
	var chain []Category
	seen := make(map[int64]bool)
	next := &id
	for next != nil {
		if seen[*next] {
			return nil, fmt.Errorf("%w: category %d", ErrCategoryCycle, *next)
		}
		seen[*next] = true

		c, ok := idx[*next]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrCategoryNotFound, *next)
		}
		chain = append(chain, c)
		next = c.ParentID
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Path renders the breadcrumb for id, e.g. "Audio / Mikrofony / Bezprzewodowe".
func (idx CategoryIndex) Path(id int64) (string, error) {
	chain, err := idx.Chain(id)
	if err != nil {
		return "", err
	}
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	return strings.Join(names, pathSeparator), nil
}

func CategoryPath(categories []Category, id int64) (string, error) {
	return IndexCategories(categories).Path(id)
}

type CatalogItem struct {
	Item
	Stock Stock `json:"stock"`
	Level Level `json:"level"`
}

func NewCatalogItem(item Item) CatalogItem {
	s := ComputeStock(item)
	return CatalogItem{Item: item, Stock: s, Level: Classify(s)}
}

// Group holds the items of one category. CategoryID is nil for the
// uncategorized group.
type Group struct {
	CategoryID *int64        `json:"category_id"`
	Path       string        `json:"path"`
	Items      []CatalogItem `json:"items"`
}

type Catalog struct {
	Groups []Group `json:"groups"`
	// CycleCategoryIDs lists categories whose parent chain loops. Their items
	// are shown as uncategorized.
	CycleCategoryIDs []int64 `json:"cycle_category_ids,omitempty"`
}

// GroupByCategory groups items by resolved category path, sorted by path in
// Polish collation order, with uncategorized items last. Item order inside a
// group follows the input.
func GroupByCategory(items []Item, categories []Category) Catalog {
	idx := IndexCategories(categories)

	var (
		groups   []*Group
		byID     = make(map[int64]*Group)
		other    Group
		cyclic   = make(map[int64]bool)
		cycleIDs []int64
	)
	for _, it := range items {
		ci := NewCatalogItem(it)
		if it.CategoryID == nil {
			other.Items = append(other.Items, ci)
			continue
		}
		id := *it.CategoryID
		if g, ok := byID[id]; ok {
			g.Items = append(g.Items, ci)
			continue
		}
		if cyclic[id] {
			other.Items = append(other.Items, ci)
			continue
		}

		path, err := idx.Path(id)
		switch {
		case err == nil:
			g := &Group{CategoryID: &id, Path: path, Items: []CatalogItem{ci}}
			byID[id] = g
			groups = append(groups, g)
		case errors.Is(err, ErrCategoryCycle):
			cyclic[id] = true
			cycleIDs = append(cycleIDs, id)
			other.Items = append(other.Items, ci)
		default:
			other.Items = append(other.Items, ci)
		}
	}

	col := collate.New(language.Polish)
	sort.SliceStable(groups, func(i, j int) bool {
		return col.CompareString(groups[i].Path, groups[j].Path) < 0
	})

	out := Catalog{Groups: make([]Group, 0, len(groups)+1)}
	for _, g := range groups {
		out.Groups = append(out.Groups, *g)
	}
	if len(other.Items) > 0 {
		out.Groups = append(out.Groups, other)
	}
	sort.Slice(cycleIDs, func(i, j int) bool { return cycleIDs[i] < cycleIDs[j] })
	out.CycleCategoryIDs = cycleIDs
	return out
}
