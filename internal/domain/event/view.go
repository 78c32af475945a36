package event

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"mavinci/internal/domain/contact"
	"mavinci/internal/domain/offer"
	"mavinci/internal/domain/task"
)

// ListItem is one row of the events list.
type ListItem struct {
	Event
	ClientName         string          `json:"client_name"`
	OffersCount        int             `json:"offers_count"`
	TasksCount         int             `json:"tasks_count"`
	AcceptedOfferValue decimal.Decimal `json:"accepted_offer_value"`
}

type Client struct {
	Type  contact.EntityType `json:"type"`
	ID    int64              `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
	Phone string             `json:"phone,omitempty"`
}

type TaskSummary struct {
	Total    int                 `json:"total"`
	ByColumn map[task.Column]int `json:"by_column"`
}

// FolderNode is a folder with its files and subfolders.
type FolderNode struct {
	Folder
	Files    []File        `json:"files"`
	Children []*FolderNode `json:"children"`
}

type Details struct {
	Event   Event         `json:"event"`
	Client  *Client       `json:"client"`
	Offers  []offer.Offer `json:"offers"`
	Tasks   TaskSummary   `json:"tasks"`
	Folders []*FolderNode `json:"folders"`
	// Files not filed in any folder.
	Files []File `json:"files"`
}

// clientOf prefers the organization; individual clients only have a contact.
func clientOf(e Event, orgs map[int64]contact.Organization, contacts map[int64]contact.Contact) *Client {
	if e.OrganizationID != nil {
		if o, ok := orgs[*e.OrganizationID]; ok {
			return &Client{Type: contact.EntityOrganization, ID: o.ID, Name: o.Name, Email: o.Email, Phone: o.Phone}
		}
	}
	if e.ContactID != nil {
		if c, ok := contacts[*e.ContactID]; ok {
			kind := contact.EntityContact
			if c.ContactType == contact.TypeIndividual {
				kind = contact.EntityIndividual
			}
			return &Client{Type: kind, ID: c.ID, Name: c.FullName(), Email: c.Email, Phone: c.Phone}
		}
	}
	return nil
}

// summarize fills every board column, including empty ones.
func summarize(rows []ColumnCount) TaskSummary {
	s := TaskSummary{ByColumn: make(map[task.Column]int, len(task.Columns))}
	for _, c := range task.Columns {
		s.ByColumn[c] = 0
	}
	for _, r := range rows {
		s.Total += r.N
		if r.BoardColumn.Valid() {
			s.ByColumn[r.BoardColumn] += r.N
		}
	}
	return s
}

// buildTree nests folders under their parents and files under their
// folders. Files of unknown folders are returned as loose.
func buildTree(folders []Folder, files []File) ([]*FolderNode, []File) {
	nodes := make(map[int64]*FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &FolderNode{Folder: f, Files: []File{}, Children: []*FolderNode{}}
	}
	roots := make([]*FolderNode, 0)
	for _, f := range folders {
		n := nodes[f.ID]
		if f.ParentID != nil {
			if parent, ok := nodes[*f.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	loose := make([]File, 0)
	for _, file := range files {
		if file.FolderID != nil {
			if n, ok := nodes[*file.FolderID]; ok {
				n.Files = append(n.Files, file)
				continue
			}
		}
		loose = append(loose, file)
	}
	return roots, loose
}

func matches(item ListItem, needle string) bool {
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(item.Name), needle) ||
		strings.Contains(fold.String(item.Location), needle) ||
		strings.Contains(fold.String(item.ClientName), needle)
}
