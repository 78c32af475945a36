package task

type BoardColumn struct {
	Column Column `json:"column"`
	Tasks  []Task `json:"tasks"`
}

type Board struct {
	Columns []BoardColumn `json:"columns"`
}

// Partition places each task in its column. The result always has the four
// columns in board order; tasks with an unknown column are left out. Input
// order is kept within a column.
func Partition(tasks []Task) Board {
	idx := make(map[Column]int, len(Columns))
	b := Board{Columns: make([]BoardColumn, len(Columns))}
	for i, c := range Columns {
		idx[c] = i
		b.Columns[i] = BoardColumn{Column: c, Tasks: []Task{}}
	}
	for _, t := range tasks {
		i, ok := idx[t.BoardColumn]
		if !ok {
			continue
		}
		b.Columns[i].Tasks = append(b.Columns[i].Tasks, t)
	}
	return b
}

// Column returns the tasks of c, or nil for an unknown column.
func (b Board) Column(c Column) []Task {
	for _, col := range b.Columns {
		if col.Column == c {
			return col.Tasks
		}
	}
	return nil
}
