package equipment

type Stock struct {
	Available int `json:"available"`
	Total     int `json:"total"`
}

type Level string

const (
	LevelNeutral  Level = "neutral"
	LevelDepleted Level = "depleted"
	LevelLow      Level = "low"
	LevelHealthy  Level = "healthy"
)

// ComputeStock counts available units against all units. Kits report 0/0
// since they have no inventory of their own.
func ComputeStock(item Item) Stock {
	if item.IsKit {
		return Stock{}
	}
	s := Stock{Total: len(item.Units)}
	for _, u := range item.Units {
		if u.Status == UnitAvailable {
			s.Available++
		}
	}
	return s
}

func Classify(s Stock) Level {
	switch {
	case s.Total <= 0:
		return LevelNeutral
	case s.Available <= 0:
		return LevelDepleted
	case 2*s.Available < s.Total:
		return LevelLow
	default:
		return LevelHealthy
	}
}
