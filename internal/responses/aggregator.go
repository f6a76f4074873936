package responses

import "github.com/SAP-F-2025/survey-service/internal/models"

const (
	GeneralParent       = "General"
	UncategorizedModule = "Uncategorized"
)

type ModuleGroup struct {
	Name    string                  `json:"name"`
	Records []models.ResponseRecord `json:"records"`
}

type ParentGroup struct {
	Name    string        `json:"name"`
	Modules []ModuleGroup `json:"modules"`
}

// Grouped is the two-level view of a respondent's answers. Groups appear
// in first-seen order.
type Grouped struct {
	Parents []ParentGroup `json:"parents"`
}

func (g Grouped) Empty() bool { return len(g.Parents) == 0 }

// Count returns the number of grouped records.
func (g Grouped) Count() int {
	n := 0
	for _, p := range g.Parents {
		for _, m := range p.Modules {
			n += len(m.Records)
		}
	}
	return n
}

// Aggregate groups records by parent module then module. Records keep
// their input order within a bucket. Nothing is deduplicated or validated.
func Aggregate(records []models.ResponseRecord) Grouped {
	var g Grouped
	parentIdx := make(map[string]int)
	moduleIdx := make(map[string]map[string]int)

	for _, rec := range records {
		parent := nameOr(rec.ParentModuleName, GeneralParent)
		module := nameOr(rec.ModuleName, UncategorizedModule)

		pi, ok := parentIdx[parent]
		if !ok {
			pi = len(g.Parents)
			parentIdx[parent] = pi
			moduleIdx[parent] = make(map[string]int)
			g.Parents = append(g.Parents, ParentGroup{Name: parent})
		}

		mi, ok := moduleIdx[parent][module]
		if !ok {
			mi = len(g.Parents[pi].Modules)
			moduleIdx[parent][module] = mi
			g.Parents[pi].Modules = append(g.Parents[pi].Modules, ModuleGroup{Name: module})
		}

		g.Parents[pi].Modules[mi].Records = append(g.Parents[pi].Modules[mi].Records, rec)
	}
	return g
}

func nameOr(name *string, fallback string) string {
	if name == nil || *name == "" {
		return fallback
	}
	return *name
}
