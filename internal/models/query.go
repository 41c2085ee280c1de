package models

// FormatNormal is the default output format tag.
const FormatNormal = "NORMAL"

// Query describes what to fetch from a schema backend. Nothing here
// validates or interprets it; sources pass it through unchanged.
type Query struct {
	Type           string   `json:"type,omitempty"`
	TypeConnection string   `json:"typeConnection,omitempty"`
	Name           string   `json:"name"`
	Queries        []Query  `json:"freeschemaQueries,omitempty"`
	Selectors      []string `json:"selectors,omitempty"`
	OutputFormat   string   `json:"outputFormat,omitempty"`
	InPage         int      `json:"inpage,omitempty"`
	FilterLogic    string   `json:"filterLogic,omitempty"`
	Filters        []Filter `json:"filters,omitempty"`
}

// Filter is a single search predicate inside a Query.
type Filter struct {
	Type          string `json:"type"`
	Search        string `json:"search"`
	LogicOperator string `json:"logicoperator"`
	Name          string `json:"name"`
	OperateOn     string `json:"operateon"`
	Composition   bool   `json:"composition"`
}

// TodoListQuery returns the query used to load the initial task list.
func TodoListQuery() Query {
	return Query{
		Type:         "todo",
		Name:         "todoList",
		Selectors:    []string{"id", "title", "status"},
		OutputFormat: FormatNormal,
		InPage:       10,
	}
}

// WithSubQuery returns a copy of q with sub appended to its nested queries.
func (q Query) WithSubQuery(sub Query) Query {
	out := q
	out.Queries = append(append([]Query(nil), q.Queries...), sub)
	return out
}

// WithFilter returns a copy of q with f appended to its filters.
func (q Query) WithFilter(f Filter) Query {
	out := q
	out.Filters = append(append([]Filter(nil), q.Filters...), f)
	return out
}
