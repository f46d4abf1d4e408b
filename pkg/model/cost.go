package model

// Costs estimates, for every course, the longest weighted dependency path below it when the graph is
// explored from root. Prereq edges weigh 1.0 and Coreq edges 0.05, so among equally deep courses those
// carrying co-requisites rank higher. Courses unreachable from root keep cost 0.
//
// The result is keyed by course name and is only meaningful relative to root.
func (graph *CourseGraph) Costs(root *Course) (map[string]float64, error) {
	order, err := graph.sequence(root)
	if err != nil {
		return nil, err
	}

	costs := make(map[string]float64, len(graph.vertices))
	for _, v := range graph.vertices {
		costs[v.course.name] = 0
	}

	// Dependencies precede dependents in order, so their cost is final when read
	for _, v := range order {
		cost := 0.0
		for _, e := range v.edges {
			cost = max(cost, costs[e.to.course.name]+e.relation.Weight())
		}
		costs[v.course.name] = cost
	}

	return costs, nil
}
