package layout

// Layered stacks nodes by dependency depth: modules nobody imports sit on
// layer 0 and every module sits at least one layer below each importer.
// Each layer is a centered [Row]; y grows by RowGap per layer.
//
// Layer assignment is longest-path over Kahn's topological order. Self
// edges are ignored. Nodes on a cycle never reach in-degree zero and keep
// the deepest layer seen before the cycle blocked progress.
type Layered struct {
	Spacing  float64
	RowGap   float64
	Children func(name string) []string
}

// Place implements Engine.
func (l Layered) Place(names []string) Positions {
	layers := l.assign(names)

	maxLayer := 0
	for _, layer := range layers {
		maxLayer = max(maxLayer, layer)
	}
	rows := make([][]string, maxLayer+1)
	for _, name := range names {
		rows[layers[name]] = append(rows[layers[name]], name)
	}

	gap := l.RowGap
	if gap <= 0 {
		gap = DefaultRowGap
	}
	pos := make(Positions, len(names))
	row := Row{Spacing: l.Spacing}
	for depth, members := range rows {
		for name, p := range row.Place(members) {
			p.Y = float64(depth) * gap
			pos[name] = p
		}
	}
	return pos
}

func (l Layered) assign(names []string) map[string]int {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	children := func(n string) []string {
		if l.Children == nil {
			return nil
		}
		var out []string
		for _, c := range l.Children(n) {
			if c != n && known[c] {
				out = append(out, c)
			}
		}
		return out
	}

	inDegree := make(map[string]int, len(names))
	for _, n := range names {
		for _, c := range children(n) {
			inDegree[c]++
		}
	}

	layers := make(map[string]int, len(names))
	queue := make([]string, 0, len(names))
	for _, n := range names {
		layers[n] = 0
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, c := range children(curr) {
			if layer := layers[curr] + 1; layer > layers[c] {
				layers[c] = layer
			}
			inDegree[c]--
			if inDegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	return layers
}
