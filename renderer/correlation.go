package renderer

import "github.com/etnz/cartera"

// matrix is a square table of correlations, each row starting with its ticker.
type matrix struct {
	Header []string
	Rows   [][]string
}

// correlationMatrix lays out the pairs of a correlation matrix as a square table.
func correlationMatrix(cells []cartera.Correlation) matrix {
	var m matrix
	index := make(map[string]int)
	for _, c := range cells {
		for _, t := range []string{c.A, c.B} {
			if _, ok := index[t]; !ok {
				index[t] = len(m.Header)
				m.Header = append(m.Header, t)
			}
		}
	}
	m.Rows = make([][]string, len(m.Header))
	for i, t := range m.Header {
		m.Rows[i] = make([]string, len(m.Header)+1)
		m.Rows[i][0] = t
		for j := 1; j < len(m.Rows[i]); j++ {
			m.Rows[i][j] = cartera.NotAvailable
		}
	}
	for _, c := range cells {
		i, j := index[c.A], index[c.B]
		m.Rows[i][j+1] = c.R.String()
		m.Rows[j][i+1] = c.R.String()
	}
	return m
}
