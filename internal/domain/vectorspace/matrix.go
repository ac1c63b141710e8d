package vectorspace

import "gonum.org/v1/gonum/mat"

// Matrix is a dense row-major document-term matrix.
// Either dimension may be zero.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Rows returns the number of documents.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of vocabulary terms.
func (m *Matrix) Cols() int { return m.cols }

// Shape returns (rows, cols).
func (m *Matrix) Shape() [2]int { return [2]int{m.rows, m.cols} }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Row returns row i. The slice aliases the matrix storage.
func (m *Matrix) Row(i int) []float64 { return m.data[i*m.cols : (i+1)*m.cols] }

func (m *Matrix) inc(i, j int) { m.data[i*m.cols+j]++ }

// Slice copies the matrix into nested slices, one per row.
// Rows of a zero-column matrix are empty, never nil, so they encode as [].
func (m *Matrix) Slice() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		row := make([]float64, m.cols)
		copy(row, m.Row(i))
		out[i] = row
	}
	return out
}

// Dense returns a gonum copy of the matrix, or nil when either dimension is zero.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return nil
	}
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return mat.NewDense(m.rows, m.cols, data)
}
