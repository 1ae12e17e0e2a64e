// Package features turns the numeric columns of a catalogue into a
// standardized matrix suitable for cosine similarity.
package features

import (
	"math"

	"github.com/okian/tunify/internal/domain/catalogue"
	"github.com/okian/tunify/internal/domain/model"
)

// Matrix holds one z-scored feature vector per catalogue row. Row i belongs to
// catalogue track i.
type Matrix struct {
	data  []float64
	rows  int
	means [model.FeatureCount]float64
	stds  [model.FeatureCount]float64
}

// Normalize standardizes every feature column to zero mean and unit population
// variance. Columns with zero variance are emitted as zeros.
func Normalize(cat *catalogue.Catalogue) *Matrix {
	const cols = model.FeatureCount
	m := &Matrix{
		rows: cat.Len(),
		data: make([]float64, cat.Len()*cols),
	}
	if m.rows == 0 {
		return m
	}

	cat.Each(func(i int, t model.Track) {
		f := t.Features()
		copy(m.data[i*cols:(i+1)*cols], f[:])
		for j, v := range f {
			m.means[j] += v
		}
	})
	n := float64(m.rows)
	for j := range m.means {
		m.means[j] /= n
	}

	for i := 0; i < m.rows; i++ {
		for j := 0; j < cols; j++ {
			d := m.data[i*cols+j] - m.means[j]
			m.stds[j] += d * d
		}
	}
	for j := range m.stds {
		m.stds[j] = math.Sqrt(m.stds[j] / n)
	}

	for i := 0; i < m.rows; i++ {
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			if m.stds[j] == 0 {
				m.data[idx] = 0
				continue
			}
			m.data[idx] = (m.data[idx] - m.means[j]) / m.stds[j]
		}
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of feature columns.
func (m *Matrix) Cols() int { return model.FeatureCount }

// Row returns a view of row i. Callers must not modify it.
func (m *Matrix) Row(i int) []float64 {
	cols := model.FeatureCount
	return m.data[i*cols : (i+1)*cols : (i+1)*cols]
}

// Means returns the per-column means used for standardization.
func (m *Matrix) Means() [model.FeatureCount]float64 { return m.means }

// Stds returns the per-column population standard deviations.
func (m *Matrix) Stds() [model.FeatureCount]float64 { return m.stds }
