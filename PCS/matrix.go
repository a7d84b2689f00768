package pcs

import "binius-PCS/binaryfield"

// chooseDims splits a 2^m-entry evaluation table into a 2^logRows × 2^logCols
// matrix. The default favors slightly wider matrices (logCols = (m+2)/2),
// which keeps the committed column count low while the folded row stays
// short; logColsOverride > 0 forces a specific width.
func chooseDims(m, logColsOverride int) (logRows, logCols int, ok bool) {
	logCols = (m + 2) / 2
	if logColsOverride > 0 {
		logCols = logColsOverride
	}
	if logCols > m {
		return 0, 0, false
	}
	return m - logCols, logCols, true
}

// foldRows returns Σ_i w[i]·rows[i]. Row widths divisible by the packed lane
// count take the packed path: the inner accumulate then runs four field
// elements per word instead of one.
func foldRows(rows [][]binaryfield.Elem, w []binaryfield.Elem) []binaryfield.Elem {
	cols := len(rows[0])
	if cols%binaryfield.Lanes == 0 {
		acc := make([]binaryfield.Packed, cols/binaryfield.Lanes)
		for i, row := range rows {
			packed, err := binaryfield.PackRow(row)
			if err != nil {
				panic("pcs: fold over ragged matrix: " + err.Error())
			}
			for k, p := range packed {
				acc[k] = acc[k].Add(p.BroadcastMul(w[i]))
			}
		}
		return binaryfield.UnpackRow(acc)
	}
	out := make([]binaryfield.Elem, cols)
	for i, row := range rows {
		for j := range row {
			out[j] = out[j].Add(row[j].Mul(w[i]))
		}
	}
	return out
}

// transposeColumn extracts column j of the extended matrix.
func transposeColumn(ext [][]binaryfield.Elem, j int) []binaryfield.Elem {
	col := make([]binaryfield.Elem, len(ext))
	for i := range ext {
		col[i] = ext[i][j]
	}
	return col
}
