package stats

import "sort"

// GetClasses returns the sorted union of the label codes.
func GetClasses(lblTrue, lblPred []int, nTrue, nPred int) []float64 {
	seen := make(map[int]struct{}, nTrue)
	for _, l := range lblTrue[:nTrue] {
		seen[l] = struct{}{}
	}
	for _, l := range lblPred[:nPred] {
		seen[l] = struct{}{}
	}
	classes := make([]float64, 0, len(seen))
	for l := range seen {
		classes = append(classes, float64(l))
	}
	sort.Float64s(classes)
	return classes
}

func GetConfusionMatrix(lblTrue, lblPred []int, nLbl int, classes []float64, nclass int) []float64 {
	index := make(map[float64]int, nclass)
	for i, c := range classes[:nclass] {
		index[c] = i
	}
	cm := make([]float64, nclass*nclass)
	for i := 0; i < nLbl; i++ {
		cm[index[float64(lblTrue[i])]*nclass+index[float64(lblPred[i])]]++
	}
	return cm
}

// GetTP is the diagonal of the confusion matrix.
func GetTP(cm []float64, nclass int) []float64 {
	tp := make([]float64, nclass)
	for i := range tp {
		tp[i] = cm[i*nclass+i]
	}
	return tp
}

// GetFN sums each row without its diagonal entry.
func GetFN(cm []float64, nclass int) []float64 {
	fn := make([]float64, nclass)
	for i := range fn {
		for j := 0; j < nclass; j++ {
			if i != j {
				fn[i] += cm[i*nclass+j]
			}
		}
	}
	return fn
}

// GetFP sums each column without its diagonal entry.
func GetFP(cm []float64, nclass int) []float64 {
	fp := make([]float64, nclass)
	for j := range fp {
		for i := 0; i < nclass; i++ {
			if i != j {
				fp[j] += cm[i*nclass+j]
			}
		}
	}
	return fp
}

// GetTN counts the samples that involve the class neither as truth nor as
// prediction.
func GetTN(cm []float64, nclass int) []float64 {
	tn := make([]float64, nclass)
	for k := range tn {
		for i := 0; i < nclass; i++ {
			for j := 0; j < nclass; j++ {
				if i != k && j != k {
					tn[k] += cm[i*nclass+j]
				}
			}
		}
	}
	return tn
}

func GetPOP(tp, tn, fp, fn []float64, nclass int) []float64 {
	pop := make([]float64, nclass)
	for i := range pop {
		pop[i] = tp[i] + tn[i] + fp[i] + fn[i]
	}
	return pop
}

func GetP(tp, fn []float64, nclass int) []float64 {
	return zip(tp, fn, nclass, func(tp, fn float64) float64 { return tp + fn })
}

func GetN(tn, fp []float64, nclass int) []float64 {
	return zip(tn, fp, nclass, func(tn, fp float64) float64 { return tn + fp })
}

func zip(a, b []float64, n int, f func(x, y float64) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(a[i], b[i])
	}
	return out
}

func each(a []float64, n int, f func(x float64) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(a[i])
	}
	return out
}

func sum(a []float64, n int) float64 {
	var s float64
	for _, v := range a[:n] {
		s += v
	}
	return s
}

func mean(a []float64, n int) float64 {
	return sum(a, n) / float64(n)
}
