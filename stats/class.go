package stats

import "math"

func GetTOP(tp, fp []float64, nclass int) []float64 {
	return zip(tp, fp, nclass, func(tp, fp float64) float64 { return tp + fp })
}

func GetTON(tn, fn []float64, nclass int) []float64 {
	return zip(tn, fn, nclass, func(tn, fn float64) float64 { return tn + fn })
}

func ratio(x, y float64) float64 { return x / (x + y) }

func complement(x float64) float64 { return 1 - x }

// GetTPR is sensitivity or recall.
func GetTPR(tp, fn []float64, nclass int) []float64 { return zip(tp, fn, nclass, ratio) }

// GetTNR is specificity.
func GetTNR(tn, fp []float64, nclass int) []float64 { return zip(tn, fp, nclass, ratio) }

// GetPPV is precision.
func GetPPV(tp, fp []float64, nclass int) []float64 { return zip(tp, fp, nclass, ratio) }

func GetNPV(tn, fn []float64, nclass int) []float64 { return zip(tn, fn, nclass, ratio) }

func GetFNR(tpr []float64, nclass int) []float64 { return each(tpr, nclass, complement) }

func GetFPR(tnr []float64, nclass int) []float64 { return each(tnr, nclass, complement) }

func GetFDR(ppv []float64, nclass int) []float64 { return each(ppv, nclass, complement) }

func GetFOR(npv []float64, nclass int) []float64 { return each(npv, nclass, complement) }

func GetACC(tp, fp, fn, tn []float64, nclass int) []float64 {
	acc := make([]float64, nclass)
	for i := range acc {
		acc[i] = (tp[i] + tn[i]) / (tp[i] + tn[i] + fn[i] + fp[i])
	}
	return acc
}

func GetERRACC(acc []float64, nclass int) []float64 { return each(acc, nclass, complement) }

// fBeta is the weighted harmonic mean of precision and recall.
func fBeta(beta float64, tp, fp, fn []float64, nclass int) []float64 {
	b2 := beta * beta
	out := make([]float64, nclass)
	for i := range out {
		out[i] = (1 + b2) * tp[i] / ((1+b2)*tp[i] + fp[i] + b2*fn[i])
	}
	return out
}

func GetF1SCORE(tp, fp, fn []float64, nclass int) []float64 { return fBeta(1, tp, fp, fn, nclass) }

func GetF05SCORE(tp, fp, fn []float64, nclass int) []float64 { return fBeta(0.5, tp, fp, fn, nclass) }

func GetF2SCORE(tp, fp, fn []float64, nclass int) []float64 { return fBeta(2, tp, fp, fn, nclass) }

// GetMCC is the Matthews correlation coefficient per class.
func GetMCC(tp, tn, fp, fn []float64, nclass int) []float64 {
	mcc := make([]float64, nclass)
	for i := range mcc {
		den := math.Sqrt((tp[i] + fp[i]) * (tp[i] + fn[i]) * (tn[i] + fp[i]) * (tn[i] + fn[i]))
		mcc[i] = (tp[i]*tn[i] - fp[i]*fn[i]) / den
	}
	return mcc
}

// GetBM is informedness.
func GetBM(tpr, tnr []float64, nclass int) []float64 {
	return zip(tpr, tnr, nclass, func(a, b float64) float64 { return a + b - 1 })
}

// GetMK is markedness.
func GetMK(ppv, npv []float64, nclass int) []float64 {
	return zip(ppv, npv, nclass, func(a, b float64) float64 { return a + b - 1 })
}

func div(a, b float64) float64 { return a / b }

func GetPLR(tpr, fpr []float64, nclass int) []float64 { return zip(tpr, fpr, nclass, div) }

func GetNLR(fnr, tnr []float64, nclass int) []float64 { return zip(fnr, tnr, nclass, div) }

func GetDOR(plr, nlr []float64, nclass int) []float64 { return zip(plr, nlr, nclass, div) }

// GetPRE is prevalence.
func GetPRE(p, pop []float64, nclass int) []float64 { return zip(p, pop, nclass, div) }

// GetG is the geometric mean of precision and recall.
func GetG(ppv, tpr []float64, nclass int) []float64 {
	return zip(ppv, tpr, nclass, func(a, b float64) float64 { return math.Sqrt(a * b) })
}

// GetRACC is the random accuracy.
func GetRACC(top, p, pop []float64, nclass int) []float64 {
	out := make([]float64, nclass)
	for i := range out {
		out[i] = top[i] * p[i] / (pop[i] * pop[i])
	}
	return out
}

// GetRACCU is the unbiased random accuracy.
func GetRACCU(top, p, pop []float64, nclass int) []float64 {
	out := make([]float64, nclass)
	for i := range out {
		s := top[i] + p[i]
		out[i] = s * s / (4 * pop[i] * pop[i])
	}
	return out
}

func GetJaccardIndex(tp, top, p []float64, nclass int) []float64 {
	out := make([]float64, nclass)
	for i := range out {
		out[i] = tp[i] / (top[i] + p[i] - tp[i])
	}
	return out
}

// GetAUC approximates the ROC area from one operating point.
func GetAUC(tnr, tpr []float64, nclass int) []float64 {
	return zip(tnr, tpr, nclass, func(tnr, tpr float64) float64 { return (tnr + tpr) / 2 })
}

// GetDIND is the distance index.
func GetDIND(tnr, tpr []float64, nclass int) []float64 {
	return zip(tnr, tpr, nclass, func(tnr, tpr float64) float64 { return math.Hypot(1-tnr, 1-tpr) })
}

// GetSIND is the similarity index.
func GetSIND(dind []float64, nclass int) []float64 {
	return each(dind, nclass, func(d float64) float64 { return 1 - d/math.Sqrt2 })
}

// GetY is Youden's index, equal to informedness.
func GetY(bm []float64, nclass int) []float64 {
	return append([]float64(nil), bm[:nclass]...)
}
