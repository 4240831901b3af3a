package stats

import (
	"math"
	"slices"
)

// z95 is the two-sided 95% normal quantile.
const z95 = 1.96

func GetOverallAccuracy(tp, pop []float64, nclass int) float64 {
	return sum(tp, nclass) / pop[0]
}

func GetOverallRandomAccuracyUnbiased(raccu []float64, nclass int) float64 {
	return sum(raccu, nclass)
}

func GetOverallRandomAccuracy(racc []float64, nclass int) float64 {
	return sum(racc, nclass)
}

// chanceCorrected is the agreement beyond chance shared by kappa, Scott's
// pi, Gwet's AC1 and Bennett's S.
func chanceCorrected(chance, observed float64) float64 {
	return (observed - chance) / (1 - chance)
}

func GetOverallKappa(overallRandomAccuracy, overallAccuracy float64) float64 {
	return chanceCorrected(overallRandomAccuracy, overallAccuracy)
}

func GetPCPI(p, top, pop []float64, nclass int) float64 {
	var res float64
	for i := 0; i < nclass; i++ {
		s := p[i] + top[i]
		res += s * s / (4 * pop[i] * pop[i])
	}
	return res
}

func GetPCAC1(p, top, pop []float64, nclass int) float64 {
	var res float64
	for i := 0; i < nclass; i++ {
		pi := (p[i] + top[i]) / (2 * pop[i])
		res += pi * (1 - pi)
	}
	return res / float64(nclass-1)
}

func GetPCS(classes []float64, nclass int) float64 {
	return 1 / float64(nclass)
}

func GetPI(pcPI, overallAccuracy float64) float64 { return chanceCorrected(pcPI, overallAccuracy) }

func GetAC1(pcAC1, overallAccuracy float64) float64 { return chanceCorrected(pcAC1, overallAccuracy) }

func GetS(pcS, overallAccuracy float64) float64 { return chanceCorrected(pcS, overallAccuracy) }

func GetKappaSE(overallAccuracy, overallRandomAccuracy float64, pop []float64) float64 {
	q := 1 - overallRandomAccuracy
	return math.Sqrt(overallAccuracy * (1 - overallAccuracy) / (pop[0] * q * q))
}

func GetKappaUnbiased(overallRandomAccuracyUnbiased, overallAccuracy float64) float64 {
	return chanceCorrected(overallRandomAccuracyUnbiased, overallAccuracy)
}

func GetKappaNoPrevalence(overallAccuracy float64) float64 {
	return 2*overallAccuracy - 1
}

func GetKappaCIUp(kappa, kappaSE float64) float64 { return kappa + z95*kappaSE }

func GetKappaCIDown(kappa, kappaSE float64) float64 { return kappa - z95*kappaSE }

func GetOverallAccuracySe(overallAccuracy float64, pop []float64) float64 {
	return math.Sqrt(overallAccuracy * (1 - overallAccuracy) / pop[0])
}

func GetOverallAccuracyCiUp(overallAccuracy, se float64) float64 { return overallAccuracy + z95*se }

func GetOverallAccuracyCiDown(overallAccuracy, se float64) float64 { return overallAccuracy - z95*se }

func GetChiSquare(cm, top, p, pop []float64, nclass int) float64 {
	var res float64
	for i := 0; i < nclass; i++ {
		for j := 0; j < nclass; j++ {
			expected := top[j] * p[i] / pop[i]
			d := cm[i*nclass+j] - expected
			res += d * d / expected
		}
	}
	return res
}

func GetPhiSquare(chiSquare float64, pop []float64) float64 {
	return chiSquare / pop[0]
}

func GetCramerV(phiSquare float64, nclass int) float64 {
	return math.Sqrt(phiSquare / float64(nclass-1))
}

// entropy is the Shannon entropy in bits of counts over pop. Empty classes
// contribute nothing.
func entropy(counts, pop []float64, nclass int) float64 {
	var h float64
	for i := 0; i < nclass; i++ {
		if counts[i] == 0 {
			continue
		}
		l := counts[i] / pop[i]
		h -= l * math.Log2(l)
	}
	return h
}

func GetResponseEntropy(top, pop []float64, nclass int) float64 { return entropy(top, pop, nclass) }

func GetReferenceEntropy(p, pop []float64, nclass int) float64 { return entropy(p, pop, nclass) }

func GetCrossEntropy(top, p, pop []float64, nclass int) float64 {
	var res float64
	for i := 0; i < nclass; i++ {
		res += p[i] / pop[i] * math.Log2(top[i]/pop[i])
	}
	return -res
}

func GetHammingLoss(tp, pop []float64, nclass int) float64 {
	return (pop[0] - sum(tp, nclass)) / pop[0]
}

func GetZeroOneLoss(tp, pop []float64, nclass int) float64 {
	return pop[0] - sum(tp, nclass)
}

// GetNIR is the no information rate.
func GetNIR(p, pop []float64, nclass int) float64 {
	return slices.Max(p[:nclass]) / pop[0]
}

func GetOverallMCC(cm, top, p []float64, nclass int) float64 {
	s := sum(top, nclass)
	var covXY, covXX, covYY float64
	for i := 0; i < nclass; i++ {
		covXX += top[i] * (s - top[i])
		covYY += p[i] * (s - p[i])
		covXY += cm[i*nclass+i]*s - p[i]*top[i]
	}
	return covXY / math.Sqrt(covYY*covXX)
}

// GetRR is the global performance index.
func GetRR(top []float64, nclass int) float64 { return mean(top, nclass) }

// GetCBA is class balance accuracy.
func GetCBA(cm, top, p []float64, nclass int) float64 {
	var res float64
	for i := 0; i < nclass; i++ {
		res += cm[i*nclass+i] / math.Max(top[i], p[i])
	}
	return res / float64(nclass)
}

func GetAUNU(auc []float64, nclass int) float64 { return mean(auc, nclass) }

func GetAUNP(p, pop, auc []float64, nclass int) float64 {
	var res float64
	for i := 0; i < nclass; i++ {
		res += p[i] / pop[i] * auc[i]
	}
	return res
}

func GetTPRPPVF1Micro(tp, fn []float64, nclass int) float64 {
	tpSum := sum(tp, nclass)
	return tpSum / (tpSum + sum(fn, nclass))
}

func GetTPRMacro(tpr []float64, nclass int) float64 { return mean(tpr, nclass) }

func GetPPVMacro(ppv []float64, nclass int) float64 { return mean(ppv, nclass) }

func GetACCMacro(acc []float64, nclass int) float64 { return mean(acc, nclass) }

func GetF1Macro(f1 []float64, nclass int) float64 { return mean(f1, nclass) }

func GetOverallJaccardIndex(jaccard []float64, nclass int) float64 { return sum(jaccard, nclass) }

// GetDF is the degrees of freedom of the chi-squared test.
func GetDF(classes []float64, nclass int) float64 {
	return float64((nclass - 1) * (nclass - 1))
}

// GetMCCAnalysis grades the overall MCC: 0 negligible up to 4 very strong,
// -1 when undefined.
func GetMCCAnalysis(overallMCC float64) float64 {
	return grade(overallMCC, 0.3, 0.5, 0.7, 0.9)
}

// GetKappaAnalysisAltman grades kappa on Altman's scale: 0 poor up to 4
// very good, -1 when undefined.
func GetKappaAnalysisAltman(kappa float64) float64 {
	return grade(kappa, 0.2, 0.4, 0.6, 0.8)
}

// GetKappaAnalysisFleiss grades kappa on Fleiss' scale: 0 poor, 1
// intermediate to good, 2 excellent, -1 when undefined.
func GetKappaAnalysisFleiss(kappa float64) float64 {
	return grade(kappa, 0.4, 0.75)
}

// GetVAnalysis grades Cramer's V: 0 negligible up to 5 very strong.
func GetVAnalysis(cramerV float64) float64 {
	return grade(cramerV, 0.1, 0.2, 0.4, 0.6, 0.8)
}

// grade returns how many ascending bounds v reaches, or -1 for NaN or
// infinite values.
func grade(v float64, bounds ...float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return -1
	}
	n := 0
	for _, b := range bounds {
		if v >= b {
			n++
		}
	}
	return float64(n)
}
