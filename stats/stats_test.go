package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binary is the confusion matrix of truth [0 0 1 1] against prediction
// [0 1 1 1].
func binary(t *testing.T) (classes, cm []float64) {
	t.Helper()
	lblTrue := []int{0, 0, 1, 1}
	lblPred := []int{0, 1, 1, 1}
	classes = GetClasses(lblTrue, lblPred, len(lblTrue), len(lblPred))
	require.Equal(t, []float64{0, 1}, classes)
	cm = GetConfusionMatrix(lblTrue, lblPred, len(lblTrue), classes, len(classes))
	require.Equal(t, []float64{1, 1, 0, 2}, cm)
	return classes, cm
}

func TestGetClassesUnion(t *testing.T) {
	classes := GetClasses([]int{3, 1, 3}, []int{2, 1, 7}, 3, 3)
	assert.Equal(t, []float64{1, 2, 3, 7}, classes)
}

func TestGetConfusionMatrixSparseCodes(t *testing.T) {
	classes := []float64{2, 5, 9}
	cm := GetConfusionMatrix([]int{2, 5, 9, 9}, []int{2, 9, 9, 5}, 4, classes, 3)
	assert.Equal(t, []float64{
		1, 0, 0,
		0, 0, 1,
		0, 1, 1,
	}, cm)
}

func TestOutcomeCounts(t *testing.T) {
	_, cm := binary(t)
	tp := GetTP(cm, 2)
	fn := GetFN(cm, 2)
	fp := GetFP(cm, 2)
	tn := GetTN(cm, 2)
	assert.Equal(t, []float64{1, 2}, tp)
	assert.Equal(t, []float64{1, 0}, fn)
	assert.Equal(t, []float64{0, 1}, fp)
	assert.Equal(t, []float64{2, 1}, tn)
	assert.Equal(t, []float64{4, 4}, GetPOP(tp, tn, fp, fn, 2))
	assert.Equal(t, []float64{2, 2}, GetP(tp, fn, 2))
	assert.Equal(t, []float64{2, 2}, GetN(tn, fp, 2))
}

func TestGetTNMulticlass(t *testing.T) {
	cm := []float64{
		3, 1, 0,
		0, 2, 1,
		1, 0, 4,
	}
	// Everything outside row k and column k.
	assert.Equal(t, []float64{7, 8, 6}, GetTN(cm, 3))
}

func TestClassStatistics(t *testing.T) {
	tp := []float64{1, 2}
	fn := []float64{1, 0}
	fp := []float64{0, 1}
	tn := []float64{2, 1}
	pop := []float64{4, 4}

	tpr := GetTPR(tp, fn, 2)
	tnr := GetTNR(tn, fp, 2)
	ppv := GetPPV(tp, fp, 2)
	assert.InDeltaSlice(t, []float64{0.5, 1}, tpr, 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0.5}, tnr, 1e-12)
	assert.InDeltaSlice(t, []float64{1, 2.0 / 3}, ppv, 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 0}, GetFNR(tpr, 2), 1e-12)
	assert.InDeltaSlice(t, []float64{0.75, 0.75}, GetACC(tp, fp, fn, tn, 2), 1e-12)
	assert.InDeltaSlice(t, []float64{2.0 / 3, 0.8}, GetF1SCORE(tp, fp, fn, 2), 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, GetBM(tpr, tnr, 2), 1e-12)

	top := GetTOP(tp, fp, 2)
	p := GetP(tp, fn, 2)
	assert.Equal(t, []float64{1, 3}, top)
	assert.InDeltaSlice(t, []float64{0.125, 0.375}, GetRACC(top, p, pop, 2), 1e-12)
	assert.InDeltaSlice(t, []float64{9.0 / 64, 25.0 / 64}, GetRACCU(top, p, pop, 2), 1e-12)
	assert.InDeltaSlice(t, []float64{0.5, 2.0 / 3}, GetJaccardIndex(tp, top, p, 2), 1e-12)
}

func TestMCCUndefinedIsNaN(t *testing.T) {
	mcc := GetMCC([]float64{2}, []float64{0}, []float64{0}, []float64{0}, 1)
	assert.True(t, math.IsNaN(mcc[0]))
}

func TestOverallStatistics(t *testing.T) {
	classes, cm := binary(t)
	tp := GetTP(cm, 2)
	fn := GetFN(cm, 2)
	fp := GetFP(cm, 2)
	pop := []float64{4, 4}
	top := GetTOP(tp, fp, 2)
	p := GetP(tp, fn, 2)

	acc := GetOverallAccuracy(tp, pop, 2)
	racc := GetOverallRandomAccuracy(GetRACC(top, p, pop, 2), 2)
	kappa := GetOverallKappa(racc, acc)
	assert.InDelta(t, 0.75, acc, 1e-12)
	assert.InDelta(t, 0.5, racc, 1e-12)
	assert.InDelta(t, 0.5, kappa, 1e-12)
	assert.InDelta(t, 0.5, GetKappaNoPrevalence(acc), 1e-12)
	assert.InDelta(t, 0.5, GetS(GetPCS(classes, 2), acc), 1e-12)
	assert.InDelta(t, 0.25, GetHammingLoss(tp, pop, 2), 1e-12)
	assert.InDelta(t, 1, GetZeroOneLoss(tp, pop, 2), 1e-12)
	assert.InDelta(t, 0.5, GetNIR(p, pop, 2), 1e-12)
	assert.InDelta(t, 0.75, GetTPRPPVF1Micro(tp, fn, 2), 1e-12)
	assert.InDelta(t, 1, GetDF(classes, 2), 1e-12)
	assert.InDelta(t, 1, GetReferenceEntropy(p, pop, 2), 1e-12)

	se := GetKappaSE(acc, racc, pop)
	assert.Greater(t, GetKappaCIUp(kappa, se), kappa)
	assert.Less(t, GetKappaCIDown(kappa, se), kappa)
}

func TestGrades(t *testing.T) {
	assert.Equal(t, 2.0, GetKappaAnalysisAltman(0.5))
	assert.Equal(t, 1.0, GetKappaAnalysisFleiss(0.5))
	assert.Equal(t, 4.0, GetMCCAnalysis(0.95))
	assert.Equal(t, 0.0, GetVAnalysis(0.05))
	assert.Equal(t, -1.0, GetMCCAnalysis(math.NaN()))
	assert.Equal(t, -1.0, GetKappaAnalysisAltman(math.Inf(1)))
}
