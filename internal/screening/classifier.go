package screening

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/features"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

// Training hyperparameters for the fit classifier.
const (
	classifierLearningRate = 0.1
	classifierEpochs       = 500
)

// classifierDims is the width of the engineered feature vector.
const classifierDims = 5

// fitClassifier is a logistic regression over a small engineered
// feature vector, fitted by full-batch gradient descent. Training is
// deterministic: zero-initialized weights, fixed epoch count, examples
// consumed in input order.
type fitClassifier struct {
	weights [classifierDims]float64
	bias    float64
	means   [classifierDims]float64
	stddevs [classifierDims]float64
}

// classifierVector projects resume features into the classifier's input
// space.
func classifierVector(f features.ResumeFeatures) [classifierDims]float64 {
	return [classifierDims]float64{
		f.YearsExperience,
		float64(f.TotalSkills),
		float64(f.TotalEducation),
		float64(f.TotalProjects),
		float64(f.HighestEducationLevel),
	}
}

// TrainClassifier fits the optional fit/no-fit classifier on labeled
// examples. Screens performed afterwards carry a fit prediction. At
// least one example is required; examples with a nil resume are
// rejected.
func (p *Pipeline) TrainClassifier(examples []types.LabeledExample) error {
	if len(examples) == 0 {
		return errors.New("screening: no training examples")
	}
	vectors := make([][classifierDims]float64, 0, len(examples))
	labels := make([]bool, 0, len(examples))
	for _, example := range examples {
		if example.Resume == nil {
			return errors.New("screening: training example has nil resume")
		}
		vectors = append(vectors, classifierVector(p.features.ResumeFeatures(example.Resume)))
		labels = append(labels, example.Fit)
	}

	p.classifier = trainFitClassifier(vectors, labels)
	p.trainedOn = len(examples)
	p.logger.Info("fit classifier trained", zap.Int("samples", len(examples)))
	return nil
}

// trainFitClassifier standardizes the inputs and runs gradient descent
// on the logistic loss.
func trainFitClassifier(vectors [][classifierDims]float64, labels []bool) *fitClassifier {
	c := &fitClassifier{}
	c.fitScaler(vectors)

	scaled := make([][classifierDims]float64, len(vectors))
	for i, v := range vectors {
		scaled[i] = c.standardize(v)
	}

	n := float64(len(scaled))
	for epoch := 0; epoch < classifierEpochs; epoch++ {
		var gradW [classifierDims]float64
		gradB := 0.0
		for i, v := range scaled {
			target := 0.0
			if labels[i] {
				target = 1.0
			}
			delta := sigmoid(c.decision(v)) - target
			for d := 0; d < classifierDims; d++ {
				gradW[d] += delta * v[d]
			}
			gradB += delta
		}
		for d := 0; d < classifierDims; d++ {
			c.weights[d] -= classifierLearningRate * gradW[d] / n
		}
		c.bias -= classifierLearningRate * gradB / n
	}
	return c
}

// Predict reports whether the candidate looks like a fit.
func (c *fitClassifier) Predict(vector [classifierDims]float64) bool {
	return sigmoid(c.decision(c.standardize(vector))) >= 0.5
}

// fitScaler records per-dimension means and standard deviations.
// Constant dimensions keep a deviation of one so standardization stays
// defined.
func (c *fitClassifier) fitScaler(vectors [][classifierDims]float64) {
	n := float64(len(vectors))
	for d := 0; d < classifierDims; d++ {
		sum := 0.0
		for _, v := range vectors {
			sum += v[d]
		}
		c.means[d] = sum / n

		variance := 0.0
		for _, v := range vectors {
			diff := v[d] - c.means[d]
			variance += diff * diff
		}
		std := math.Sqrt(variance / n)
		if std == 0 {
			std = 1
		}
		c.stddevs[d] = std
	}
}

func (c *fitClassifier) standardize(v [classifierDims]float64) [classifierDims]float64 {
	var out [classifierDims]float64
	for d := 0; d < classifierDims; d++ {
		out[d] = (v[d] - c.means[d]) / c.stddevs[d]
	}
	return out
}

func (c *fitClassifier) decision(v [classifierDims]float64) float64 {
	sum := c.bias
	for d := 0; d < classifierDims; d++ {
		sum += c.weights[d] * v[d]
	}
	return sum
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
