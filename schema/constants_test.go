package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		classifier Classifier
		expected   []string
	}{
		{
			classifier: KrakenClassifier,
			expected:   []string{FieldReadsDirect, FieldReadsClade},
		},
		{
			classifier: SylphClassifier,
			expected:   []string{FieldContainmentIndex, FieldEffectiveCoverage, FieldSequenceAbundance},
		},
		{
			classifier: ViralAlignerClassifier,
			expected: []string{
				FieldEvenness,
				FieldCoverage1x,
				FieldUniqueReads,
				FieldMeanReadIdentity,
				FieldMeanAlignmentLen,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.classifier), func(t *testing.T) {
			assert.Equal(t, tt.expected, RequiredFields(tt.classifier))
		})
	}
}

func TestPrimaryMetricField(t *testing.T) {
	assert.Equal(t, FieldReadsClade, PrimaryMetricField(KrakenClassifier))
	assert.Equal(t, FieldEffectiveCoverage, PrimaryMetricField(SylphClassifier))
	assert.Equal(t, FieldUniqueReads, PrimaryMetricField(ViralAlignerClassifier))
}

func TestPrimaryMetricIsRequired(t *testing.T) {
	// The field used for shares and ranking must always be parsed.
	for _, c := range AllClassifiers {
		assert.Contains(t, RequiredFields(c), PrimaryMetricField(c))
	}
}

func TestClassifierSets(t *testing.T) {
	assert.Len(t, AllClassifiers, 3)
	assert.Len(t, BacteriaClassifiers, 2)
	assert.NotContains(t, BacteriaClassifiers, ViralAlignerClassifier)
	for _, c := range AllClassifiers {
		_, ok := ValidClassifiers[c]
		assert.True(t, ok)
	}
}

func TestFormatFailedFields(t *testing.T) {
	assert.Equal(t, "", FormatFailedFields(nil))
	assert.Equal(t, "coverage_1x", FormatFailedFields([]string{"coverage_1x"}))
	assert.Equal(t, "coverage_1x;evenness_value", FormatFailedFields([]string{"coverage_1x", "evenness_value"}))
}
