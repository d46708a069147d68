package config

import (
	"testing"
)

func Test_New(t *testing.T) {
	c := New()

	if c.Selection.TargetThreshold != 10 {
		t.Errorf("target threshold = %v, want 10", c.Selection.TargetThreshold)
	}
	if c.Selection.CoverThreshold != 1000 {
		t.Errorf("cover threshold = %v, want 1000", c.Selection.CoverThreshold)
	}
	if c.Selection.MaxElements != 20 {
		t.Errorf("max elements = %v, want 20", c.Selection.MaxElements)
	}
	if c.Cassette.NumSites != 16 {
		t.Errorf("num sites = %v, want 16", c.Cassette.NumSites)
	}
	if c.Filter.MinExpression != 100 {
		t.Errorf("min expression = %v, want 100", c.Filter.MinExpression)
	}
}
