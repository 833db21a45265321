package corpus

import (
	"reflect"
	"testing"
)

func TestMapRowID(t *testing.T) {
	tests := []struct {
		ordinal int
		want    string
	}{
		{1, "paper_001"},
		{42, "paper_042"},
		{999, "paper_999"},
		{1000, "paper_1000"},
	}
	for _, tt := range tests {
		p := MapRow(map[string]string{}, tt.ordinal)
		if p.ID != tt.want {
			t.Errorf("MapRow(%d).ID = %q, want %q", tt.ordinal, p.ID, tt.want)
		}
	}
}

func TestMapRowNumericCoercion(t *testing.T) {
	tests := []struct {
		name           string
		year           string
		sampleSize     string
		wantYear       int
		wantSampleSize int
	}{
		{"clean values", "2019", "500", 2019, 500},
		{"thousands separator", "2020", "1,234", 2020, 1234},
		{"non-numeric sample size", "2021", "N/A", 2021, 0},
		{"missing year", "", "10", 2023, 10},
		{"non-numeric year", "forthcoming", "10", 2023, 10},
		{"negative sample size", "2022", "-5", 2022, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MapRow(map[string]string{"year": tt.year, "sample_size": tt.sampleSize}, 1)
			if p.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", p.Year, tt.wantYear)
			}
			if p.SampleSize != tt.wantSampleSize {
				t.Errorf("SampleSize = %d, want %d", p.SampleSize, tt.wantSampleSize)
			}
			if p.SampleSize < 0 {
				t.Errorf("SampleSize = %d, must never be negative", p.SampleSize)
			}
		})
	}
}

func TestMapRowAuthors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"two authors", "Smith, J.; Doe, A.", []string{"Smith, J.", "Doe, A."}},
		{"stray separators", "; Smith, J. ;; Doe, A. ;", []string{"Smith, J.", "Doe, A."}},
		{"empty", "", nil},
		{"single", "Smith, J.", []string{"Smith, J."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MapRow(map[string]string{"authors": tt.raw}, 1)
			if !reflect.DeepEqual(p.Authors, tt.want) {
				t.Errorf("Authors = %v, want %v", p.Authors, tt.want)
			}
		})
	}
}

func TestMapRowCountries(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"present", "Germany", []string{"Germany"}},
		{"absent", "", []string{"USA"}},
		{"sentinel", "NOT SPECIFIED", []string{"USA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MapRow(map[string]string{"country_region": tt.raw}, 1)
			if !reflect.DeepEqual(p.Countries, tt.want) {
				t.Errorf("Countries = %v, want %v", p.Countries, tt.want)
			}
		})
	}
}

func TestMapRowDefaults(t *testing.T) {
	p := MapRow(map[string]string{}, 7)

	if p.Title != "Untitled" {
		t.Errorf("Title = %q, want Untitled", p.Title)
	}
	if p.Methodology != "Unknown" {
		t.Errorf("Methodology = %q, want Unknown", p.Methodology)
	}
	if p.ResearchType != "Experimental Research" {
		t.Errorf("ResearchType = %q", p.ResearchType)
	}
	if p.Citations != 0 || p.ImpactFactor != 0 {
		t.Errorf("Citations/ImpactFactor = %d/%d, want 0/0", p.Citations, p.ImpactFactor)
	}
	if !reflect.DeepEqual(p.Keywords, []string{"social media", "politics"}) {
		t.Errorf("Keywords = %v", p.Keywords)
	}
}

func TestMapRowExtractedFeatures(t *testing.T) {
	row := map[string]string{
		"independent_variables": "exposure to political ads",
		"demographics":          "US adults, 18-65",
		"country_region":        "Canada",
	}
	p := MapRow(row, 1)

	if got := p.ExtractedFeatures["independent_variables"]; got != "exposure to political ads" {
		t.Errorf("independent_variables = %q", got)
	}
	if got := p.ExtractedFeatures["demographics"]; got != "US adults, 18-65" {
		t.Errorf("demographics = %q", got)
	}
	// country_region is carried verbatim alongside the normalized Countries.
	if got := p.ExtractedFeatures["country_region"]; got != "Canada" {
		t.Errorf("country_region = %q", got)
	}
	// Absent columns are present as empty strings.
	if got, ok := p.ExtractedFeatures["moderators"]; !ok || got != "" {
		t.Errorf("moderators = %q, ok = %v, want empty present", got, ok)
	}
	if len(p.ExtractedFeatures) != len(featureColumns) {
		t.Errorf("got %d features, want %d", len(p.ExtractedFeatures), len(featureColumns))
	}
}
