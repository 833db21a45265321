// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper is one record of the in-memory corpus. Papers are built once at
// startup by the record mapper and never mutated afterwards.
type Paper struct {
	// ID is the stable opaque identifier for one load, "paper_NNN" with a
	// 1-based, zero-padded ordinal. IDs are reassigned by row order on reload.
	ID string `json:"id" yaml:"id"`

	// Title is the cleaned paper title.
	Title string `json:"title" yaml:"title"`

	// TitleVerbatim is the title as extracted, unprocessed.
	TitleVerbatim string `json:"title_verbatim" yaml:"title_verbatim"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// AuthorsVerbatim is the raw author string before splitting.
	AuthorsVerbatim string `json:"authors_verbatim" yaml:"authors_verbatim"`

	// Journal is the cleaned journal name.
	Journal string `json:"journal" yaml:"journal"`

	// JournalVerbatim is the journal name as extracted.
	JournalVerbatim string `json:"journal_verbatim" yaml:"journal_verbatim"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Citation is the formatted citation string.
	Citation string `json:"citation" yaml:"citation"`

	// Abstract is the cleaned abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// AbstractVerbatim is the abstract as extracted.
	AbstractVerbatim string `json:"abstract_verbatim" yaml:"abstract_verbatim"`

	// SampleSize is the study sample size (participants), never negative.
	SampleSize int `json:"sample_size" yaml:"sample_size"`

	// Countries holds exactly one country string per paper.
	Countries []string `json:"countries" yaml:"countries"`

	// Methodology is the study type (e.g. "Survey Research").
	Methodology string `json:"methodology" yaml:"methodology"`

	// ResearchType is fixed for the whole corpus.
	ResearchType string `json:"research_type" yaml:"research_type"`

	// Citations and ImpactFactor are placeholders; the source export does
	// not carry citation metrics.
	Citations    int `json:"citations" yaml:"citations"`
	ImpactFactor int `json:"impact_factor" yaml:"impact_factor"`

	// Keywords is fixed for the whole corpus.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// ExtractedFeatures holds the named extraction columns copied verbatim
	// from the source row. Absent columns map to the empty string.
	ExtractedFeatures map[string]string `json:"extracted_features" yaml:"extracted_features"`
}

// Statistics summarizes the loaded corpus.
type Statistics struct {
	// TotalPapers is the corpus size.
	TotalPapers int `json:"total_papers" yaml:"total_papers"`

	// TotalStudies is the sum of all sample sizes.
	TotalStudies int `json:"total_studies" yaml:"total_studies"`

	// TotalCountries is the number of distinct country strings.
	TotalCountries int `json:"total_countries" yaml:"total_countries"`

	// Methodologies lists the distinct methodology values, sorted.
	Methodologies []string `json:"methodologies" yaml:"methodologies"`

	// Journals lists the distinct journal values, sorted.
	Journals []string `json:"journals" yaml:"journals"`

	// Years lists the distinct publication years, newest first.
	Years []int `json:"years" yaml:"years"`
}
