package domain

import "time"

// ExtractedMetadata carries the four classification fields. A nil field
// means no label matched; labels always come from the taxonomy's closed
// vocabulary, never free-form text.
type ExtractedMetadata struct {
	AgreementType *string `json:"agreement_type"`
	GoverningLaw  *string `json:"governing_law"`
	Industry      *string `json:"industry"`
	Geography     *string `json:"geography"`
}

// IsEmpty reports whether no domain produced a label.
func (m ExtractedMetadata) IsEmpty() bool {
	return m.AgreementType == nil && m.GoverningLaw == nil && m.Industry == nil && m.Geography == nil
}

// Document is a stored legal document. Metadata fields are written in
// the same insert that creates the row, so readers never observe a
// document with text but partially written metadata. The jurisdiction
// column mirrors governing_law (two field names for one domain).
type Document struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
	Content  string `json:"content,omitempty"`

	ExtractedMetadata

	StoragePath string     `json:"storage_path,omitempty"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}

// QueryIntent is the routed form of a free-text question: a category and,
// for non-general categories, the extracted taxonomy value. Transient,
// never persisted.
type QueryIntent struct {
	Category Category `json:"category"`
	Value    *string  `json:"value"`
}

// ResultRecord is the fixed query result shape. All five fields are
// always present; absent metadata serializes as null.
type ResultRecord struct {
	Document      string  `json:"document"`
	AgreementType *string `json:"agreement_type"`
	GoverningLaw  *string `json:"governing_law"`
	Industry      *string `json:"industry"`
	Geography     *string `json:"geography"`
}

// ResultFromDocument flattens a document into the query result shape.
func ResultFromDocument(doc Document) ResultRecord {
	return ResultRecord{
		Document:      doc.Filename,
		AgreementType: doc.AgreementType,
		GoverningLaw:  doc.GoverningLaw,
		Industry:      doc.Industry,
		Geography:     doc.Geography,
	}
}

// MetadataField names a filterable metadata column.
type MetadataField string

const (
	FieldAgreementType MetadataField = "agreement_type"
	FieldGoverningLaw  MetadataField = "governing_law"
	FieldJurisdiction  MetadataField = "jurisdiction"
	FieldIndustry      MetadataField = "industry"
	FieldGeography     MetadataField = "geography"
)

// DashboardCounts aggregates stored documents per label for each domain.
// Documents without a label in a domain are not counted there.
type DashboardCounts struct {
	AgreementTypes map[string]int `json:"agreement_types"`
	GoverningLaws  map[string]int `json:"governing_laws"`
	Industries     map[string]int `json:"industries"`
	Geographies    map[string]int `json:"geographies"`
}

// UploadReport summarizes a batch upload. A failed file never aborts the
// rest of the batch.
type UploadReport struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}
