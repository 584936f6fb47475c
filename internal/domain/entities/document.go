package entities

// DocumentType is the caller-declared tag selecting which extractor parses
// OCR text.
type DocumentType string

const (
	DocumentPrescription       DocumentType = "prescription"
	DocumentLabReport          DocumentType = "lab_report"
	DocumentMedicalCertificate DocumentType = "medical_certificate"
)

// ExtractedMedication is one medication line pulled out of a prescription.
// Sub-fields are independent; a miss leaves the field empty.
type ExtractedMedication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

// PrescriptionRecord is the best-effort structured view of a prescription.
type PrescriptionRecord struct {
	DoctorName  string                `json:"doctor_name,omitempty"`
	Hospital    string                `json:"hospital,omitempty"`
	Date        string                `json:"date,omitempty"`
	PatientName string                `json:"patient_name,omitempty"`
	Medications []ExtractedMedication `json:"medications"`
	Diagnosis   string                `json:"diagnosis,omitempty"`
}

// LabTestRow is a single "name: result" row from a lab report. The result is
// kept as text; no coercion is attempted.
type LabTestRow struct {
	Name   string `json:"name"`
	Result string `json:"result"`
}

// LabReportRecord holds lab test rows in source order.
type LabReportRecord struct {
	PatientName string       `json:"patient_name,omitempty"`
	Date        string       `json:"date,omitempty"`
	Tests       []LabTestRow `json:"tests"`
}

// CertificateRecord is the stub record for medical certificates.
type CertificateRecord struct {
	DoctorName      string `json:"doctor_name,omitempty"`
	PatientName     string `json:"patient_name,omitempty"`
	Date            string `json:"date,omitempty"`
	Diagnosis       string `json:"diagnosis,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`
}

// OCRResult is the raw outcome of a text-extraction call against the OCR
// provider, passed through to callers unchanged.
type OCRResult struct {
	Succeeded  bool    `json:"success"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Locale     string  `json:"language,omitempty"`
	WordCount  int     `json:"word_count,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// ParsedDocument bundles the structured record with the raw OCR text and
// confidence it was derived from.
type ParsedDocument struct {
	Succeeded     bool         `json:"success"`
	DocumentType  DocumentType `json:"document_type"`
	ExtractedData interface{}  `json:"extracted_data"`
	RawText       string       `json:"raw_text"`
	Confidence    float64      `json:"confidence"`
	Error         string       `json:"error,omitempty"`
}
