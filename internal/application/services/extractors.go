package services

import (
	"regexp"
	"strings"

	"github.com/mysahara/health-assistant/backend/internal/domain/entities"
)

// Pattern tables for prescription extraction. Each field has its own rules;
// a miss leaves the field empty and never blocks the other fields.
var (
	doctorPattern = regexp.MustCompile(`(?i)\b(Dr\.|Doctor|Dr)\s+([A-Za-z\s.]+)`)

	// Tried in priority order; the first pattern matching anywhere wins.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`),
		regexp.MustCompile(`\d{4}[-/]\d{1,2}[-/]\d{1,2}`),
		regexp.MustCompile(`(?i)\d{1,2}\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4}`),
	}

	patientPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Patient Name\s*[:\-]\s*([A-Za-z ]+)`),
		regexp.MustCompile(`(?i)Patient\s*[:\-]\s*([A-Za-z ]+)`),
		regexp.MustCompile(`(?i)Name\s*[:\-]\s*([A-Za-z ]+)`),
	}

	medicationKeywords = []string{"tab", "cap", "syrup", "injection", "mg", "ml"}

	dosagePattern = regexp.MustCompile(`(?i)(\d+\s*(?:mg|ml|g))`)

	frequencyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\s*(?:times?|x)\s*(?:daily|per day|a day))`),
		regexp.MustCompile(`(?i)((?:once|twice|thrice)\s*(?:daily|per day|a day))`),
		regexp.MustCompile(`(\d+-\d+-\d+)`),
	}

	durationPattern = regexp.MustCompile(`(?i)(?:for\s+)?(\d+\s*(?:days?|weeks?|months?))`)

	diagnosisPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Diagnosis\s*[:\-]\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Dx\s*[:\-]\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Impression\s*[:\-]\s*([^\n]+)`),
	}
)

// ParseDocument routes raw OCR text to the extractor declared by the
// document type. Unknown types fall through to a raw-text wrapper.
func ParseDocument(rawText string, documentType entities.DocumentType) interface{} {
	switch documentType {
	case entities.DocumentPrescription:
		return ExtractPrescription(rawText)
	case entities.DocumentLabReport:
		return ExtractLabReport(rawText)
	case entities.DocumentMedicalCertificate:
		return entities.CertificateRecord{}
	default:
		return map[string]string{"raw_text": rawText}
	}
}

// ExtractPrescription pulls structured fields out of prescription text.
// Every field is best effort; an unparseable document yields an empty
// record rather than an error.
func ExtractPrescription(text string) entities.PrescriptionRecord {
	record := entities.PrescriptionRecord{
		Medications: []entities.ExtractedMedication{},
	}

	lines := strings.Split(text, "\n")

	for _, line := range lines {
		if m := doctorPattern.FindString(line); m != "" {
			record.DoctorName = strings.TrimSpace(m)
			break
		}
	}

	for _, pattern := range datePatterns {
		if m := pattern.FindString(text); m != "" {
			record.Date = m
			break
		}
	}

	for _, pattern := range patientPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			record.PatientName = strings.TrimSpace(m[1])
			break
		}
	}

	for _, line := range lines {
		lineLower := strings.ToLower(line)
		candidate := false
		for _, keyword := range medicationKeywords {
			if strings.Contains(lineLower, keyword) {
				candidate = true
				break
			}
		}
		if !candidate {
			continue
		}

		med := entities.ExtractedMedication{Name: strings.TrimSpace(line)}

		if m := dosagePattern.FindStringSubmatch(line); m != nil {
			med.Dosage = m[1]
		}
		for _, pattern := range frequencyPatterns {
			if m := pattern.FindStringSubmatch(line); m != nil {
				med.Frequency = m[1]
				break
			}
		}
		if m := durationPattern.FindStringSubmatch(line); m != nil {
			med.Duration = m[1]
		}

		record.Medications = append(record.Medications, med)
	}

	for _, pattern := range diagnosisPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			record.Diagnosis = strings.TrimSpace(m[1])
			break
		}
	}

	return record
}

// ExtractLabReport treats every line containing a colon as a
// "name: result" row, in source order. Results stay as text.
func ExtractLabReport(text string) entities.LabReportRecord {
	record := entities.LabReportRecord{
		Tests: []entities.LabTestRow{},
	}

	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		record.Tests = append(record.Tests, entities.LabTestRow{
			Name:   strings.TrimSpace(line[:idx]),
			Result: strings.TrimSpace(line[idx+1:]),
		})
	}

	return record
}
