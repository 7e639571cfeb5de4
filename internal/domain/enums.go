package domain

// SourceFormat is the declared format of an uploaded bill.
type SourceFormat string

const (
	SourcePDF   SourceFormat = "pdf"
	SourceImage SourceFormat = "image"
	SourceCSV   SourceFormat = "csv"
	SourceDOCX  SourceFormat = "docx"
)

// ParseSourceFormat maps a declared format string (or a file extension) to a
// SourceFormat. Returns ErrUnsupportedFormat for anything else.
func ParseSourceFormat(s string) (SourceFormat, error) {
	switch s {
	case "pdf":
		return SourcePDF, nil
	case "image", "jpg", "jpeg", "png":
		return SourceImage, nil
	case "csv":
		return SourceCSV, nil
	case "docx":
		return SourceDOCX, nil
	}
	return "", ErrUnsupportedFormat
}

// ExtractionMethod records which extraction path produced the text.
type ExtractionMethod string

const (
	MethodStructured     ExtractionMethod = "structured"
	MethodOCRVision      ExtractionMethod = "ocr-vision"
	MethodTabular        ExtractionMethod = "tabular"
	MethodDocxStructured ExtractionMethod = "docx-structured"
)

// Confidence qualifies how trustworthy the recovered text is.
type Confidence string

const (
	ConfidenceHigh     Confidence = "high"
	ConfidenceDegraded Confidence = "degraded"
)

// MessageRole identifies who authored a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// LineItemCategory buckets a bill line item for coverage computation.
type LineItemCategory string

const (
	CategoryRoom       LineItemCategory = "room"
	CategoryProcedure  LineItemCategory = "procedure"
	CategoryPharmacy   LineItemCategory = "pharmacy"
	CategoryNonPayable LineItemCategory = "non-payable"
	CategoryOther      LineItemCategory = "other"
)

// TimelineBucket is the coarse claim-processing-time classification derived
// from a plan's processing descriptor.
type TimelineBucket string

const (
	TimelineInstant TimelineBucket = "instant"
	Timeline24To48h TimelineBucket = "24-48h"
	TimelineBizDays TimelineBucket = "3-5biz-days"
	TimelineUnknown TimelineBucket = "unknown"
)

// EstimateStatus is the side-channel flag describing how much of the bill
// the engine could actually work with.
type EstimateStatus string

const (
	EstimateOK        EstimateStatus = "ok"         // line items parsed
	EstimateTotalOnly EstimateStatus = "total-only" // no line items, aggregate total located
	EstimateNoTotal   EstimateStatus = "no-total"   // nothing locatable, amounts are zero
)
