package models

import "time"

// Disclosure is one filing submission. ReceiptNo is globally unique;
// inserts are idempotent on it. CompanyProfileID is a plain foreign
// key to the owning profile's InternalID, not an embedded object.
type Disclosure struct {
	ReceiptNo        string
	CorpCode         string
	CorpName         string
	StockCode        *string
	CorpClass        *string
	ReportName       string
	SubmitterName    *string
	ReceiptDate      time.Time
	Remark           *string
	CompanyProfileID int64
}
