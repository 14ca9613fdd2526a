package domain

import "time"

// Upload is the proof-of-payment bookkeeping record. Only the generated
// file name is kept; no file bytes are stored.
type Upload struct {
	ID           string    `json:"id" gorm:"primaryKey;size:50"`
	CustomerName string    `json:"customerName" gorm:"size:255;not null"`
	OrderID      string    `json:"orderId" gorm:"size:50"`
	FileURL      string    `json:"fileUrl" gorm:"size:500"`
	UploadedAt   time.Time `json:"uploadedAt" gorm:"autoCreateTime"`
}
