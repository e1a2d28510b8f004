package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"mineral-catalog-service/internal/infrastructure/config"
)

const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

// InterfaceQRCodeService renders QR codes that open a mineral in the viewer
type InterfaceQRCodeService interface {
	ViewerURL(mineralID uint) string
	Generate(mineralID uint, size int) ([]byte, error)
}

// QRCodeService generates PNG QR codes
type QRCodeService struct {
	frontendURL string
}

// NewQRCodeService creates a new QR code service
func NewQRCodeService(cfg *config.Config) InterfaceQRCodeService {
	return &QRCodeService{frontendURL: cfg.FrontendURL}
}

// ClampQRSize applies the default and the allowed range
func ClampQRSize(size int) int {
	switch {
	case size <= 0:
		return DefaultQRSize
	case size < MinQRSize:
		return MinQRSize
	case size > MaxQRSize:
		return MaxQRSize
	default:
		return size
	}
}

// ViewerURL returns the page of the mineral in the web client
func (s *QRCodeService) ViewerURL(mineralID uint) string {
	return fmt.Sprintf("%s/minerals/%d", s.frontendURL, mineralID)
}

// Generate encodes the viewer URL as a PNG with medium error recovery
func (s *QRCodeService) Generate(mineralID uint, size int) ([]byte, error) {
	png, err := qrcode.Encode(s.ViewerURL(mineralID), qrcode.Medium, ClampQRSize(size))
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
