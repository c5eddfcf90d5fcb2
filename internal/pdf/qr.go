package pdf

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRGenerationError is non-fatal: the renderer falls back to a placeholder
// frame and the document still ships
type QRGenerationError struct {
	Err error
}

func (e *QRGenerationError) Error() string {
	return fmt.Sprintf("qr generation failed: %v", e.Err)
}

func (e *QRGenerationError) Unwrap() error {
	return e.Err
}

// QRProvider turns a payment payload into a PNG for embedding
type QRProvider interface {
	Render(payload string) ([]byte, error)
}

// QREncoder renders payment QR codes locally
type QREncoder struct {
	// Size is the PNG edge in pixels, 256 when zero
	Size int
}

func (e *QREncoder) Render(payload string) ([]byte, error) {
	size := e.Size
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, &QRGenerationError{Err: err}
	}
	return png, nil
}
