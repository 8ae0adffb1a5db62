package checkin

import (
	"fmt"
	"io"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/topi314/church-tools/internal/xio"
)

const DefaultQRCodeWidth = 20

// WriteQRCode renders the check-in code of eventID as PNG into w.
// width is the size of a single QR block in pixels.
func WriteQRCode(w io.Writer, eventID string, width uint8) error {
	if width == 0 {
		width = DefaultQRCodeWidth
	}

	qr, err := qrcode.New(EncodeCode(eventID))
	if err != nil {
		return fmt.Errorf("failed to create qrcode: %w", err)
	}

	qrW := standard.NewWithWriter(xio.NewWriteCloser(w),
		standard.WithQRWidth(width),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	defer func() {
		_ = qrW.Close()
	}()

	if err = qr.Save(qrW); err != nil {
		return fmt.Errorf("failed to save qrcode: %w", err)
	}
	return nil
}
