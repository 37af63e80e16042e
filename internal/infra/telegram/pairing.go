// File: internal/infra/telegram/pairing.go
package telegram

import (
	"fmt"
	"os"

	qrcode "github.com/skip2/go-qrcode"
)

// PrintPairingQR renders a terminal QR code for the bot's deep link so an
// operator can open a chat with the bot by scanning it. Rendering problems
// only cost the convenience, so the error is returned for logging, not acted
// on.
func (b *BotAdapter) PrintPairingQR() error {
	link := fmt.Sprintf("https://t.me/%s", b.bot.Self.UserName)
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("render pairing qr: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Scan to chat with @%s (%s):\n%s", b.bot.Self.UserName, link, q.ToSmallString(false))
	return nil
}
