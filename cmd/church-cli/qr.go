package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/topi314/church-tools/server/checkin"
)

func qrCommand() *cli.Command {
	return &cli.Command{
		Name:      "qr",
		Usage:     "Write the check-in QR code of an event as PNG.",
		ArgsUsage: "<event-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file", Value: "checkin.png"},
			&cli.UintFlag{Name: "width", Usage: "size of a QR block in pixels", Value: checkin.DefaultQRCodeWidth},
		},
		Action: func(c *cli.Context) error {
			eventID := c.Args().First()
			if _, ok := checkin.ParseCode(eventID); !ok {
				return cli.Exit("Informe um evento válido.", 2)
			}

			file, err := os.Create(c.String("out"))
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() {
				_ = file.Close()
			}()

			if err = checkin.WriteQRCode(file, eventID, uint8(min(c.Uint("width"), 255))); err != nil {
				return err
			}

			printf(c, "QR Code salvo em %s\n", c.String("out"))
			return nil
		},
	}
}
